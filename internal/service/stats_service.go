package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"readingnest/internal/models"
	"readingnest/internal/week"
)

// ErrFetchFailed signals that one of the stats sub-queries failed. The
// caller gets no partial snapshot; it keeps whatever it last displayed
// and offers a retry.
var ErrFetchFailed = errors.New("failed to fetch child stats")

// ActivityCounter counts records owned by a child, optionally restricted
// to records created at or after since
type ActivityCounter interface {
	CountForChild(ctx context.Context, childID int64, since *time.Time) (int, error)
}

// MomentStore provides moment counts and the recent-moments list
type MomentStore interface {
	ActivityCounter
	GetRecentForChild(ctx context.Context, childID int64, limit int) ([]models.Moment, error)
}

// URLResolver turns a stored object key into a short-lived signed URL.
// nil means resolution failed; resolution errors are never fatal.
type URLResolver interface {
	ResolveURL(ctx context.Context, objectKey string) *string
}

// StatsService aggregates a child's reading activity into display-ready
// snapshots. It owns no persistent state and is safe for concurrent use.
type StatsService struct {
	words      ActivityCounter
	books      ActivityCounter
	moments    MomentStore
	resolver   URLResolver
	convention week.Convention

	gate *RefreshGate

	mu     sync.RWMutex
	latest map[int64]models.StatsSnapshot
}

// NewStatsService creates a new stats service
func NewStatsService(words, books ActivityCounter, moments MomentStore, resolver URLResolver, convention week.Convention) *StatsService {
	return &StatsService{
		words:      words,
		books:      books,
		moments:    moments,
		resolver:   resolver,
		convention: convention,
		gate:       NewRefreshGate(),
		latest:     make(map[int64]models.StatsSnapshot),
	}
}

// WeekStart returns the lower bound used for "this week" queries at the
// given reference time, per the configured convention
func (s *StatsService) WeekStart(now time.Time) time.Time {
	return week.Start(now, s.convention)
}

// ComputeStats produces a snapshot of a child's counters. The count
// sub-queries run concurrently and the snapshot is assembled only after
// every one of them has settled; a failure in any sub-query aborts the
// whole aggregation. A zero childID is the defined no-child-selected
// state and yields a zeroed snapshot without touching the stores.
func (s *StatsService) ComputeStats(ctx context.Context, childID int64, weekStart time.Time) (*models.StatsSnapshot, error) {
	if childID == 0 {
		return &models.StatsSnapshot{}, nil
	}

	snapshot := &models.StatsSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.words.CountForChild(gctx, childID, nil)
		snapshot.TotalWords = count
		return err
	})
	g.Go(func() error {
		count, err := s.books.CountForChild(gctx, childID, nil)
		snapshot.TotalBooks = count
		return err
	})
	g.Go(func() error {
		count, err := s.words.CountForChild(gctx, childID, &weekStart)
		snapshot.WordsThisWeek = count
		return err
	})
	g.Go(func() error {
		count, err := s.books.CountForChild(gctx, childID, &weekStart)
		snapshot.BooksThisWeek = count
		return err
	})
	g.Go(func() error {
		count, err := s.moments.CountForChild(gctx, childID, &weekStart)
		snapshot.MomentsThisWeek = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// TODO: the mobile clients have always shown new-words identical to
	// words-this-week; split this out once a "new to this child" predicate
	// is defined for the words table.
	snapshot.NewWordsThisWeek = snapshot.WordsThisWeek

	return snapshot, nil
}

// Refresh recomputes a child's snapshot for the current week and records
// it as the latest known snapshot, unless a newer refresh for the same
// child started in the meantime. The stale result is still returned to
// its own caller but never overwrites the fresher one.
func (s *StatsService) Refresh(ctx context.Context, childID int64) (*models.StatsSnapshot, error) {
	token := s.gate.Begin(childID)

	snapshot, err := s.ComputeStats(ctx, childID, s.WeekStart(time.Now()))
	if err != nil {
		return nil, err
	}

	if childID != 0 && s.gate.Commit(childID, token) {
		s.mu.Lock()
		s.latest[childID] = *snapshot
		s.mu.Unlock()
	}

	return snapshot, nil
}

// LatestSnapshot returns the most recently committed snapshot for a child
func (s *StatsService) LatestSnapshot(childID int64) (models.StatsSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.latest[childID]
	return snapshot, ok
}

// RecentMoments returns up to limit of the child's newest moments with
// signed video and thumbnail URLs attached. Resolution is best effort and
// independent per moment; a failed resolution leaves the URL nil.
func (s *StatsService) RecentMoments(ctx context.Context, childID int64, limit int) ([]models.ResolvedMoment, error) {
	if childID == 0 {
		return []models.ResolvedMoment{}, nil
	}

	moments, err := s.moments.GetRecentForChild(ctx, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resolved := make([]models.ResolvedMoment, len(moments))
	var wg sync.WaitGroup
	for i, moment := range moments {
		resolved[i].Moment = moment

		wg.Add(1)
		go func(i int, moment models.Moment) {
			defer wg.Done()
			resolved[i].VideoURL = s.resolver.ResolveURL(ctx, moment.VideoKey)
			if moment.ThumbnailKey != nil {
				resolved[i].ThumbnailURL = s.resolver.ResolveURL(ctx, *moment.ThumbnailKey)
			}
		}(i, moment)
	}
	wg.Wait()

	return resolved, nil
}
