package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"readingnest/internal/models"
	"readingnest/internal/week"
)

// fakeCounter returns a fixed total and weekly count, or an error
type fakeCounter struct {
	mu     sync.Mutex
	total  int
	weekly int
	err    error
	calls  int
}

func (f *fakeCounter) CountForChild(ctx context.Context, childID int64, since *time.Time) (int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if since == nil {
		return f.total, nil
	}
	return f.weekly, nil
}

func (f *fakeCounter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMomentStore struct {
	fakeCounter
	recent    []models.Moment
	recentErr error
	gotLimit  int
}

func (f *fakeMomentStore) GetRecentForChild(ctx context.Context, childID int64, limit int) ([]models.Moment, error) {
	f.gotLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

// fakeResolver resolves every key except those listed in failing
type fakeResolver struct {
	mu      sync.Mutex
	failing map[string]bool
	calls   []string
}

func (f *fakeResolver) ResolveURL(ctx context.Context, objectKey string) *string {
	f.mu.Lock()
	f.calls = append(f.calls, objectKey)
	f.mu.Unlock()
	if f.failing[objectKey] {
		return nil
	}
	url := "https://media.example.com/" + objectKey
	return &url
}

func newTestStatsService(words, books *fakeCounter, moments *fakeMomentStore, resolver *fakeResolver) *StatsService {
	return NewStatsService(words, books, moments, resolver, week.MondayStart)
}

func TestComputeStatsAggregatesAllCounters(t *testing.T) {
	words := &fakeCounter{total: 42, weekly: 5}
	books := &fakeCounter{total: 7, weekly: 2}
	moments := &fakeMomentStore{fakeCounter: fakeCounter{weekly: 3}}
	svc := newTestStatsService(words, books, moments, &fakeResolver{})

	snapshot, err := svc.ComputeStats(context.Background(), 1, svc.WeekStart(time.Now()))
	if err != nil {
		t.Fatalf("ComputeStats returned error: %v", err)
	}

	want := models.StatsSnapshot{
		TotalWords:       42,
		TotalBooks:       7,
		WordsThisWeek:    5,
		BooksThisWeek:    2,
		MomentsThisWeek:  3,
		NewWordsThisWeek: 5,
	}
	if *snapshot != want {
		t.Fatalf("snapshot = %+v, want %+v", *snapshot, want)
	}
}

func TestComputeStatsZeroChildShortCircuits(t *testing.T) {
	words := &fakeCounter{total: 42}
	books := &fakeCounter{total: 7}
	moments := &fakeMomentStore{}
	svc := newTestStatsService(words, books, moments, &fakeResolver{})

	snapshot, err := svc.ComputeStats(context.Background(), 0, svc.WeekStart(time.Now()))
	if err != nil {
		t.Fatalf("ComputeStats returned error: %v", err)
	}
	if !snapshot.IsZero() {
		t.Fatalf("expected zero snapshot, got %+v", *snapshot)
	}

	if words.callCount() != 0 || books.callCount() != 0 || moments.callCount() != 0 {
		t.Fatal("expected no store calls for childID 0")
	}
}

func TestComputeStatsFailsWholeWhenAnyCounterFails(t *testing.T) {
	cases := []struct {
		name    string
		words   *fakeCounter
		books   *fakeCounter
		moments *fakeMomentStore
	}{
		{
			name:    "words failure",
			words:   &fakeCounter{err: errors.New("words table locked")},
			books:   &fakeCounter{total: 7, weekly: 2},
			moments: &fakeMomentStore{fakeCounter: fakeCounter{weekly: 3}},
		},
		{
			name:    "books failure",
			words:   &fakeCounter{total: 42, weekly: 5},
			books:   &fakeCounter{err: errors.New("books table locked")},
			moments: &fakeMomentStore{fakeCounter: fakeCounter{weekly: 3}},
		},
		{
			name:    "moments failure",
			words:   &fakeCounter{total: 42, weekly: 5},
			books:   &fakeCounter{total: 7, weekly: 2},
			moments: &fakeMomentStore{fakeCounter: fakeCounter{err: errors.New("moments table locked")}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestStatsService(tc.words, tc.books, tc.moments, &fakeResolver{})

			snapshot, err := svc.ComputeStats(context.Background(), 1, svc.WeekStart(time.Now()))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrFetchFailed) {
				t.Fatalf("expected ErrFetchFailed, got %v", err)
			}
			if snapshot != nil {
				t.Fatalf("expected no partial snapshot, got %+v", *snapshot)
			}
		})
	}
}

func TestRefreshRecordsLatestSnapshot(t *testing.T) {
	words := &fakeCounter{total: 10, weekly: 4}
	books := &fakeCounter{total: 3, weekly: 1}
	moments := &fakeMomentStore{fakeCounter: fakeCounter{weekly: 2}}
	svc := newTestStatsService(words, books, moments, &fakeResolver{})

	snapshot, err := svc.Refresh(context.Background(), 1)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	latest, ok := svc.LatestSnapshot(1)
	if !ok {
		t.Fatal("expected a committed snapshot")
	}
	if latest != *snapshot {
		t.Fatalf("latest = %+v, want %+v", latest, *snapshot)
	}
}

func TestRefreshStaleResultDoesNotOverwrite(t *testing.T) {
	words := &fakeCounter{total: 10, weekly: 4}
	books := &fakeCounter{total: 3, weekly: 1}
	moments := &fakeMomentStore{fakeCounter: fakeCounter{weekly: 2}}
	svc := newTestStatsService(words, books, moments, &fakeResolver{})

	// A slow refresh begins, then a newer one starts and commits before
	// the slow one finishes computing.
	staleToken := svc.gate.Begin(1)

	fresh, err := svc.Refresh(context.Background(), 1)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	// The stale refresh must lose the race.
	if svc.gate.Commit(1, staleToken) {
		t.Fatal("stale token committed after a newer refresh began")
	}

	latest, ok := svc.LatestSnapshot(1)
	if !ok {
		t.Fatal("expected a committed snapshot")
	}
	if latest != *fresh {
		t.Fatalf("latest = %+v, want fresh snapshot %+v", latest, *fresh)
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	words := &fakeCounter{total: 10, weekly: 4}
	books := &fakeCounter{total: 3, weekly: 1}
	moments := &fakeMomentStore{fakeCounter: fakeCounter{weekly: 2}}
	svc := newTestStatsService(words, books, moments, &fakeResolver{})

	first, err := svc.Refresh(context.Background(), 1)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	words.err = errors.New("database gone")
	if _, err := svc.Refresh(context.Background(), 1); err == nil {
		t.Fatal("expected refresh to fail")
	}

	latest, ok := svc.LatestSnapshot(1)
	if !ok {
		t.Fatal("expected previous snapshot to survive")
	}
	if latest != *first {
		t.Fatalf("latest = %+v, want %+v", latest, *first)
	}
}

func momentFixture(id int64, videoKey string, thumbnailKey *string) models.Moment {
	return models.Moment{
		ID:           id,
		ChildID:      1,
		VideoKey:     videoKey,
		ThumbnailKey: thumbnailKey,
		CreatedAt:    time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute),
	}
}

func TestRecentMomentsResolvesURLs(t *testing.T) {
	thumb := "thumbnail/b.jpg"
	moments := &fakeMomentStore{
		recent: []models.Moment{
			momentFixture(3, "video/c.mp4", nil),
			momentFixture(2, "video/b.mp4", &thumb),
			momentFixture(1, "video/a.mp4", nil),
		},
	}
	svc := newTestStatsService(&fakeCounter{}, &fakeCounter{}, moments, &fakeResolver{})

	resolved, err := svc.RecentMoments(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("RecentMoments returned error: %v", err)
	}
	if len(resolved) != 3 {
		t.Fatalf("expected 3 moments, got %d", len(resolved))
	}

	// Store order (newest first) is preserved
	if resolved[0].ID != 3 || resolved[1].ID != 2 || resolved[2].ID != 1 {
		t.Fatalf("unexpected order: %d, %d, %d", resolved[0].ID, resolved[1].ID, resolved[2].ID)
	}

	for i, m := range resolved {
		if m.VideoURL == nil {
			t.Fatalf("moment %d: expected video URL", i)
		}
	}
	if resolved[1].ThumbnailURL == nil {
		t.Fatal("expected thumbnail URL for moment with thumbnail key")
	}
	if resolved[0].ThumbnailURL != nil || resolved[2].ThumbnailURL != nil {
		t.Fatal("expected nil thumbnail URL for moments without thumbnail keys")
	}
}

func TestRecentMomentsFailedResolutionIsNotFatal(t *testing.T) {
	thumb := "thumbnail/b.jpg"
	moments := &fakeMomentStore{
		recent: []models.Moment{
			momentFixture(2, "video/b.mp4", &thumb),
			momentFixture(1, "video/a.mp4", nil),
		},
	}
	resolver := &fakeResolver{failing: map[string]bool{
		"video/b.mp4": true,
	}}
	svc := newTestStatsService(&fakeCounter{}, &fakeCounter{}, moments, resolver)

	resolved, err := svc.RecentMoments(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("RecentMoments returned error: %v", err)
	}

	if resolved[0].VideoURL != nil {
		t.Fatal("expected nil video URL for failed resolution")
	}
	if resolved[0].ThumbnailURL == nil {
		t.Fatal("expected thumbnail resolution to succeed independently")
	}
	if resolved[1].VideoURL == nil {
		t.Fatal("expected other moment to resolve")
	}
}

func TestRecentMomentsPassesLimitThrough(t *testing.T) {
	moments := &fakeMomentStore{
		recent: []models.Moment{
			momentFixture(3, "video/c.mp4", nil),
			momentFixture(2, "video/b.mp4", nil),
			momentFixture(1, "video/a.mp4", nil),
		},
	}
	svc := newTestStatsService(&fakeCounter{}, &fakeCounter{}, moments, &fakeResolver{})

	resolved, err := svc.RecentMoments(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("RecentMoments returned error: %v", err)
	}
	if moments.gotLimit != 2 {
		t.Fatalf("store received limit %d, want 2", moments.gotLimit)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 moments, got %d", len(resolved))
	}
}

func TestRecentMomentsZeroChildShortCircuits(t *testing.T) {
	moments := &fakeMomentStore{recentErr: errors.New("should not be called")}
	svc := newTestStatsService(&fakeCounter{}, &fakeCounter{}, moments, &fakeResolver{})

	resolved, err := svc.RecentMoments(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("RecentMoments returned error: %v", err)
	}
	if len(resolved) != 0 {
		t.Fatalf("expected empty result, got %d", len(resolved))
	}
}

func TestRecentMomentsStoreErrorWrapsFetchFailed(t *testing.T) {
	moments := &fakeMomentStore{recentErr: errors.New("moments table locked")}
	svc := newTestStatsService(&fakeCounter{}, &fakeCounter{}, moments, &fakeResolver{})

	if _, err := svc.RecentMoments(context.Background(), 1, 10); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}
