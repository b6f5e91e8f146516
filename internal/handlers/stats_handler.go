package handlers

import (
	"errors"
	"net/http"
	"time"

	"readingnest/internal/service"
)

// StatsHandler handles profile statistics endpoints
type StatsHandler struct {
	statsService *service.StatsService
	childService *service.ChildService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService, childService *service.ChildService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		childService: childService,
	}
}

type statsResponse struct {
	ChildID          int64     `json:"child_id"`
	WeekStart        time.Time `json:"week_start"`
	TotalWords       int       `json:"total_words"`
	TotalBooks       int       `json:"total_books"`
	WordsThisWeek    int       `json:"words_this_week"`
	BooksThisWeek    int       `json:"books_this_week"`
	MomentsThisWeek  int       `json:"moments_this_week"`
	NewWordsThisWeek int       `json:"new_words_this_week"`
}

// Get handles GET /api/children/{id}/stats. Each request recomputes the
// snapshot; stale results from overlapping refreshes are never returned.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	if _, err := h.childService.GetChild(user.ID, childID); err != nil {
		respondChildError(w, err, "Failed to load stats")
		return
	}

	snapshot, err := h.statsService.Refresh(r.Context(), childID)
	if err != nil {
		if errors.Is(err, service.ErrFetchFailed) {
			respondWithError(w, http.StatusServiceUnavailable, "Stats are temporarily unavailable", "Stats refresh failed", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", "Stats refresh failed", err)
		return
	}

	respondJSON(w, http.StatusOK, statsResponse{
		ChildID:          childID,
		WeekStart:        h.statsService.WeekStart(time.Now()),
		TotalWords:       snapshot.TotalWords,
		TotalBooks:       snapshot.TotalBooks,
		WordsThisWeek:    snapshot.WordsThisWeek,
		BooksThisWeek:    snapshot.BooksThisWeek,
		MomentsThisWeek:  snapshot.MomentsThisWeek,
		NewWordsThisWeek: snapshot.NewWordsThisWeek,
	})
}
