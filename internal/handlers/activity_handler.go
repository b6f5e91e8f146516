package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"readingnest/internal/service"
	"readingnest/internal/validation"
)

const defaultListLimit = 50

// ActivityHandler handles word and book logging endpoints
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type logWordRequest struct {
	Word string `json:"word"`
}

type logBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// LogWord handles POST /api/children/{id}/words
func (h *ActivityHandler) LogWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	var req logWordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	word, err := h.activityService.LogWord(user.ID, childID, req.Word)
	if err != nil {
		respondActivityError(w, err, "Failed to log word")
		return
	}

	respondJSON(w, http.StatusCreated, word)
}

// ListWords handles GET /api/children/{id}/words
func (h *ActivityHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	words, err := h.activityService.GetChildWords(user.ID, childID, queryLimit(r))
	if err != nil {
		respondActivityError(w, err, "Failed to load words")
		return
	}

	respondJSON(w, http.StatusOK, words)
}

// DeleteWord handles DELETE /api/children/{id}/words/{wordId}
func (h *ActivityHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}
	wordID, err := pathID(r, "wordId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word ID", "", nil)
		return
	}

	if err := h.activityService.DeleteWord(user.ID, childID, wordID); err != nil {
		respondActivityError(w, err, "Failed to delete word")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// LogBook handles POST /api/children/{id}/books
func (h *ActivityHandler) LogBook(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	var req logBookRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	book, err := h.activityService.LogBook(user.ID, childID, req.Title, req.Author)
	if err != nil {
		respondActivityError(w, err, "Failed to log book")
		return
	}

	respondJSON(w, http.StatusCreated, book)
}

// ListBooks handles GET /api/children/{id}/books
func (h *ActivityHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	books, err := h.activityService.GetChildBooks(user.ID, childID, queryLimit(r))
	if err != nil {
		respondActivityError(w, err, "Failed to load books")
		return
	}

	respondJSON(w, http.StatusOK, books)
}

// DeleteBook handles DELETE /api/children/{id}/books/{bookId}
func (h *ActivityHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}
	bookID, err := pathID(r, "bookId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book ID", "", nil)
		return
	}

	if err := h.activityService.DeleteBook(user.ID, childID, bookID); err != nil {
		respondActivityError(w, err, "Failed to delete book")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func respondActivityError(w http.ResponseWriter, err error, fallback string) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message, "", nil)
	case errors.Is(err, service.ErrChildNotFound):
		respondWithError(w, http.StatusNotFound, "Child not found", "", nil)
	case errors.Is(err, service.ErrNotChildOwner):
		respondWithError(w, http.StatusForbidden, "You do not have access to this child", "", nil)
	case errors.Is(err, service.ErrMomentNotFound):
		respondWithError(w, http.StatusNotFound, "Moment not found", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, fallback, fallback, err)
	}
}

// queryLimit parses the limit query parameter with a sensible default
func queryLimit(r *http.Request) int {
	value := r.URL.Query().Get("limit")
	if value == "" {
		return defaultListLimit
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 || limit > 500 {
		return defaultListLimit
	}
	return limit
}
