package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"readingnest/internal/models"
	"readingnest/internal/service"
	"readingnest/internal/validation"
)

// ChildHandler handles child profile endpoints
type ChildHandler struct {
	childService *service.ChildService
	mediaService *service.MediaService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService, mediaService *service.MediaService) *ChildHandler {
	return &ChildHandler{
		childService: childService,
		mediaService: mediaService,
	}
}

type childRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

type childResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type avatarRequest struct {
	AvatarKey *string `json:"avatar_key"`
}

func (h *ChildHandler) childView(r *http.Request, child *models.Child) childResponse {
	resp := childResponse{
		ID:        child.ID,
		Name:      child.Name,
		BirthDate: child.BirthDate,
		CreatedAt: child.CreatedAt,
	}
	if child.AvatarKey != nil {
		resp.AvatarURL = h.mediaService.ResolveURL(r.Context(), *child.AvatarKey)
	}
	return resp
}

// List handles GET /api/children
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	children, err := h.childService.GetUserChildren(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load children", "GetUserChildren failed", err)
		return
	}

	views := make([]childResponse, 0, len(children))
	for i := range children {
		views = append(views, h.childView(r, &children[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// Create handles POST /api/children
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req childRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid birth date, expected YYYY-MM-DD", "", nil)
		return
	}

	child, err := h.childService.CreateChild(user.ID, req.Name, birthDate)
	if err != nil {
		respondChildError(w, err, "Failed to create child")
		return
	}

	respondJSON(w, http.StatusCreated, h.childView(r, child))
}

// Get handles GET /api/children/{id}
func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	child, err := h.childService.GetChild(user.ID, childID)
	if err != nil {
		respondChildError(w, err, "Failed to load child")
		return
	}

	respondJSON(w, http.StatusOK, h.childView(r, child))
}

// Update handles PUT /api/children/{id}
func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	var req childRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid birth date, expected YYYY-MM-DD", "", nil)
		return
	}

	child, err := h.childService.UpdateChild(user.ID, childID, req.Name, birthDate)
	if err != nil {
		respondChildError(w, err, "Failed to update child")
		return
	}

	respondJSON(w, http.StatusOK, h.childView(r, child))
}

// UpdateAvatar handles PUT /api/children/{id}/avatar
func (h *ChildHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	var req avatarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if err := h.childService.UpdateChildAvatar(user.ID, childID, req.AvatarKey); err != nil {
		respondChildError(w, err, "Failed to update avatar")
		return
	}

	child, err := h.childService.GetChild(user.ID, childID)
	if err != nil {
		respondChildError(w, err, "Failed to load child")
		return
	}

	respondJSON(w, http.StatusOK, h.childView(r, child))
}

// Delete handles DELETE /api/children/{id}
func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	if err := h.childService.DeleteChild(user.ID, childID); err != nil {
		respondChildError(w, err, "Failed to delete child")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func respondChildError(w http.ResponseWriter, err error, fallback string) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message, "", nil)
	case errors.Is(err, service.ErrChildNotFound):
		respondWithError(w, http.StatusNotFound, "Child not found", "", nil)
	case errors.Is(err, service.ErrNotChildOwner):
		respondWithError(w, http.StatusForbidden, "You do not have access to this child", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, fallback, fallback, err)
	}
}

func parseBirthDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// pathID parses a numeric path parameter
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
