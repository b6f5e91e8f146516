package handlers

import (
	"net/http"

	"readingnest/internal/service"
)

const defaultRecentMoments = 20

// MomentHandler handles moment recording and playback endpoints
type MomentHandler struct {
	activityService *service.ActivityService
	childService    *service.ChildService
	statsService    *service.StatsService
	mediaService    *service.MediaService
}

// NewMomentHandler creates a new moment handler
func NewMomentHandler(activityService *service.ActivityService, childService *service.ChildService, statsService *service.StatsService, mediaService *service.MediaService) *MomentHandler {
	return &MomentHandler{
		activityService: activityService,
		childService:    childService,
		statsService:    statsService,
		mediaService:    mediaService,
	}
}

type createMomentRequest struct {
	VideoKey     string   `json:"video_key"`
	ThumbnailKey *string  `json:"thumbnail_key"`
	TrimStart    *float64 `json:"trim_start"`
	TrimEnd      *float64 `json:"trim_end"`
}

type trimRequest struct {
	TrimStart *float64 `json:"trim_start"`
	TrimEnd   *float64 `json:"trim_end"`
}

type presignUploadRequest struct {
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
}

type presignUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// Create handles POST /api/children/{id}/moments
func (h *MomentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	var req createMomentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	moment, err := h.activityService.RegisterMoment(user.ID, childID, req.VideoKey, req.ThumbnailKey, req.TrimStart, req.TrimEnd)
	if err != nil {
		respondActivityError(w, err, "Failed to record moment")
		return
	}

	respondJSON(w, http.StatusCreated, moment)
}

// Recent handles GET /api/children/{id}/moments/recent
func (h *MomentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	// Ownership check before touching moment data
	if _, err := h.childService.GetChild(user.ID, childID); err != nil {
		respondActivityError(w, err, "Failed to load moments")
		return
	}

	limit := queryLimit(r)
	if r.URL.Query().Get("limit") == "" {
		limit = defaultRecentMoments
	}

	moments, err := h.statsService.RecentMoments(r.Context(), childID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load moments", "RecentMoments failed", err)
		return
	}

	respondJSON(w, http.StatusOK, moments)
}

// UpdateTrim handles PUT /api/children/{id}/moments/{momentId}/trim
func (h *MomentHandler) UpdateTrim(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}
	momentID, err := pathID(r, "momentId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid moment ID", "", nil)
		return
	}

	var req trimRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	moment, err := h.activityService.UpdateMomentTrim(user.ID, childID, momentID, req.TrimStart, req.TrimEnd)
	if err != nil {
		respondActivityError(w, err, "Failed to update trim")
		return
	}

	respondJSON(w, http.StatusOK, moment)
}

// Delete handles DELETE /api/children/{id}/moments/{momentId}
func (h *MomentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	childID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}
	momentID, err := pathID(r, "momentId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid moment ID", "", nil)
		return
	}

	if err := h.activityService.DeleteMoment(user.ID, childID, momentID); err != nil {
		respondActivityError(w, err, "Failed to delete moment")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// PresignUpload handles POST /api/uploads/presign. The app uploads video,
// thumbnail and avatar files directly to object storage using the
// returned URL, then registers the object key with the relevant record.
func (h *MomentHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req presignUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	switch req.Kind {
	case "video", "thumbnail", "avatar":
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid upload kind", "", nil)
		return
	}

	if !h.mediaService.IsEnabled() {
		respondWithError(w, http.StatusServiceUnavailable, "Media storage is not configured", "", nil)
		return
	}

	uploadURL, objectKey, err := h.mediaService.PresignUpload(r.Context(), req.Kind, req.Filename)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create upload URL", "PresignUpload failed", err)
		return
	}

	respondJSON(w, http.StatusOK, presignUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	})
}
