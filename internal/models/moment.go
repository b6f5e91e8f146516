package models

import "time"

// Moment represents a short recorded video associated with a child.
// Trim offsets are seconds into the raw video; when both are present
// TrimEnd must be greater than TrimStart. The video itself lives in
// object storage and is only referenced by key here.
type Moment struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	VideoKey     string    `json:"-"`
	ThumbnailKey *string   `json:"-"`
	TrimStart    *float64  `json:"trim_start,omitempty"`
	TrimEnd      *float64  `json:"trim_end,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasValidTrim reports whether the trim offsets are usable
func (m *Moment) HasValidTrim() bool {
	if m.TrimStart == nil || m.TrimEnd == nil {
		return false
	}
	return *m.TrimEnd > *m.TrimStart
}

// ResolvedMoment is a moment with short-lived signed URLs attached.
// Either URL may be nil when resolution failed; the client substitutes
// a placeholder.
type ResolvedMoment struct {
	Moment
	VideoURL     *string `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
