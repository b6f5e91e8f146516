package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"readingnest/internal/database"
	"readingnest/internal/models"
)

// MomentRepository handles database operations for recorded moments
type MomentRepository struct {
	db *database.DB
}

// NewMomentRepository creates a new moment repository
func NewMomentRepository(db *database.DB) *MomentRepository {
	return &MomentRepository{db: db}
}

// CreateMoment registers an uploaded moment for a child
func (r *MomentRepository) CreateMoment(childID int64, videoKey string, thumbnailKey *string, trimStart, trimEnd *float64) (*models.Moment, error) {
	query := `
		INSERT INTO moments (child_id, video_key, thumbnail_key, trim_start, trim_end)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, childID, videoKey, thumbnailKey, trimStart, trimEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to create moment: %w", err)
	}

	return r.GetMomentByID(id)
}

// GetMomentByID retrieves a moment by ID, nil if not found
func (r *MomentRepository) GetMomentByID(momentID int64) (*models.Moment, error) {
	query := `
		SELECT id, child_id, video_key, thumbnail_key, trim_start, trim_end, created_at
		FROM moments
		WHERE id = ?
	`
	moment, err := scanMoment(r.db.QueryRow(query, momentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return moment, err
}

// GetRecentForChild retrieves a child's moments ordered by creation time,
// newest first, capped at limit
func (r *MomentRepository) GetRecentForChild(ctx context.Context, childID int64, limit int) ([]models.Moment, error) {
	query := `
		SELECT id, child_id, video_key, thumbnail_key, trim_start, trim_end, created_at
		FROM moments
		WHERE child_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query moments: %w", err)
	}
	defer rows.Close()

	var moments []models.Moment
	for rows.Next() {
		var moment models.Moment
		var thumbnailKey sql.NullString
		var trimStart, trimEnd sql.NullFloat64

		if err := rows.Scan(
			&moment.ID,
			&moment.ChildID,
			&moment.VideoKey,
			&thumbnailKey,
			&trimStart,
			&trimEnd,
			&moment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan moment: %w", err)
		}

		applyNullable(&moment, thumbnailKey, trimStart, trimEnd)
		moments = append(moments, moment)
	}

	return moments, rows.Err()
}

// CountForChild counts a child's moments, optionally restricted to records
// created at or after since
func (r *MomentRepository) CountForChild(ctx context.Context, childID int64, since *time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM moments WHERE child_id = ?"
	args := []interface{}{childID}
	if since != nil {
		query += " AND created_at >= ?"
		args = append(args, *since)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count moments: %w", err)
	}
	return count, nil
}

// UpdateTrim replaces a moment's trim offsets
func (r *MomentRepository) UpdateTrim(momentID int64, trimStart, trimEnd *float64) error {
	query := "UPDATE moments SET trim_start = ?, trim_end = ? WHERE id = ?"
	_, err := r.db.Exec(query, trimStart, trimEnd, momentID)
	if err != nil {
		return fmt.Errorf("failed to update moment trim: %w", err)
	}
	return nil
}

// DeleteMoment removes a moment record. The stored video object is cleaned
// up separately by the caller.
func (r *MomentRepository) DeleteMoment(momentID int64) error {
	query := "DELETE FROM moments WHERE id = ?"
	_, err := r.db.Exec(query, momentID)
	if err != nil {
		return fmt.Errorf("failed to delete moment: %w", err)
	}
	return nil
}

func scanMoment(row *sql.Row) (*models.Moment, error) {
	moment := &models.Moment{}
	var thumbnailKey sql.NullString
	var trimStart, trimEnd sql.NullFloat64

	err := row.Scan(
		&moment.ID,
		&moment.ChildID,
		&moment.VideoKey,
		&thumbnailKey,
		&trimStart,
		&trimEnd,
		&moment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get moment: %w", err)
	}

	applyNullable(moment, thumbnailKey, trimStart, trimEnd)
	return moment, nil
}

func applyNullable(moment *models.Moment, thumbnailKey sql.NullString, trimStart, trimEnd sql.NullFloat64) {
	if thumbnailKey.Valid {
		moment.ThumbnailKey = &thumbnailKey.String
	}
	if trimStart.Valid {
		moment.TrimStart = &trimStart.Float64
	}
	if trimEnd.Valid {
		moment.TrimEnd = &trimEnd.Float64
	}
}
