package repository

import (
	"database/sql"
	"fmt"
	"time"

	"readingnest/internal/database"
	"readingnest/internal/models"
)

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild creates a new child profile
func (r *ChildRepository) CreateChild(userID int64, name string, birthDate time.Time) (*models.Child, error) {
	query := "INSERT INTO children (user_id, name, birth_date) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, userID, name, birthDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return r.GetChildByID(id)
}

// GetChildByID retrieves a child by ID, nil if not found
func (r *ChildRepository) GetChildByID(childID int64) (*models.Child, error) {
	query := `
		SELECT id, user_id, name, birth_date, avatar_key, created_at, updated_at
		FROM children
		WHERE id = ?
	`
	child := &models.Child{}
	var avatarKey sql.NullString

	err := r.db.QueryRow(query, childID).Scan(
		&child.ID,
		&child.UserID,
		&child.Name,
		&child.BirthDate,
		&avatarKey,
		&child.CreatedAt,
		&child.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	if avatarKey.Valid {
		child.AvatarKey = &avatarKey.String
	}

	return child, nil
}

// GetUserChildren retrieves all children owned by a parent account
func (r *ChildRepository) GetUserChildren(userID int64) ([]models.Child, error) {
	query := `
		SELECT id, user_id, name, birth_date, avatar_key, created_at, updated_at
		FROM children
		WHERE user_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		var avatarKey sql.NullString
		if err := rows.Scan(
			&child.ID,
			&child.UserID,
			&child.Name,
			&child.BirthDate,
			&avatarKey,
			&child.CreatedAt,
			&child.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		if avatarKey.Valid {
			child.AvatarKey = &avatarKey.String
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

// UpdateChild updates a child's name and birth date
func (r *ChildRepository) UpdateChild(childID int64, name string, birthDate time.Time) error {
	query := "UPDATE children SET name = ?, birth_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, name, birthDate, childID)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// UpdateChildAvatar sets or clears a child's avatar object key
func (r *ChildRepository) UpdateChildAvatar(childID int64, avatarKey *string) error {
	query := "UPDATE children SET avatar_key = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, avatarKey, childID)
	if err != nil {
		return fmt.Errorf("failed to update child avatar: %w", err)
	}
	return nil
}

// DeleteChild deletes a child profile and, via cascade, its activity records
func (r *ChildRepository) DeleteChild(childID int64) error {
	query := "DELETE FROM children WHERE id = ?"
	_, err := r.db.Exec(query, childID)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}
