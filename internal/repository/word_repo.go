package repository

import (
	"context"
	"fmt"
	"time"

	"readingnest/internal/database"
	"readingnest/internal/models"
)

// WordRepository handles database operations for logged vocabulary words
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// CreateWord logs a word for a child
func (r *WordRepository) CreateWord(childID int64, wordText string) (*models.Word, error) {
	query := "INSERT INTO words (child_id, word_text) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, childID, wordText)
	if err != nil {
		return nil, fmt.Errorf("failed to create word: %w", err)
	}

	return &models.Word{
		ID:        id,
		ChildID:   childID,
		WordText:  wordText,
		CreatedAt: time.Now(),
	}, nil
}

// GetChildWords retrieves logged words for a child, newest first
func (r *WordRepository) GetChildWords(childID int64, limit int) ([]models.Word, error) {
	query := `
		SELECT id, child_id, word_text, created_at
		FROM words
		WHERE child_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(&word.ID, &word.ChildID, &word.WordText, &word.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// CountForChild counts a child's words, optionally restricted to records
// created at or after since
func (r *WordRepository) CountForChild(ctx context.Context, childID int64, since *time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM words WHERE child_id = ?"
	args := []interface{}{childID}
	if since != nil {
		query += " AND created_at >= ?"
		args = append(args, *since)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// DeleteWord removes a logged word. Scoped by child so a word can only
// be deleted through its own child.
func (r *WordRepository) DeleteWord(childID, wordID int64) error {
	query := "DELETE FROM words WHERE id = ? AND child_id = ?"
	_, err := r.db.Exec(query, wordID, childID)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return nil
}
