package repository

import (
	"context"
	"fmt"
	"time"

	"readingnest/internal/database"
	"readingnest/internal/models"
)

// BookRepository handles database operations for logged books
type BookRepository struct {
	db *database.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *database.DB) *BookRepository {
	return &BookRepository{db: db}
}

// CreateBook logs a book for a child
func (r *BookRepository) CreateBook(childID int64, title, author string) (*models.Book, error) {
	query := "INSERT INTO books (child_id, title, author) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, childID, title, author)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &models.Book{
		ID:        id,
		ChildID:   childID,
		Title:     title,
		Author:    author,
		CreatedAt: time.Now(),
	}, nil
}

// GetChildBooks retrieves logged books for a child, newest first
func (r *BookRepository) GetChildBooks(childID int64, limit int) ([]models.Book, error) {
	query := `
		SELECT id, child_id, title, author, created_at
		FROM books
		WHERE child_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.ID, &book.ChildID, &book.Title, &book.Author, &book.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// CountForChild counts a child's books, optionally restricted to records
// created at or after since
func (r *BookRepository) CountForChild(ctx context.Context, childID int64, since *time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM books WHERE child_id = ?"
	args := []interface{}{childID}
	if since != nil {
		query += " AND created_at >= ?"
		args = append(args, *since)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// DeleteBook removes a logged book. Scoped by child so a book can only
// be deleted through its own child.
func (r *BookRepository) DeleteBook(childID, bookID int64) error {
	query := "DELETE FROM books WHERE id = ? AND child_id = ?"
	_, err := r.db.Exec(query, bookID, childID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
