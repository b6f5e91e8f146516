package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"readingnest/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Users      []UserBackup   `json:"users"`
	Children   []ChildBackup  `json:"children"`
	Words      []WordBackup   `json:"words"`
	Books      []BookBackup   `json:"books"`
	Moments    []MomentBackup `json:"moments"`
}

// UserBackup represents a parent account record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChildBackup represents a child profile record for backup
type ChildBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	AvatarKey *string   `json:"avatar_key"`
	CreatedAt time.Time `json:"created_at"`
}

// WordBackup represents a logged word for backup
type WordBackup struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	WordText  string    `json:"word_text"`
	CreatedAt time.Time `json:"created_at"`
}

// BookBackup represents a logged book for backup
type BookBackup struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// MomentBackup represents a moment record for backup
type MomentBackup struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	VideoKey     string    `json:"video_key"`
	ThumbnailKey *string   `json:"thumbnail_key"`
	TrimStart    *float64  `json:"trim_start"`
	TrimEnd      *float64  `json:"trim_end"`
	CreatedAt    time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportChildren(backup); err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}
	if err := s.exportWords(backup); err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}
	if err := s.exportBooks(backup); err != nil {
		return fmt.Errorf("failed to export books: %w", err)
	}
	if err := s.exportMoments(backup); err != nil {
		return fmt.Errorf("failed to export moments: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d children, %d words, %d books, %d moments",
		len(backup.Users), len(backup.Children), len(backup.Words),
		len(backup.Books), len(backup.Moments))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importChildren(backup.Children); err != nil {
		return fmt.Errorf("failed to import children: %w", err)
	}
	if err := s.importWords(backup.Words); err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if err := s.importBooks(backup.Books); err != nil {
		return fmt.Errorf("failed to import books: %w", err)
	}
	if err := s.importMoments(backup.Moments); err != nil {
		return fmt.Errorf("failed to import moments: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

// ClearAll removes all data in reverse dependency order
func (s *BackupService) ClearAll() error {
	tables := []string{"moments", "books", "words", "sessions", "children", "users"}
	for _, table := range tables {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportChildren(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, birth_date, avatar_key, created_at
		FROM children ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.BirthDate, &c.AvatarKey, &c.CreatedAt); err != nil {
			return err
		}
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) exportWords(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, child_id, word_text, created_at
		FROM words ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.ChildID, &w.WordText, &w.CreatedAt); err != nil {
			return err
		}
		backup.Words = append(backup.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportBooks(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, child_id, title, author, created_at
		FROM books ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var b BookBackup
		if err := rows.Scan(&b.ID, &b.ChildID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			return err
		}
		backup.Books = append(backup.Books, b)
	}
	return rows.Err()
}

func (s *BackupService) exportMoments(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, child_id, video_key, thumbnail_key, trim_start, trim_end, created_at
		FROM moments ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MomentBackup
		if err := rows.Scan(&m.ID, &m.ChildID, &m.VideoKey, &m.ThumbnailKey, &m.TrimStart, &m.TrimEnd, &m.CreatedAt); err != nil {
			return err
		}
		backup.Moments = append(backup.Moments, m)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	for _, u := range users {
		_, err := s.db.Exec(`
			INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, u.ID, u.Email, u.PasswordHash, u.Name, u.OAuthProvider, u.OAuthSubject, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	log.Printf("Imported %d users", len(users))
	return nil
}

func (s *BackupService) importChildren(children []ChildBackup) error {
	for _, c := range children {
		_, err := s.db.Exec(`
			INSERT INTO children (id, user_id, name, birth_date, avatar_key, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.UserID, c.Name, c.BirthDate, c.AvatarKey, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("child %d: %w", c.ID, err)
		}
	}
	log.Printf("Imported %d children", len(children))
	return nil
}

func (s *BackupService) importWords(words []WordBackup) error {
	for _, w := range words {
		_, err := s.db.Exec(`
			INSERT INTO words (id, child_id, word_text, created_at)
			VALUES (?, ?, ?, ?)
		`, w.ID, w.ChildID, w.WordText, w.CreatedAt)
		if err != nil {
			return fmt.Errorf("word %d: %w", w.ID, err)
		}
	}
	log.Printf("Imported %d words", len(words))
	return nil
}

func (s *BackupService) importBooks(books []BookBackup) error {
	for _, b := range books {
		_, err := s.db.Exec(`
			INSERT INTO books (id, child_id, title, author, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, b.ID, b.ChildID, b.Title, b.Author, b.CreatedAt)
		if err != nil {
			return fmt.Errorf("book %d: %w", b.ID, err)
		}
	}
	log.Printf("Imported %d books", len(books))
	return nil
}

func (s *BackupService) importMoments(moments []MomentBackup) error {
	for _, m := range moments {
		_, err := s.db.Exec(`
			INSERT INTO moments (id, child_id, video_key, thumbnail_key, trim_start, trim_end, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, m.ID, m.ChildID, m.VideoKey, m.ThumbnailKey, m.TrimStart, m.TrimEnd, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("moment %d: %w", m.ID, err)
		}
	}
	log.Printf("Imported %d moments", len(moments))
	return nil
}
