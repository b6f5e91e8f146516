package models

import "time"

// Word represents a vocabulary word a parent logged for a child
type Word struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	WordText  string    `json:"word_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Book represents a book a parent logged for a child
type Book struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
