package service

import (
	"errors"
	"strings"

	"readingnest/internal/models"
	"readingnest/internal/repository"
	"readingnest/internal/validation"
)

var ErrMomentNotFound = errors.New("moment not found")

// ActivityService handles the logging of words, books, and moments
type ActivityService struct {
	wordRepo   *repository.WordRepository
	bookRepo   *repository.BookRepository
	momentRepo *repository.MomentRepository
	children   *ChildService
}

// NewActivityService creates a new activity service
func NewActivityService(wordRepo *repository.WordRepository, bookRepo *repository.BookRepository, momentRepo *repository.MomentRepository, children *ChildService) *ActivityService {
	return &ActivityService{
		wordRepo:   wordRepo,
		bookRepo:   bookRepo,
		momentRepo: momentRepo,
		children:   children,
	}
}

// LogWord records a vocabulary word for a child
func (s *ActivityService) LogWord(userID, childID int64, wordText string) (*models.Word, error) {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return nil, err
	}

	wordText = strings.TrimSpace(wordText)
	if err := validation.ValidateWordText(wordText); err != nil {
		return nil, err
	}

	return s.wordRepo.CreateWord(childID, wordText)
}

// GetChildWords retrieves logged words for a child, newest first
func (s *ActivityService) GetChildWords(userID, childID int64, limit int) ([]models.Word, error) {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return nil, err
	}
	return s.wordRepo.GetChildWords(childID, limit)
}

// DeleteWord removes a logged word
func (s *ActivityService) DeleteWord(userID, childID, wordID int64) error {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return err
	}
	return s.wordRepo.DeleteWord(childID, wordID)
}

// LogBook records a book for a child
func (s *ActivityService) LogBook(userID, childID int64, title, author string) (*models.Book, error) {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if err := validation.ValidateBookTitle(title); err != nil {
		return nil, err
	}

	return s.bookRepo.CreateBook(childID, title, strings.TrimSpace(author))
}

// GetChildBooks retrieves logged books for a child, newest first
func (s *ActivityService) GetChildBooks(userID, childID int64, limit int) ([]models.Book, error) {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return nil, err
	}
	return s.bookRepo.GetChildBooks(childID, limit)
}

// DeleteBook removes a logged book
func (s *ActivityService) DeleteBook(userID, childID, bookID int64) error {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return err
	}
	return s.bookRepo.DeleteBook(childID, bookID)
}

// RegisterMoment records an uploaded moment video for a child. The video
// object must already exist in storage; trim offsets are optional.
func (s *ActivityService) RegisterMoment(userID, childID int64, videoKey string, thumbnailKey *string, trimStart, trimEnd *float64) (*models.Moment, error) {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(videoKey) == "" {
		return nil, validation.ValidationError{Field: "video_key", Message: "video key is required"}
	}
	if err := validation.ValidateTrim(trimStart, trimEnd); err != nil {
		return nil, err
	}

	return s.momentRepo.CreateMoment(childID, videoKey, thumbnailKey, trimStart, trimEnd)
}

// UpdateMomentTrim replaces a moment's trim offsets
func (s *ActivityService) UpdateMomentTrim(userID, childID, momentID int64, trimStart, trimEnd *float64) (*models.Moment, error) {
	if err := s.checkMomentOwner(userID, childID, momentID); err != nil {
		return nil, err
	}
	if err := validation.ValidateTrim(trimStart, trimEnd); err != nil {
		return nil, err
	}

	if err := s.momentRepo.UpdateTrim(momentID, trimStart, trimEnd); err != nil {
		return nil, err
	}

	return s.momentRepo.GetMomentByID(momentID)
}

// DeleteMoment removes a moment record
func (s *ActivityService) DeleteMoment(userID, childID, momentID int64) error {
	if err := s.checkMomentOwner(userID, childID, momentID); err != nil {
		return err
	}
	return s.momentRepo.DeleteMoment(momentID)
}

func (s *ActivityService) checkMomentOwner(userID, childID, momentID int64) error {
	if _, err := s.children.GetChild(userID, childID); err != nil {
		return err
	}

	moment, err := s.momentRepo.GetMomentByID(momentID)
	if err != nil {
		return err
	}
	if moment == nil || moment.ChildID != childID {
		return ErrMomentNotFound
	}
	return nil
}
