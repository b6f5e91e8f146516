package service

import (
	"errors"
	"fmt"
	"time"

	"readingnest/internal/models"
	"readingnest/internal/repository"
	"readingnest/internal/validation"
)

var (
	ErrChildNotFound = errors.New("child not found")
	ErrNotChildOwner = errors.New("child does not belong to this account")
)

// ChildService handles child profile business logic
type ChildService struct {
	childRepo *repository.ChildRepository
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository) *ChildService {
	return &ChildService{childRepo: childRepo}
}

// CreateChild adds a child profile to a parent account
func (s *ChildService) CreateChild(userID int64, name string, birthDate time.Time) (*models.Child, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if birthDate.After(time.Now()) {
		return nil, validation.ValidationError{Field: "birth_date", Message: "birth date must be in the past"}
	}

	child, err := s.childRepo.CreateChild(userID, name, birthDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return child, nil
}

// GetChild retrieves a child owned by the given parent account
func (s *ChildService) GetChild(userID, childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if child.UserID != userID {
		return nil, ErrNotChildOwner
	}
	return child, nil
}

// GetUserChildren retrieves all children of a parent account
func (s *ChildService) GetUserChildren(userID int64) ([]models.Child, error) {
	return s.childRepo.GetUserChildren(userID)
}

// UpdateChild updates a child's name and birth date
func (s *ChildService) UpdateChild(userID, childID int64, name string, birthDate time.Time) (*models.Child, error) {
	if _, err := s.GetChild(userID, childID); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	if err := s.childRepo.UpdateChild(childID, name, birthDate); err != nil {
		return nil, err
	}

	return s.childRepo.GetChildByID(childID)
}

// UpdateChildAvatar sets or clears a child's avatar object key
func (s *ChildService) UpdateChildAvatar(userID, childID int64, avatarKey *string) error {
	if _, err := s.GetChild(userID, childID); err != nil {
		return err
	}
	return s.childRepo.UpdateChildAvatar(childID, avatarKey)
}

// DeleteChild removes a child profile and its activity records
func (s *ChildService) DeleteChild(userID, childID int64) error {
	if _, err := s.GetChild(userID, childID); err != nil {
		return err
	}
	return s.childRepo.DeleteChild(childID)
}
