package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateWordText checks a logged vocabulary word
func ValidateWordText(word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ValidationError{Field: "word_text", Message: "word is required"}
	}
	if len(word) > 100 {
		return ValidationError{Field: "word_text", Message: "word must be at most 100 characters"}
	}
	return nil
}

// ValidateBookTitle checks a logged book title
func ValidateBookTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > 300 {
		return ValidationError{Field: "title", Message: "title must be at most 300 characters"}
	}
	return nil
}

// ValidateTrim checks moment trim offsets. Both may be absent; when both
// are present the end offset must come after the start.
func ValidateTrim(start, end *float64) error {
	if start != nil && *start < 0 {
		return ValidationError{Field: "trim_start", Message: "trim start must not be negative"}
	}
	if end != nil && *end < 0 {
		return ValidationError{Field: "trim_end", Message: "trim end must not be negative"}
	}
	if start != nil && end != nil && *end <= *start {
		return ValidationError{Field: "trim_end", Message: "trim end must be after trim start"}
	}
	return nil
}
