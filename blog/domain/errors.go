package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("blog not found")

// ErrInvalidCredentials is returned when admin login credentials do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSlugConflict is returned by the post repository when an insert or
// update violates the slug uniqueness constraint.
var ErrSlugConflict = errors.New("slug already in use")

// ValidationError indicates a missing or malformed required field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UploadError indicates a failure uploading an image to the image store.
// Uploads happen before the post record is persisted, so an UploadError
// means no record was created or modified.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ImageDeleteError indicates a failure deleting an image from the image
// store. Deletion is best-effort; callers downgrade this to a warning.
type ImageDeleteError struct {
	PublicID string
	Err      error
}

func (e *ImageDeleteError) Error() string {
	return fmt.Sprintf("failed to delete image %s: %v", e.PublicID, e.Err)
}

func (e *ImageDeleteError) Unwrap() error {
	return e.Err
}

// ConfigurationError indicates required configuration (admin credentials,
// signing secret, image store keys) is missing.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server configuration error: %s is not set", e.Missing)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
