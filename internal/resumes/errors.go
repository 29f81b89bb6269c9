package resumes

import "errors"

var (
	// ErrNotFound is returned when no resume record exists for a user.
	ErrNotFound = errors.New("resume record not found")
	// ErrInvalidInput covers malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTheme is returned for unknown theme identifiers.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrNotPDF is returned when the uploaded file is not a PDF.
	ErrNotPDF = errors.New("only PDF files are accepted")
	// ErrNotImage is returned when the uploaded profile picture is not an image.
	ErrNotImage = errors.New("only JPEG, PNG and WebP images are accepted")
	// ErrFileTooLarge is returned when the upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrSubscriptionRequired gates publishing behind an active subscription.
	ErrSubscriptionRequired = errors.New("active subscription required")
)
