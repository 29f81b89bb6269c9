package pipeline

import "errors"

var (
	// ErrMissingUpload is returned when no PDF has been uploaded yet.
	ErrMissingUpload = errors.New("no resume file found")
	// ErrExtraction is returned when text cannot be pulled from the PDF.
	ErrExtraction = errors.New("failed to extract content from PDF")
	// ErrInsufficientContent is returned when the PDF yields too little text.
	ErrInsufficientContent = errors.New("PDF content appears to be insufficient or unreadable")
	// ErrUsernameCreation is returned when no username could be allocated.
	ErrUsernameCreation = errors.New("failed to create username")
)
