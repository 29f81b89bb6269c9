package llm

import (
	"context"
	"errors"

	"folio-backend/internal/resumes"
)

// Client abstracts LLM providers for resume structuring.
type Client interface {
	// GenerateResume turns raw extracted resume text into structured
	// resume data.
	GenerateResume(ctx context.Context, resumeText string) (resumes.ResumeData, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// ErrEmptyResult is returned when the provider responds without usable data.
var ErrEmptyResult = errors.New("LLM returned an empty result")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// GenerateResume returns ErrNotImplemented.
func (PlaceholderClient) GenerateResume(ctx context.Context, resumeText string) (resumes.ResumeData, error) {
	_ = ctx
	_ = resumeText
	return resumes.ResumeData{}, ErrNotImplemented
}
