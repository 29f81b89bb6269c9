package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"folio-backend/internal/extract"
	"folio-backend/internal/resumes"
	"folio-backend/internal/shared/metrics"
	"folio-backend/internal/shared/storage/object"
	"folio-backend/internal/shared/telemetry"
	"folio-backend/internal/usernames"
)

// minContentRunes is the minimum amount of trimmed extracted text needed
// before the record is worth structuring.
const minContentRunes = 100

// processTimeout bounds a full pipeline run including the LLM call.
const processTimeout = 40 * time.Second

// Identity carries the authenticated caller through the pipeline.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// Structurer turns raw resume text into structured resume data.
type Structurer interface {
	GenerateResume(ctx context.Context, resumeText string) (resumes.ResumeData, error)
}

// ExtractFunc pulls plain text from a stored object.
type ExtractFunc func(ctx context.Context, store object.ObjectStore, fileKey, mimeType, fileName string) (string, error)

// Processor runs the resume conversion pipeline: load the uploaded PDF,
// extract its text, structure it with the LLM, and make sure the user has
// a username for their public page.
type Processor struct {
	Records   resumes.Repo
	Store     object.ObjectStore
	Extract   ExtractFunc
	LLM       Structurer
	Usernames *usernames.Service
	Cleanup   *Cleanup
}

// NewProcessor constructs a Processor with the default PDF extractor.
func NewProcessor(records resumes.Repo, store object.ObjectStore, llm Structurer, names *usernames.Service, cleanup *Cleanup) *Processor {
	return &Processor{
		Records:   records,
		Store:     store,
		Extract:   extract.ExtractText,
		LLM:       llm,
		Usernames: names,
		Cleanup:   cleanup,
	}
}

// Process runs the pipeline for one user. Extraction always re-runs so a
// re-uploaded file is never served stale text; structuring is skipped when
// the record already has resume data. The username is allocated at most
// once per user.
func (p *Processor) Process(ctx context.Context, id Identity) error {
	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	metrics.IncPipelineStarted()
	start := time.Now()

	err := p.process(ctx, id)

	metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncPipelineFailed()
		telemetry.Error("pipeline.failed", map[string]any{
			"user_id": id.UserID,
			"err":     err.Error(),
		})
		return err
	}
	metrics.IncPipelineCompleted()
	return nil
}

func (p *Processor) process(ctx context.Context, id Identity) error {
	rec, err := p.Records.Get(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return ErrMissingUpload
		}
		return fmt.Errorf("load record: %w", err)
	}
	if rec.File == nil || rec.File.StorageKey == "" {
		return ErrMissingUpload
	}

	text, err := p.Extract(ctx, p.Store, rec.File.StorageKey, "application/pdf", rec.File.Name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minContentRunes {
		// The blob is useless; remove it so the user re-uploads rather
		// than re-running against the same unreadable file.
		if p.Cleanup != nil {
			p.Cleanup.Schedule(rec.File.StorageKey)
		}
		rec.File = nil
		rec.FileContent = nil
		rec.Stage = resumes.StageEmpty
		rec.UpdatedAt = time.Now().UTC()
		if putErr := p.Records.Put(ctx, rec); putErr != nil {
			telemetry.Error("pipeline.reset_failed", map[string]any{
				"user_id": id.UserID,
				"err":     putErr.Error(),
			})
		}
		return ErrInsufficientContent
	}

	rec.FileContent = &text
	rec.Stage = resumes.StageExtracted

	if rec.ResumeData == nil {
		data, genErr := p.LLM.GenerateResume(ctx, text)
		if genErr != nil {
			metrics.IncStructureFallback()
			telemetry.Error("pipeline.structure_fallback", map[string]any{
				"user_id": id.UserID,
				"err":     genErr.Error(),
			})
			data = FallbackResume(id)
		}
		data.Sanitize()
		data.Normalize()
		rec.ResumeData = &data
	}
	rec.Stage = resumes.StageStructured
	rec.UpdatedAt = time.Now().UTC()

	if err := p.Records.Put(ctx, rec); err != nil {
		return fmt.Errorf("store record: %w", err)
	}

	// The public handle comes from the resume's own name. The structured
	// data is always present here, either from the LLM or the fallback
	// object, which already folds in the OAuth name and email.
	displayName := strings.TrimSpace(rec.ResumeData.Header.Name)
	if displayName == "" {
		displayName = strings.TrimSpace(id.Name)
	}
	if displayName == "" {
		displayName = emailLocalPart(id.Email)
	}
	if _, err := p.Usernames.EnsureUsername(ctx, id.UserID, displayName); err != nil {
		return fmt.Errorf("%w: %v", ErrUsernameCreation, err)
	}

	return nil
}
