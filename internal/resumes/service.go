package resumes

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"folio-backend/internal/shared/storage/object"
)

// PublicFileURLPrefix is where stored profile pictures are served from.
const PublicFileURLPrefix = "/api/v1/files/"

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// SubscriptionChecker reports whether a user may publish their page.
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userId string) (bool, error)
}

// BlobCleaner schedules background deletion of superseded objects.
type BlobCleaner interface {
	Schedule(storageKey string)
}

// Service contains business logic for resume records.
type Service struct {
	Repo          Repo
	Store         object.ObjectStore
	Subscriptions SubscriptionChecker
	Cleaner       BlobCleaner
}

// Get returns the resume record for a user.
func (s *Service) Get(ctx context.Context, userId string) (Record, error) {
	if userId == "" {
		return Record{}, errors.New("user id required")
	}
	return s.Repo.Get(ctx, userId)
}

// AttachUpload stores the uploaded PDF and resets the record to the uploaded
// stage. Extracted content and structured data from a previous file are
// cleared in the same write so the record never mixes files. The superseded
// blob is deleted in the background.
func (s *Service) AttachUpload(ctx context.Context, userId, fileName string, r io.Reader) (Record, error) {
	if fileName == "" {
		return Record{}, ErrInvalidInput
	}
	if !strings.EqualFold(path.Ext(fileName), ".pdf") {
		return Record{}, ErrNotPDF
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Record{}, err
	}
	if mimeType != "application/pdf" {
		// The sniffed type wins over the extension. Remove the blob we
		// just wrote before rejecting.
		if s.Cleaner != nil {
			s.Cleaner.Schedule(storageKey)
		}
		return Record{}, ErrNotPDF
	}

	now := time.Now().UTC()
	rec, err := s.Repo.Get(ctx, userId)
	switch {
	case errors.Is(err, ErrNotFound):
		rec = Record{UserID: userId, Status: StatusDraft, CreatedAt: now}
	case err != nil:
		return Record{}, err
	default:
		if rec.File != nil && rec.File.StorageKey != "" && s.Cleaner != nil {
			s.Cleaner.Schedule(rec.File.StorageKey)
		}
	}

	rec.File = &FileRef{
		Name:       fileName,
		URL:        "/api/v1/resume/file",
		Size:       size,
		StorageKey: storageKey,
	}
	rec.FileContent = nil
	rec.ResumeData = nil
	rec.Stage = StageUploaded
	rec.UpdatedAt = now

	if err := s.Repo.Put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// AttachProfilePicture stores an uploaded image and points the resume's
// profilePicture at its public URL. A superseded picture blob is deleted
// in the background.
func (s *Service) AttachProfilePicture(ctx context.Context, userId, fileName string, r io.Reader) (Record, error) {
	if fileName == "" {
		return Record{}, ErrInvalidInput
	}
	if _, ok := imageExts[strings.ToLower(path.Ext(fileName))]; !ok {
		return Record{}, ErrNotImage
	}

	rec, err := s.Repo.Get(ctx, userId)
	if err != nil {
		return Record{}, err
	}
	if rec.ResumeData == nil {
		return Record{}, ErrInvalidInput
	}

	storageKey, _, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Record{}, err
	}
	if !strings.HasPrefix(mimeType, "image/") {
		if s.Cleaner != nil {
			s.Cleaner.Schedule(storageKey)
		}
		return Record{}, ErrNotImage
	}

	if old := rec.ResumeData.ProfilePicture; strings.HasPrefix(old, PublicFileURLPrefix) && s.Cleaner != nil {
		s.Cleaner.Schedule(strings.TrimPrefix(old, PublicFileURLPrefix))
	}

	rec.ResumeData.ProfilePicture = PublicFileURLPrefix + storageKey
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// OpenPicture opens a stored profile picture by key for public serving.
// Only image keys are served; anything else is reported as missing.
func (s *Service) OpenPicture(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	ext := strings.ToLower(path.Ext(storageKey))
	if _, ok := imageExts[ext]; !ok {
		return nil, "", ErrNotFound
	}
	rd, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return nil, "", ErrNotFound
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rd, contentType, nil
}

// Update applies edited resume data and/or a status change. Going live
// requires structured data and an active subscription.
func (s *Service) Update(ctx context.Context, userId string, data *ResumeData, status string) (Record, error) {
	rec, err := s.Repo.Get(ctx, userId)
	if err != nil {
		return Record{}, err
	}

	if data != nil {
		if err := data.Validate(); err != nil {
			return Record{}, err
		}
		data.Sanitize()
		data.Normalize()
		rec.ResumeData = data
		if rec.Stage != StageStructured {
			rec.Stage = StageStructured
		}
	}

	if status != "" {
		if status != StatusDraft && status != StatusLive {
			return Record{}, ErrInvalidInput
		}
		if status == StatusLive {
			if rec.ResumeData == nil {
				return Record{}, ErrInvalidInput
			}
			active, err := s.Subscriptions.HasActiveSubscription(ctx, userId)
			if err != nil {
				return Record{}, err
			}
			if !active {
				return Record{}, ErrSubscriptionRequired
			}
		}
		rec.Status = status
	}

	rec.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// OpenFile opens the user's current uploaded PDF for reading.
func (s *Service) OpenFile(ctx context.Context, userId string) (io.ReadCloser, *FileRef, error) {
	rec, err := s.Repo.Get(ctx, userId)
	if err != nil {
		return nil, nil, err
	}
	if rec.File == nil || rec.File.StorageKey == "" {
		return nil, nil, ErrNotFound
	}
	rd, err := s.Store.Open(ctx, rec.File.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return rd, rec.File, nil
}
