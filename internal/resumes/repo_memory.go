package resumes

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record)}
}

// Get returns the record for a user.
func (r *MemoryRepo) Get(ctx context.Context, userId string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[userId]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// Put stores the record keyed by user.
func (r *MemoryRepo) Put(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.UserID] = cloneRecord(rec)
	return nil
}

// cloneRecord deep-copies a record so callers cannot alias stored state.
func cloneRecord(rec Record) Record {
	out := rec
	if rec.File != nil {
		ref := *rec.File
		out.File = &ref
	}
	if rec.FileContent != nil {
		content := *rec.FileContent
		out.FileContent = &content
	}
	if rec.ResumeData != nil {
		encoded, err := json.Marshal(rec.ResumeData)
		if err == nil {
			var data ResumeData
			if json.Unmarshal(encoded, &data) == nil {
				out.ResumeData = &data
			}
		}
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
