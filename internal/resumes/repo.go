package resumes

import "context"

// Repo defines persistence for per-user resume records.
type Repo interface {
	// Get returns the record for a user, or ErrNotFound.
	Get(ctx context.Context, userId string) (Record, error)
	// Put writes the full record, creating it if absent.
	Put(ctx context.Context, rec Record) error
}
