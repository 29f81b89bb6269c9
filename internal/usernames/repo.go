package usernames

import "context"

// Repo defines persistence for the username lookup table. Usernames map
// one-to-one with users in both directions.
type Repo interface {
	// CreateIfAbsent claims the username for the user only when the user
	// has no username yet. It reports whether the claim was written.
	CreateIfAbsent(ctx context.Context, userId, username string) (bool, error)
	// GetByUser returns the user's username, or ErrNotFound.
	GetByUser(ctx context.Context, userId string) (string, error)
	// GetUserID resolves a username to its owner, or ErrNotFound.
	GetUserID(ctx context.Context, username string) (string, error)
	// Rename atomically replaces the user's username. It reports false
	// when the new username is taken by someone else.
	Rename(ctx context.Context, userId, username string) (bool, error)
}
