package usernames

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu     sync.Mutex
	byName map[string]string
	byUser map[string]string
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byName: make(map[string]string),
		byUser: make(map[string]string),
	}
}

// CreateIfAbsent claims the username unless the user already has one.
func (r *MemoryRepo) CreateIfAbsent(ctx context.Context, userId, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[userId]; ok {
		return false, nil
	}
	if _, ok := r.byName[username]; ok {
		return false, nil
	}
	r.byName[username] = userId
	r.byUser[userId] = username
	return true, nil
}

// GetByUser returns the username owned by a user.
func (r *MemoryRepo) GetByUser(ctx context.Context, userId string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	username, ok := r.byUser[userId]
	if !ok {
		return "", ErrNotFound
	}
	return username, nil
}

// GetUserID resolves a username to its owner.
func (r *MemoryRepo) GetUserID(ctx context.Context, username string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userId, ok := r.byName[username]
	if !ok {
		return "", ErrNotFound
	}
	return userId, nil
}

// Rename replaces the user's username when the target is free.
func (r *MemoryRepo) Rename(ctx context.Context, userId, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byName[username]; ok {
		return owner == userId, nil
	}
	if old, ok := r.byUser[userId]; ok {
		delete(r.byName, old)
	}
	r.byName[username] = userId
	r.byUser[userId] = username
	return true, nil
}

var _ Repo = (*MemoryRepo)(nil)
