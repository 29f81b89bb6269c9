package usernames

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// chosenUsernamePattern validates usernames picked by users themselves.
// Generated usernames can be longer because of the salt suffix.
var chosenUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

// Service contains business logic for username ownership.
type Service struct {
	Repo Repo
}

// EnsureUsername returns the user's username, allocating one derived from
// the display name when the user has none. Allocation happens at most once
// per user regardless of how often this is called. A salt collision is not
// retried; the caller simply runs the pipeline again for a fresh salt.
func (s *Service) EnsureUsername(ctx context.Context, userId, displayName string) (string, error) {
	existing, err := s.Repo.GetByUser(ctx, userId)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	candidate := Generate(displayName)
	created, err := s.Repo.CreateIfAbsent(ctx, userId, candidate)
	if err != nil {
		return "", err
	}
	if created {
		return candidate, nil
	}

	// Not created: a concurrent call may already have claimed a username
	// for this user.
	existing, err = s.Repo.GetByUser(ctx, userId)
	if err == nil {
		return existing, nil
	}
	if errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("allocate username %q: %w", candidate, ErrTaken)
	}
	return "", err
}

// Get returns the user's username, or ErrNotFound.
func (s *Service) Get(ctx context.Context, userId string) (string, error) {
	return s.Repo.GetByUser(ctx, userId)
}

// Lookup resolves a username to its owning user, or ErrNotFound.
func (s *Service) Lookup(ctx context.Context, username string) (string, error) {
	return s.Repo.GetUserID(ctx, username)
}

// CheckAvailability reports whether a username passes validation and is
// not taken.
func (s *Service) CheckAvailability(ctx context.Context, username string) (bool, error) {
	if !chosenUsernamePattern.MatchString(username) {
		return false, ErrInvalidUsername
	}
	_, err := s.Repo.GetUserID(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Rename changes the user's username to one they picked.
func (s *Service) Rename(ctx context.Context, userId, username string) error {
	if !chosenUsernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	ok, err := s.Repo.Rename(ctx, userId, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaken
	}
	return nil
}
