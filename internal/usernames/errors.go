package usernames

import "errors"

var (
	// ErrNotFound is returned when no username exists for the lookup.
	ErrNotFound = errors.New("username not found")
	// ErrTaken is returned when the requested username belongs to another user.
	ErrTaken = errors.New("username already taken")
	// ErrInvalidUsername is returned for names failing validation rules.
	ErrInvalidUsername = errors.New("username must be 3-20 characters of letters, numbers, hyphens or underscores")
)
