package usernames

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestGenerateSlugAndSalt(t *testing.T) {
	got := Generate("Élise O'Brien!!")
	if !regexp.MustCompile(`^[a-z0-9-]*-[a-z0-9]{6}$`).MatchString(got) {
		t.Fatalf("unexpected username shape: %q", got)
	}
	if !strings.HasPrefix(got, "lise-obrien-") {
		t.Fatalf("expected slug prefix lise-obrien-, got %q", got)
	}
	if len(got) > MaxUsernameLength {
		t.Fatalf("username %q exceeds max length %d", got, MaxUsernameLength)
	}
}

func TestGenerateEmptyNameFallsBack(t *testing.T) {
	got := Generate("   !!!   ")
	if !strings.HasPrefix(got, "user-") {
		t.Fatalf("expected user- prefix for empty slug, got %q", got)
	}
}

func TestGenerateTruncatesLongNames(t *testing.T) {
	got := Generate(strings.Repeat("abcdefghij ", 10))
	if len(got) > MaxUsernameLength {
		t.Fatalf("username %q exceeds max length %d", got, MaxUsernameLength)
	}
}

func TestGenerateDiffersAcrossCalls(t *testing.T) {
	a := Generate("Jane Doe")
	b := Generate("Jane Doe")
	if a == b {
		t.Fatalf("expected different salts, got %q twice", a)
	}
}

func TestEnsureUsernameAllocatesOnce(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	first, err := svc.EnsureUsername(ctx, "user-1", "Jane Doe")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := svc.EnsureUsername(ctx, "user-1", "Jane Doe")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable username, got %q then %q", first, second)
	}
}

type collidingRepo struct {
	*MemoryRepo
	creates int
}

func (r *collidingRepo) CreateIfAbsent(ctx context.Context, userId, username string) (bool, error) {
	r.creates++
	return false, nil
}

func TestEnsureUsernameDoesNotRetryCollisions(t *testing.T) {
	repo := &collidingRepo{MemoryRepo: NewMemoryRepo()}
	svc := &Service{Repo: repo}

	_, err := svc.EnsureUsername(context.Background(), "user-1", "Jane Doe")
	if !errors.Is(err, ErrTaken) {
		t.Fatalf("expected ErrTaken on collision, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected a single allocation attempt, got %d", repo.creates)
	}
}

type racingRepo struct {
	*MemoryRepo
}

func (r *racingRepo) CreateIfAbsent(ctx context.Context, userId, username string) (bool, error) {
	// Another request claims a name for this user between the lookup
	// and the insert.
	if _, err := r.MemoryRepo.CreateIfAbsent(ctx, userId, "jane-doe-abc123"); err != nil {
		return false, err
	}
	return r.MemoryRepo.CreateIfAbsent(ctx, userId, username)
}

func TestEnsureUsernameConvergesOnConcurrentClaim(t *testing.T) {
	svc := &Service{Repo: &racingRepo{MemoryRepo: NewMemoryRepo()}}

	got, err := svc.EnsureUsername(context.Background(), "user-1", "Jane Doe")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got != "jane-doe-abc123" {
		t.Fatalf("expected the concurrently claimed username, got %q", got)
	}
}

func TestRenameValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if err := svc.Rename(ctx, "user-1", "ab"); err != ErrInvalidUsername {
		t.Fatalf("expected ErrInvalidUsername for short name, got %v", err)
	}
	if err := svc.Rename(ctx, "user-1", "has space"); err != ErrInvalidUsername {
		t.Fatalf("expected ErrInvalidUsername for spaces, got %v", err)
	}

	if err := svc.Rename(ctx, "user-1", "jane_doe"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := svc.Rename(ctx, "user-2", "jane_doe"); err != ErrTaken {
		t.Fatalf("expected ErrTaken, got %v", err)
	}
	// Renaming to your own current name is a no-op, not a conflict.
	if err := svc.Rename(ctx, "user-1", "jane_doe"); err != nil {
		t.Fatalf("self rename: %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	ok, err := svc.CheckAvailability(ctx, "free-name")
	if err != nil || !ok {
		t.Fatalf("expected available, got ok=%v err=%v", ok, err)
	}

	if err := svc.Rename(ctx, "user-1", "free-name"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	ok, err = svc.CheckAvailability(ctx, "free-name")
	if err != nil || ok {
		t.Fatalf("expected taken, got ok=%v err=%v", ok, err)
	}

	if _, err := svc.CheckAvailability(ctx, "x"); err != ErrInvalidUsername {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}
