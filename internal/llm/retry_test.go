package llm

import (
	"context"
	"errors"
	"testing"

	"folio-backend/internal/resumes"
)

type flakyClient struct {
	failures int
	calls    int
}

func (f *flakyClient) GenerateResume(ctx context.Context, resumeText string) (resumes.ResumeData, error) {
	f.calls++
	if f.calls <= f.failures {
		return resumes.ResumeData{}, errors.New("transient")
	}
	return resumes.ResumeData{Header: resumes.Header{Name: "Jane"}}, nil
}

func TestWithRetryRecovers(t *testing.T) {
	inner := &flakyClient{failures: 1}
	client := WithRetry(inner, 1)

	data, err := client.GenerateResume(context.Background(), "text")
	if err != nil {
		t.Fatalf("GenerateResume: %v", err)
	}
	if data.Header.Name != "Jane" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", inner.calls)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	inner := &flakyClient{failures: 10}
	client := WithRetry(inner, 1)

	if _, err := client.GenerateResume(context.Background(), "text"); err == nil {
		t.Fatalf("expected error after retries exhausted")
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", inner.calls)
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &flakyClient{failures: 10}
	client := WithRetry(inner, 3)

	if _, err := client.GenerateResume(ctx, "text"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if inner.calls != 1 {
		t.Fatalf("expected single call after cancel, got %d", inner.calls)
	}
}
