package llm

import (
	"context"
	"errors"

	"folio-backend/internal/resumes"
)

// retryClient wraps a Client with a bounded number of extra attempts.
type retryClient struct {
	inner   Client
	retries int
}

// WithRetry wraps client so transient provider failures are retried up to
// the given number of additional attempts. Context cancellation stops
// retrying immediately.
func WithRetry(client Client, retries int) Client {
	if retries <= 0 {
		return client
	}
	return &retryClient{inner: client, retries: retries}
}

func (r *retryClient) GenerateResume(ctx context.Context, resumeText string) (resumes.ResumeData, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		data, err := r.inner.GenerateResume(ctx, resumeText)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			break
		}
	}
	return resumes.ResumeData{}, lastErr
}
