package payments

import "errors"

var (
	// ErrNotFound is returned when the payment or subscription does not exist.
	ErrNotFound = errors.New("payment not found")
	// ErrInvalidSignature is returned for webhook payloads that fail verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrUnknownEvent is returned for webhook event types we do not handle.
	ErrUnknownEvent = errors.New("unknown webhook event type")
)
