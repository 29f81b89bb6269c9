package payments

import (
	"context"
	"time"
)

// Repo defines persistence for payments, subscriptions, and webhook events.
type Repo interface {
	CreateSubscription(ctx context.Context, sub Subscription) error
	CreatePayment(ctx context.Context, payment Payment) error
	// GetPaymentByProviderID resolves a provider payment id, or ErrNotFound.
	GetPaymentByProviderID(ctx context.Context, providerPaymentID string) (Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID, status string) error
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, activatedAt *time.Time) error
	// LatestSubscription returns the user's newest subscription, or ErrNotFound.
	LatestSubscription(ctx context.Context, userId string) (Subscription, error)
	HasActiveSubscription(ctx context.Context, userId string) (bool, error)
	// RecordWebhookEvent stores the event id for replay protection. It
	// reports false when the event was already seen.
	RecordWebhookEvent(ctx context.Context, eventID, eventType, paymentID string) (bool, error)
}
