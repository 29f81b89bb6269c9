package payments

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu            sync.Mutex
	payments      map[string]Payment
	subscriptions map[string]Subscription
	events        map[string]struct{}
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		payments:      make(map[string]Payment),
		subscriptions: make(map[string]Subscription),
		events:        make(map[string]struct{}),
	}
}

// CreateSubscription stores a subscription.
func (r *MemoryRepo) CreateSubscription(ctx context.Context, sub Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscriptions[sub.ID] = sub
	return nil
}

// CreatePayment stores a payment.
func (r *MemoryRepo) CreatePayment(ctx context.Context, payment Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = payment
	return nil
}

// GetPaymentByProviderID resolves a provider payment id.
func (r *MemoryRepo) GetPaymentByProviderID(ctx context.Context, providerPaymentID string) (Payment, error) {
	if err := ctx.Err(); err != nil {
		return Payment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ProviderPaymentID == providerPaymentID {
			return p, nil
		}
	}
	return Payment{}, ErrNotFound
}

// UpdatePaymentStatus sets the payment status.
func (r *MemoryRepo) UpdatePaymentStatus(ctx context.Context, paymentID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	r.payments[paymentID] = p
	return nil
}

// UpdateSubscriptionStatus sets the subscription status and activation time.
func (r *MemoryRepo) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, activatedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subscriptions[subscriptionID]
	if !ok {
		return ErrNotFound
	}
	sub.Status = status
	if activatedAt != nil {
		sub.ActivatedAt = activatedAt
	}
	r.subscriptions[subscriptionID] = sub
	return nil
}

// LatestSubscription returns the user's newest subscription.
func (r *MemoryRepo) LatestSubscription(ctx context.Context, userId string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var subs []Subscription
	for _, sub := range r.subscriptions {
		if sub.UserID == userId {
			subs = append(subs, sub)
		}
	}
	if len(subs) == 0 {
		return Subscription{}, ErrNotFound
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.After(subs[j].CreatedAt) })
	return subs[0], nil
}

// HasActiveSubscription reports whether the user has any active subscription.
func (r *MemoryRepo) HasActiveSubscription(ctx context.Context, userId string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subscriptions {
		if sub.UserID == userId && sub.Status == SubscriptionStatusActive {
			return true, nil
		}
	}
	return false, nil
}

// RecordWebhookEvent stores the event id, reporting false on replays.
func (r *MemoryRepo) RecordWebhookEvent(ctx context.Context, eventID, eventType, paymentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[eventID]; ok {
		return false, nil
	}
	r.events[eventID] = struct{}{}
	return true, nil
}

var _ Repo = (*MemoryRepo)(nil)
