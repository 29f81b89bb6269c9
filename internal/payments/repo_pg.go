package payments

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateSubscription inserts a new subscription.
func (r *PGRepo) CreateSubscription(ctx context.Context, sub Subscription) error {
	const query = `
INSERT INTO subscriptions (id, user_id, plan, status, activated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var activatedAt sql.NullTime
	if sub.ActivatedAt != nil {
		activatedAt = sql.NullTime{Time: *sub.ActivatedAt, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query, sub.ID, sub.UserID, sub.Plan, sub.Status, activatedAt, sub.CreatedAt)
	return err
}

// CreatePayment inserts a new payment.
func (r *PGRepo) CreatePayment(ctx context.Context, payment Payment) error {
	const query = `
INSERT INTO payments (id, user_id, provider_payment_id, subscription_id, amount_cents, currency, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		payment.ID,
		payment.UserID,
		payment.ProviderPaymentID,
		payment.SubscriptionID,
		payment.AmountCents,
		payment.Currency,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	return err
}

// GetPaymentByProviderID resolves a provider payment id.
func (r *PGRepo) GetPaymentByProviderID(ctx context.Context, providerPaymentID string) (Payment, error) {
	const query = `
SELECT id, user_id, provider_payment_id, subscription_id, amount_cents, currency, status, created_at, updated_at
FROM payments
WHERE provider_payment_id = $1`

	var p Payment
	var subscriptionID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, providerPaymentID).Scan(
		&p.ID,
		&p.UserID,
		&p.ProviderPaymentID,
		&subscriptionID,
		&p.AmountCents,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	if subscriptionID.Valid {
		p.SubscriptionID = subscriptionID.String
	}
	return p, nil
}

// UpdatePaymentStatus sets the payment status.
func (r *PGRepo) UpdatePaymentStatus(ctx context.Context, paymentID, status string) error {
	const query = `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, time.Now().UTC(), paymentID)
	return err
}

// UpdateSubscriptionStatus sets the subscription status and activation time.
func (r *PGRepo) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, activatedAt *time.Time) error {
	const query = `UPDATE subscriptions SET status = $1, activated_at = COALESCE($2, activated_at) WHERE id = $3`

	var at sql.NullTime
	if activatedAt != nil {
		at = sql.NullTime{Time: *activatedAt, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, status, at, subscriptionID)
	return err
}

// LatestSubscription returns the user's newest subscription.
func (r *PGRepo) LatestSubscription(ctx context.Context, userId string) (Subscription, error) {
	const query = `
SELECT id, user_id, plan, status, activated_at, created_at
FROM subscriptions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`

	var sub Subscription
	var activatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userId).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Plan,
		&sub.Status,
		&activatedAt,
		&sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, ErrNotFound
		}
		return Subscription{}, err
	}
	if activatedAt.Valid {
		sub.ActivatedAt = &activatedAt.Time
	}
	return sub, nil
}

// HasActiveSubscription reports whether the user has any active subscription.
func (r *PGRepo) HasActiveSubscription(ctx context.Context, userId string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND status = $2)`

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userId, SubscriptionStatusActive).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// RecordWebhookEvent stores the event id, reporting false on replays.
func (r *PGRepo) RecordWebhookEvent(ctx context.Context, eventID, eventType, paymentID string) (bool, error) {
	const query = `
INSERT INTO webhook_events (id, event_type, payment_id)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING`

	res, err := r.DB.ExecContext(ctx, query, eventID, eventType, paymentID)
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

var _ Repo = (*PGRepo)(nil)
