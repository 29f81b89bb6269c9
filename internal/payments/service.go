package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"folio-backend/internal/shared/telemetry"
)

// Webhook event types sent by the payment provider.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
	EventPaymentCancelled = "payment.cancelled"
)

// Service contains business logic for checkout and entitlements.
type Service struct {
	Repo Repo
}

// CreateCheckout opens a pending payment and subscription pair for the
// lifetime plan. The provider payment id is handed to the frontend so the
// provider can reference it in webhook events.
func (s *Service) CreateCheckout(ctx context.Context, userId string) (Payment, Subscription, error) {
	if userId == "" {
		return Payment{}, Subscription{}, errors.New("user id required")
	}

	now := time.Now().UTC()
	sub := Subscription{
		ID:        uuid.NewString(),
		UserID:    userId,
		Plan:      PlanLifetime,
		Status:    SubscriptionStatusPending,
		CreatedAt: now,
	}
	payment := Payment{
		ID:                uuid.NewString(),
		UserID:            userId,
		ProviderPaymentID: uuid.NewString(),
		SubscriptionID:    sub.ID,
		AmountCents:       lifetimePriceCents,
		Currency:          "usd",
		Status:            PaymentStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Repo.CreateSubscription(ctx, sub); err != nil {
		return Payment{}, Subscription{}, fmt.Errorf("create subscription: %w", err)
	}
	if err := s.Repo.CreatePayment(ctx, payment); err != nil {
		return Payment{}, Subscription{}, fmt.Errorf("create payment: %w", err)
	}
	return payment, sub, nil
}

// HandleEvent applies a verified webhook event. Replayed event ids are
// acknowledged without side effects.
func (s *Service) HandleEvent(ctx context.Context, eventID, eventType, providerPaymentID string) error {
	switch eventType {
	case EventPaymentSucceeded, EventPaymentFailed, EventPaymentCancelled:
	default:
		return ErrUnknownEvent
	}

	payment, err := s.Repo.GetPaymentByProviderID(ctx, providerPaymentID)
	if err != nil {
		return err
	}

	fresh, err := s.Repo.RecordWebhookEvent(ctx, eventID, eventType, payment.ID)
	if err != nil {
		return fmt.Errorf("record webhook event: %w", err)
	}
	if !fresh {
		telemetry.Info("payments.webhook_replay", map[string]any{
			"event_id":   eventID,
			"event_type": eventType,
		})
		return nil
	}

	switch eventType {
	case EventPaymentSucceeded:
		if err := s.Repo.UpdatePaymentStatus(ctx, payment.ID, PaymentStatusSucceeded); err != nil {
			return err
		}
		if payment.SubscriptionID != "" {
			now := time.Now().UTC()
			if err := s.Repo.UpdateSubscriptionStatus(ctx, payment.SubscriptionID, SubscriptionStatusActive, &now); err != nil {
				return err
			}
		}
	case EventPaymentFailed:
		if err := s.Repo.UpdatePaymentStatus(ctx, payment.ID, PaymentStatusFailed); err != nil {
			return err
		}
	case EventPaymentCancelled:
		if err := s.Repo.UpdatePaymentStatus(ctx, payment.ID, PaymentStatusCancelled); err != nil {
			return err
		}
		if payment.SubscriptionID != "" {
			if err := s.Repo.UpdateSubscriptionStatus(ctx, payment.SubscriptionID, SubscriptionStatusCancelled, nil); err != nil {
				return err
			}
		}
	}

	telemetry.Info("payments.webhook_applied", map[string]any{
		"event_id":   eventID,
		"event_type": eventType,
		"payment_id": payment.ID,
		"user_id":    payment.UserID,
	})
	return nil
}

// SubscriptionStatus returns the user's latest subscription state.
func (s *Service) SubscriptionStatus(ctx context.Context, userId string) (Subscription, error) {
	return s.Repo.LatestSubscription(ctx, userId)
}

// HasActiveSubscription reports whether the user may publish.
func (s *Service) HasActiveSubscription(ctx context.Context, userId string) (bool, error) {
	return s.Repo.HasActiveSubscription(ctx, userId)
}
