package payments

import (
	"context"
	"errors"
	"testing"
)

func TestCheckoutAndActivation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	payment, sub, err := svc.CreateCheckout(ctx, "user-1")
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if payment.Status != PaymentStatusPending || sub.Status != SubscriptionStatusPending {
		t.Fatalf("expected pending pair, got payment=%q sub=%q", payment.Status, sub.Status)
	}

	active, err := svc.HasActiveSubscription(ctx, "user-1")
	if err != nil || active {
		t.Fatalf("expected no active subscription before webhook, got active=%v err=%v", active, err)
	}

	if err := svc.HandleEvent(ctx, "evt_1", EventPaymentSucceeded, payment.ProviderPaymentID); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	active, err = svc.HasActiveSubscription(ctx, "user-1")
	if err != nil || !active {
		t.Fatalf("expected active subscription after success, got active=%v err=%v", active, err)
	}

	latest, err := svc.SubscriptionStatus(ctx, "user-1")
	if err != nil {
		t.Fatalf("SubscriptionStatus: %v", err)
	}
	if latest.Status != SubscriptionStatusActive || latest.ActivatedAt == nil {
		t.Fatalf("expected activated subscription, got %+v", latest)
	}
}

func TestHandleEventReplayIsIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	payment, _, err := svc.CreateCheckout(ctx, "user-1")
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	if err := svc.HandleEvent(ctx, "evt_1", EventPaymentSucceeded, payment.ProviderPaymentID); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	// Same event id delivered again is acknowledged without error.
	if err := svc.HandleEvent(ctx, "evt_1", EventPaymentCancelled, payment.ProviderPaymentID); err != nil {
		t.Fatalf("replay: %v", err)
	}

	active, err := svc.HasActiveSubscription(ctx, "user-1")
	if err != nil || !active {
		t.Fatalf("expected replay to not change state, got active=%v err=%v", active, err)
	}
}

func TestHandleEventFailureAndCancellation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	payment, _, err := svc.CreateCheckout(ctx, "user-1")
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	if err := svc.HandleEvent(ctx, "evt_1", EventPaymentFailed, payment.ProviderPaymentID); err != nil {
		t.Fatalf("failed event: %v", err)
	}
	if active, _ := svc.HasActiveSubscription(ctx, "user-1"); active {
		t.Fatal("expected no entitlement after failed payment")
	}

	if err := svc.HandleEvent(ctx, "evt_2", EventPaymentCancelled, payment.ProviderPaymentID); err != nil {
		t.Fatalf("cancelled event: %v", err)
	}
	sub, err := svc.SubscriptionStatus(ctx, "user-1")
	if err != nil {
		t.Fatalf("SubscriptionStatus: %v", err)
	}
	if sub.Status != SubscriptionStatusCancelled {
		t.Fatalf("expected cancelled subscription, got %q", sub.Status)
	}
}

func TestHandleEventUnknownTypeAndPayment(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if err := svc.HandleEvent(ctx, "evt_1", "payment.refunded", "pay_x"); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if err := svc.HandleEvent(ctx, "evt_1", EventPaymentSucceeded, "pay_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
