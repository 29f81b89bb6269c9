package payments

import "time"

// Payment statuses follow the provider lifecycle.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Subscription statuses. Only an active subscription unlocks publishing.
const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// PlanLifetime is the single one-time-payment plan on offer.
const PlanLifetime = "lifetime"

const lifetimePriceCents = 5900

// Plan describes a purchasable plan for the pricing page.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
	Interval   string `json:"interval"`
}

// Plans lists the plans on offer. There is a single one-time purchase;
// the list shape keeps the pricing page stable if more are added.
func Plans() []Plan {
	return []Plan{
		{
			ID:         PlanLifetime,
			Name:       "Lifetime",
			PriceCents: lifetimePriceCents,
			Currency:   "usd",
			Interval:   "one_time",
		},
	}
}

// Payment is one checkout attempt reported by the payment provider.
type Payment struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	ProviderPaymentID string    `json:"providerPaymentId"`
	SubscriptionID    string    `json:"subscriptionId"`
	AmountCents       int64     `json:"amountCents"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Subscription records a user's entitlement to the paid features.
type Subscription struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Plan        string     `json:"plan"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
