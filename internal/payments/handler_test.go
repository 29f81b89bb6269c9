package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newWebhookRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(svc, testSecret)
	h.RegisterWebhookRoutes(router.Group("/api/v1"))
	return router
}

func postWebhook(router *gin.Engine, msgID, ts string, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", ts)
	req.Header.Set("webhook-signature", signature)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestWebhookEndpointAppliesSignedEvent(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	payment, _, err := svc.CreateCheckout(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	router := newWebhookRouter(t, svc)

	body := []byte(fmt.Sprintf(`{"type":"payment.succeeded","data":{"id":"%s"}}`, payment.ProviderPaymentID))
	ts := fmt.Sprintf("%d", time.Now().Unix())
	sig, err := SignPayload(testSecret, "msg_1", ts, body)
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}

	resp := postWebhook(router, "msg_1", ts, body, sig)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}

	active, err := svc.HasActiveSubscription(context.Background(), "user-1")
	if err != nil || !active {
		t.Fatalf("expected active subscription, got active=%v err=%v", active, err)
	}
}

func TestWebhookEndpointRejectsBadSignature(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	router := newWebhookRouter(t, svc)

	body := []byte(`{"type":"payment.succeeded","data":{"id":"pay_123"}}`)
	ts := fmt.Sprintf("%d", time.Now().Unix())

	resp := postWebhook(router, "msg_1", ts, body, "v1,aW52YWxpZA==")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", resp.Code)
	}
}

func TestPlansEndpointListsLifetimePlan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(&Service{Repo: NewMemoryRepo()}, testSecret)
	h.RegisterPublicRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/plans", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Plans []Plan `json:"plans"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Plans) != 1 {
		t.Fatalf("expected one plan, got %d", len(payload.Plans))
	}
	plan := payload.Plans[0]
	if plan.ID != PlanLifetime || plan.PriceCents != 5900 || plan.Interval != "one_time" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestWebhookEndpointRejectsMissingHeaders(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	router := newWebhookRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payments", bytes.NewReader([]byte(`{}`)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing headers, got %d", resp.Code)
	}
}
