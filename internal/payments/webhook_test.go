package payments

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_dGVzdC1zZWNyZXQta2V5LXZhbHVl" // base64 of "test-secret-key-value"

func freshTimestamp() string {
	return fmt.Sprintf("%d", time.Now().Unix())
}

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"type":"payment.succeeded","data":{"id":"pay_123"}}`)
	ts := freshTimestamp()

	sig, err := SignPayload(testSecret, "msg_1", ts, payload)
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}

	if err := VerifySignature(testSecret, "msg_1", ts, payload, sig); err != nil {
		t.Fatalf("VerifySignature: %v", err)
	}

	// The secret also works without the whsec_ prefix.
	bare := "dGVzdC1zZWNyZXQta2V5LXZhbHVl"
	if err := VerifySignature(bare, "msg_1", ts, payload, sig); err != nil {
		t.Fatalf("VerifySignature bare secret: %v", err)
	}
}

func TestVerifySignatureMultipleEntries(t *testing.T) {
	payload := []byte(`{"type":"payment.succeeded","data":{"id":"pay_123"}}`)
	ts := freshTimestamp()

	sig, err := SignPayload(testSecret, "msg_1", ts, payload)
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}

	bogus := "v1," + base64.StdEncoding.EncodeToString([]byte("not-the-signature-at-all"))
	header := bogus + " " + sig
	if err := VerifySignature(testSecret, "msg_1", ts, payload, header); err != nil {
		t.Fatalf("expected one matching entry to verify, got %v", err)
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	payload := []byte(`{"type":"payment.succeeded","data":{"id":"pay_123"}}`)
	ts := freshTimestamp()

	sig, err := SignPayload(testSecret, "msg_1", ts, payload)
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}

	tampered := []byte(`{"type":"payment.succeeded","data":{"id":"pay_999"}}`)
	if err := VerifySignature(testSecret, "msg_1", ts, tampered, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for tampered body, got %v", err)
	}

	if err := VerifySignature(testSecret, "msg_2", ts, payload, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for different msg id, got %v", err)
	}

	otherSecret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("some-other-secret"))
	if err := VerifySignature(otherSecret, "msg_1", ts, payload, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for wrong secret, got %v", err)
	}
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	stale := fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix())

	sig, err := SignPayload(testSecret, "msg_1", stale, payload)
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}
	if err := VerifySignature(testSecret, "msg_1", stale, payload, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for stale timestamp, got %v", err)
	}
}

func TestVerifySignatureMissingHeaders(t *testing.T) {
	if err := VerifySignature(testSecret, "", freshTimestamp(), []byte(`{}`), "v1,abc"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for missing id, got %v", err)
	}
	if err := VerifySignature(testSecret, "msg_1", freshTimestamp(), []byte(`{}`), ""); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for missing signature, got %v", err)
	}
}
