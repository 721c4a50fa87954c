package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func signPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookVerifier(t *testing.T) {
	secret := "shhh"
	payload := []byte(`{"domain":"demo.myshopify.com"}`)
	verifier := NewWebhookVerifier(secret)

	t.Run("valid signature", func(t *testing.T) {
		if err := verifier.Verify(payload, signPayload(secret, payload)); err != nil {
			t.Errorf("Verify() error = %v, want nil", err)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if err := verifier.Verify(payload, ""); err == nil {
			t.Error("Verify() error = nil, want error for missing header")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if err := verifier.Verify(payload, signPayload("other", payload)); err == nil {
			t.Error("Verify() error = nil, want error for wrong secret")
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		signature := signPayload(secret, payload)
		tampered := []byte(`{"domain":"evil.myshopify.com"}`)
		if err := verifier.Verify(tampered, signature); err == nil {
			t.Error("Verify() error = nil, want error for tampered payload")
		}
	})
}
