package encryption

import (
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := NewService(testKey)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	token := "shpat_example_access_token"
	encrypted, err := svc.Encrypt(token)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if encrypted == token {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := svc.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if decrypted != token {
		t.Errorf("Decrypt() = %q, want %q", decrypted, token)
	}
}

func TestNewServiceRejectsBadKeys(t *testing.T) {
	if _, err := NewService("not-hex"); err == nil {
		t.Error("expected error for non-hex key")
	}
	if _, err := NewService("abcd"); err == nil {
		t.Error("expected error for short key")
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	svc, err := NewService(testKey)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	encrypted, err := svc.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	tampered := strings.Replace(encrypted, encrypted[:1], "A", 1)
	if tampered == encrypted {
		tampered = "B" + encrypted[1:]
	}
	if _, err := svc.Decrypt(tampered); err == nil {
		t.Error("expected error for tampered ciphertext")
	}
}
