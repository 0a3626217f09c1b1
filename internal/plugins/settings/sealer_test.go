package settings

import (
	"errors"
	"strings"
	"testing"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	s, err := NewSealer("test-secret-key-that-is-long-enough!!")
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}
	return s
}

func TestSealerRoundTrip(t *testing.T) {
	s := newTestSealer(t)
	sealed, err := s.Seal("network.wifi_password", "hunter2")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if !strings.HasPrefix(sealed, sealedPrefix) || strings.Contains(sealed, "hunter2") {
		t.Fatalf("unexpected sealed form %q", sealed)
	}

	plain, err := s.Open("network.wifi_password", sealed)
	if err != nil || plain != "hunter2" {
		t.Fatalf("Open = %q, %v", plain, err)
	}

	again, _ := s.Seal("network.wifi_password", "hunter2")
	if again == sealed {
		t.Error("two seals of the same value should differ")
	}
}

func TestSealerBindsName(t *testing.T) {
	s := newTestSealer(t)
	sealed, _ := s.Seal("network.wifi_password", "hunter2")
	if _, err := s.Open("server-integration.api_key", sealed); err == nil {
		t.Error("a value sealed for one key must not open under another")
	}
}

func TestSealerRejectsOtherKeyAndPlaintext(t *testing.T) {
	s := newTestSealer(t)
	sealed, _ := s.Seal("k", "v")

	other, err := NewSealer("a-completely-different-secret-value!!")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Open("k", sealed); err == nil {
		t.Error("expected failure with a different secret")
	}
	if _, err := s.Open("k", "plain"); !errors.Is(err, ErrNotSealed) {
		t.Errorf("expected ErrNotSealed, got %v", err)
	}
	if _, err := NewSealer(""); err == nil {
		t.Error("empty secret should be rejected")
	}
}
