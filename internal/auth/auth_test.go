package auth

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestHostKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://staging.quickdeployer.com/api", "staging.quickdeployer.com"},
		{"HTTP://127.0.0.1:8080/api/", "127.0.0.1:8080"},
		{"  Not A URL ", "not a url"},
	}
	for _, tt := range tests {
		if got := HostKey(tt.in); got != tt.want {
			t.Errorf("HostKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_EnvWins(t *testing.T) {
	t.Setenv(EnvAPIKey, " env-key ")
	store := NewMockStore()
	store.SetToken("staging.quickdeployer.com", "stored-key")

	key, fromEnv, err := Resolve(store, "https://staging.quickdeployer.com/api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "env-key" || !fromEnv {
		t.Errorf("got (%q, %v), want (%q, true)", key, fromEnv, "env-key")
	}
}

func TestResolve_FromStore(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	store := NewMockStore()
	store.SetToken("staging.quickdeployer.com", "stored-key")

	key, fromEnv, err := Resolve(store, "https://staging.quickdeployer.com/api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "stored-key" || fromEnv {
		t.Errorf("got (%q, %v), want (%q, false)", key, fromEnv, "stored-key")
	}
}

func TestResolve_Missing(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, _, err := Resolve(NewMockStore(), "https://api.quickdeployer.com/api")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("")

	if err := store.SetToken("Staging.QuickDeployer.com", "abc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	got, err := store.GetToken("staging.quickdeployer.com")
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}

	if err := store.DeleteToken("staging.quickdeployer.com"); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if _, err := store.GetToken("staging.quickdeployer.com"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound after delete, got %v", err)
	}
	if err := store.DeleteToken("staging.quickdeployer.com"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound on second delete, got %v", err)
	}
}
