package server

import (
	"context"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/clinicdesk/clinicdesk/internal/config"
)

// fakeTokenStore is an in-memory TokenStore for tests.
type fakeTokenStore struct {
	tokens map[string]*oauth2.Token
}

func (f *fakeTokenStore) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	if t, ok := f.tokens[account]; ok {
		return t, nil
	}
	return nil, context.Canceled
}

func (f *fakeTokenStore) HasTokenForAccount(account string) bool {
	_, ok := f.tokens[account]
	return ok
}

func (f *fakeTokenStore) AuthCodeURL(account string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + account
}

func (f *fakeTokenStore) SaveAuthCode(ctx context.Context, account, code string) error {
	if f.tokens == nil {
		f.tokens = make(map[string]*oauth2.Token)
	}
	f.tokens[account] = &oauth2.Token{AccessToken: "from-" + code}
	return nil
}

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()
	sc, err := NewServerContext(t.Context(), config.Default(), &fakeTokenStore{})
	if err != nil {
		t.Fatalf("NewServerContext: %v", err)
	}
	return sc
}

func TestNewServerContextValidation(t *testing.T) {
	if _, err := NewServerContext(t.Context(), nil, &fakeTokenStore{}); err == nil {
		t.Error("nil config should be rejected")
	}
	if _, err := NewServerContext(t.Context(), config.Default(), nil); err == nil {
		t.Error("nil token store should be rejected")
	}
}

func TestHours(t *testing.T) {
	sc := newTestContext(t)

	hours := sc.Hours()
	if hours.OpenMinute != 8*60 || hours.CloseMinute != 20*60 {
		t.Errorf("hours = %d-%d minutes", hours.OpenMinute, hours.CloseMinute)
	}
	if hours.SlotLen != 30*time.Minute {
		t.Errorf("slot length = %v", hours.SlotLen)
	}
	if hours.Location == nil {
		t.Fatal("location must be set")
	}
}

func TestHasCredentialForAccount(t *testing.T) {
	store := &fakeTokenStore{tokens: map[string]*oauth2.Token{"default": {AccessToken: "t"}}}
	sc, err := NewServerContext(t.Context(), config.Default(), store)
	if err != nil {
		t.Fatal(err)
	}

	if !sc.HasCredentialForAccount("default") {
		t.Error("default account should have a credential")
	}
	if sc.HasCredentialForAccount("other") {
		t.Error("other account should not have a credential")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	sc := newTestContext(t)

	if sc.IsShutdown() {
		t.Fatal("fresh context should not be shut down")
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("context should report shut down")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("server context should be cancelled after shutdown")
	}
}
