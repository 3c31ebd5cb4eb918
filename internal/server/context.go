package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/calendar"
	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/google"
	"github.com/clinicdesk/clinicdesk/internal/instrumentation"
	"github.com/clinicdesk/clinicdesk/internal/schedule"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx        context.Context
	cancel     context.CancelFunc
	cfg        *config.Config
	tokenStore google.TokenStore
	calClients map[string]*calendar.Client // Maps account name to Calendar client
	metrics    *instrumentation.Metrics
	mu         sync.RWMutex
	shutdown   bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, cfg *config.Config, tokenStore google.TokenStore) (*ServerContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if tokenStore == nil {
		return nil, fmt.Errorf("token store cannot be nil")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		cfg:        cfg,
		tokenStore: tokenStore,
		calClients: make(map[string]*calendar.Client),
		shutdown:   false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the clinic configuration
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// TokenStore returns the OAuth token store
func (sc *ServerContext) TokenStore() google.TokenStore {
	return sc.tokenStore
}

// SetMetrics attaches the metrics recorder used by lazily created clients
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, which may be nil
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// Hours returns the clinic business hours derived from configuration
func (sc *ServerContext) Hours() schedule.BusinessHours {
	return schedule.BusinessHours{
		OpenMinute:  sc.cfg.OpenMinute(),
		CloseMinute: sc.cfg.CloseMinute(),
		SlotLen:     sc.cfg.SlotLength(),
		Location:    sc.cfg.Location(),
	}
}

// Now returns the current instant in the clinic timezone
func (sc *ServerContext) Now() time.Time {
	return time.Now().In(sc.cfg.Location())
}

// CalendarClientForAccount returns the Calendar client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns an error if the account has no stored credential.
func (sc *ServerContext) CalendarClientForAccount(account string) (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.calClients[account]; ok {
		return client, nil
	}

	conf := google.NewOAuthConfig(sc.cfg.OAuth.ClientID, sc.cfg.OAuth.ClientSecret)
	client, err := calendar.NewClientForAccountWithProvider(sc.ctx, account, sc.cfg.Clinic.CalendarID, conf, sc.tokenStore)
	if err != nil {
		return nil, err
	}
	client = client.WithMetrics(sc.metrics)

	sc.calClients[account] = client
	return client, nil
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calClients[account] = client
}

// HasCredentialForAccount checks if a stored credential exists for the account
func (sc *ServerContext) HasCredentialForAccount(account string) bool {
	return sc.tokenStore.HasTokenForAccount(account)
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
