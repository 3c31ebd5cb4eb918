package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/clinicdesk/clinicdesk/internal/instrumentation"
	"github.com/clinicdesk/clinicdesk/internal/logging"
)

// TokenProvider is an interface for providing OAuth tokens for the Google
// Calendar API. This abstraction allows different token sources (file-based
// stores, in-memory test fakes, etc.)
type TokenProvider interface {
	// GetTokenForAccount retrieves a valid OAuth token for the specified
	// account, refreshing it if necessary.
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)

	// HasTokenForAccount checks if a credential exists for the specified account
	HasTokenForAccount(account string) bool
}

// TokenStore extends TokenProvider with the consent flow operations used to
// bootstrap a credential.
type TokenStore interface {
	TokenProvider

	// AuthCodeURL returns the consent URL the user must visit to authorize
	// calendar access for the account.
	AuthCodeURL(account string) string

	// SaveAuthCode exchanges an authorization code for tokens and persists them.
	SaveAuthCode(ctx context.Context, account, code string) error
}

// FileTokenStore persists OAuth tokens as JSON files on disk, one file per
// account. A refreshed token is written back so the next process start does
// not need another refresh round-trip.
type FileTokenStore struct {
	config  *oauth2.Config
	baseDir string
	logger  logging.Logger
	metrics *instrumentation.Metrics

	mu       sync.Mutex
	accounts map[string]*sync.Mutex
}

// NewFileTokenStore creates a file-based token store rooted at the user cache
// directory (e.g. ~/.cache/clinicdesk on Linux).
func NewFileTokenStore(config *oauth2.Config) (*FileTokenStore, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine user cache directory: %w", err)
	}
	return NewFileTokenStoreAt(config, filepath.Join(cacheDir, "clinicdesk")), nil
}

// NewFileTokenStoreAt creates a file-based token store rooted at dir.
func NewFileTokenStoreAt(config *oauth2.Config, dir string) *FileTokenStore {
	return &FileTokenStore{
		config:   config,
		baseDir:  dir,
		logger:   logging.DefaultLogger(),
		accounts: make(map[string]*sync.Mutex),
	}
}

// WithLogger replaces the store's logger.
func (s *FileTokenStore) WithLogger(logger logging.Logger) *FileTokenStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithMetrics attaches a metrics recorder. Safe to skip; all recording is
// nil-guarded.
func (s *FileTokenStore) WithMetrics(m *instrumentation.Metrics) *FileTokenStore {
	s.metrics = m
	return s
}

// accountMutex returns the mutex guarding the token file for account,
// creating it on first use.
func (s *FileTokenStore) accountMutex(account string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.accounts[account]
	if !ok {
		m = &sync.Mutex{}
		s.accounts[account] = m
	}
	return m
}

// tokenFile returns the path of the token file for account. The account name
// is flattened so an email address does not produce nested directories.
func (s *FileTokenStore) tokenFile(account string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(account)
	return filepath.Join(s.baseDir, name+".token.json")
}

// GetTokenForAccount retrieves a valid token for the account, refreshing and
// re-persisting it when the stored access token has expired.
func (s *FileTokenStore) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	mu := s.accountMutex(account)
	mu.Lock()
	defer mu.Unlock()

	stored, err := s.readToken(account)
	if err != nil {
		// A missing or corrupt token file means no credential, never a fatal
		// error: the caller is told to run the consent flow.
		return nil, fmt.Errorf("no stored credential for account %q: %w", account, ErrAuthRequired)
	}

	ts := s.config.TokenSource(ctx, stored)
	fresh, err := ts.Token()
	if err != nil {
		s.metrics.RecordTokenRefresh(ctx, account, instrumentation.RefreshFailure)
		s.logger.Warn("token refresh failed", logging.KeyAccount, account, logging.KeyError, err.Error())
		return nil, &RefreshError{Account: account, Err: err}
	}

	if fresh.AccessToken != stored.AccessToken {
		if err := s.writeToken(account, fresh); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.metrics.RecordTokenRefresh(ctx, account, instrumentation.RefreshSuccess)
		s.logger.Info("token refreshed", logging.KeyAccount, account)
	}

	return fresh, nil
}

// HasTokenForAccount checks if a credential file exists for the account.
// It does not verify that the credential is still refreshable.
func (s *FileTokenStore) HasTokenForAccount(account string) bool {
	_, err := s.readToken(account)
	return err == nil
}

// AuthCodeURL returns the consent URL for the account.
func (s *FileTokenStore) AuthCodeURL(account string) string {
	return s.config.AuthCodeURL(account, oauth2.AccessTypeOffline)
}

// SaveAuthCode exchanges the authorization code for tokens and persists them
// for the account.
func (s *FileTokenStore) SaveAuthCode(ctx context.Context, account, code string) error {
	token, err := s.config.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	mu := s.accountMutex(account)
	mu.Lock()
	defer mu.Unlock()

	if err := s.writeToken(account, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.logger.Info("credential stored", logging.KeyAccount, account)
	return nil
}

func (s *FileTokenStore) readToken(account string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenFile(account))
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("corrupt token file: %w", err)
	}
	if token.RefreshToken == "" && token.AccessToken == "" {
		return nil, fmt.Errorf("empty token file")
	}
	return &token, nil
}

// writeToken persists the token atomically: write to a temp file in the same
// directory, then rename over the destination.
func (s *FileTokenStore) writeToken(account string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	dest := s.tokenFile(account)
	tmp, err := os.CreateTemp(s.baseDir, ".token-*")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set token file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close token file: %w", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}
