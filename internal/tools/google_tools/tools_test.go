package google_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/server"
)

type fakeTokenStore struct {
	savedAccount string
	savedCode    string
}

func (f *fakeTokenStore) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "access"}, nil
}

func (f *fakeTokenStore) HasTokenForAccount(account string) bool {
	return false
}

func (f *fakeTokenStore) AuthCodeURL(account string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + account
}

func (f *fakeTokenStore) SaveAuthCode(ctx context.Context, account, code string) error {
	f.savedAccount = account
	f.savedCode = code
	return nil
}

func newTestServerContext(t *testing.T) (*server.ServerContext, *fakeTokenStore) {
	t.Helper()
	store := &fakeTokenStore{}
	sc, err := server.NewServerContext(t.Context(), config.Default(), store)
	require.NoError(t, err)
	return sc, store
}

func TestGoogleToolsRegistration(t *testing.T) {
	sc, _ := newTestServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))

	err := RegisterGoogleTools(s, sc)
	assert.NoError(t, err)
}

func TestHandleGetAuthURL(t *testing.T) {
	sc, _ := newTestServerContext(t)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{"account": "front-desk"}

	result, err := handleGetAuthURL(t.Context(), request, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "https://accounts.google.com/o/oauth2/auth?state=front-desk")
	assert.Contains(t, text.Text, `account "front-desk"`)
}

func TestHandleSaveAuthCode(t *testing.T) {
	sc, store := newTestServerContext(t)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{"code": "4/abc123"}

	result, err := handleSaveAuthCode(t.Context(), request, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, "default", store.savedAccount)
	assert.Equal(t, "4/abc123", store.savedCode)
}

func TestHandleSaveAuthCodeMissingCode(t *testing.T) {
	sc, _ := newTestServerContext(t)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{}

	result, err := handleSaveAuthCode(t.Context(), request, sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
