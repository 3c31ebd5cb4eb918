package google

import (
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// OOBRedirectURL is the out-of-band redirect used for the manual copy/paste
// consent flow. The authorization code is displayed in the browser and the
// user pastes it into the CLI.
const OOBRedirectURL = "urn:ietf:wg:oauth:2.0:oob"

// OAuthScopes are the Google OAuth scopes clinicdesk requires. Only the
// Calendar scope is needed: events are listed, searched, and created on the
// clinic calendar.
var OAuthScopes = []string{
	calendar.CalendarScope,
}

// NewOAuthConfig builds the OAuth2 configuration for the Google consent flow.
// Client ID and secret come from the clinic configuration (or the
// GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET environment variables).
func NewOAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     googleoauth.Endpoint,
		RedirectURL:  OOBRedirectURL,
		Scopes:       OAuthScopes,
	}
}
