// Package google manages OAuth2 credentials for the Google Calendar API.
//
// Credentials are stored per account as JSON token files in the user cache
// directory. The FileTokenStore refreshes expired access tokens on demand and
// persists the refreshed token back to disk. A missing or corrupt token file
// is never fatal; it surfaces as ErrAuthRequired so tools can point the user
// at the consent flow (google_get_auth_url / google_save_auth_code).
package google
