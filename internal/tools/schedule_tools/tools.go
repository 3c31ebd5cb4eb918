package schedule_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/clinicdesk/clinicdesk/internal/calendar"
	"github.com/clinicdesk/clinicdesk/internal/google"
	"github.com/clinicdesk/clinicdesk/internal/server"
)

// RegisterScheduleTools registers all scheduling tools with the MCP server
func RegisterScheduleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterDayTools(s, sc); err != nil {
		return fmt.Errorf("failed to register day tools: %w", err)
	}

	if err := RegisterBookingTools(s, sc); err != nil {
		return fmt.Errorf("failed to register booking tools: %w", err)
	}

	if err := RegisterSearchTools(s, sc); err != nil {
		return fmt.Errorf("failed to register search tools: %w", err)
	}

	return nil
}

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client, err := sc.CalendarClientForAccount(account)
	if err != nil {
		if google.IsAuthRequired(err) {
			authURL := sc.TokenStore().AuthCodeURL(account)
			return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with the clinic's Google account
3. Grant access to Google Calendar
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool with account="%s" to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
		}
		return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
	}
	return client, nil
}

// clinicTimeLayouts are the accepted formats for externally supplied time
// strings. The LLM caller is not a type-checked client, so several common
// renderings are tolerated; anything else is rejected with guidance.
var clinicTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseClinicTime parses a time string in the clinic timezone. Layouts
// without an offset are interpreted as clinic-local wall time.
func parseClinicTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range clinicTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, use e.g. 2026-09-07T09:30 or RFC3339", value)
}

// formatEvents renders events as a numbered list for the conversational caller.
func formatEvents(events []calendar.Event, loc *time.Location) string {
	if len(events) == 0 {
		return "No appointments found.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d appointment(s):\n\n", len(events))
	for i, e := range events {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, e.Summary)
		fmt.Fprintf(&sb, "   Start: %s\n", e.Start.In(loc).Format("Monday, 2006-01-02 15:04"))
		fmt.Fprintf(&sb, "   End:   %s\n", e.End.In(loc).Format("Monday, 2006-01-02 15:04"))
		if len(e.Attendees) > 0 {
			var guests []string
			for _, a := range e.Attendees {
				guests = append(guests, a.Email)
			}
			fmt.Fprintf(&sb, "   Guests: %s\n", strings.Join(guests, ", "))
		}
		if e.HTMLLink != "" {
			fmt.Fprintf(&sb, "   Link: %s\n", e.HTMLLink)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
