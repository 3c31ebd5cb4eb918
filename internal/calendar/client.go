package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/clinicdesk/clinicdesk/internal/google"
	"github.com/clinicdesk/clinicdesk/internal/instrumentation"
)

// upstreamTimeout bounds each Calendar API HTTP call.
const upstreamTimeout = 30 * time.Second

// Client wraps the Google Calendar service for a single clinic calendar
type Client struct {
	svc           *calendar.Service
	calendarID    string
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
	metrics       *instrumentation.Metrics
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// CalendarID returns the clinic calendar this client operates on
func (c *Client) CalendarID() string {
	return c.calendarID
}

// NewClientForAccountWithProvider creates a new Calendar client with OAuth2
// authentication for a specific account. The OAuth token is retrieved from
// the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account, calendarID string, conf *oauth2.Config, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	// Get token from the provided provider
	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	tokenSource := conf.TokenSource(ctx, token)

	// Create HTTP client with the token
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	// A hung upstream call fails after a bounded timeout instead of blocking.
	client.Timeout = upstreamTimeout

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		calendarID:    calendarID,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// WithMetrics attaches a metrics recorder to the client. Safe to skip; all
// recording is nil-guarded.
func (c *Client) WithMetrics(m *instrumentation.Metrics) *Client {
	c.metrics = m
	return c
}

// record reports a finished API call to the metrics recorder.
func (c *Client) record(ctx context.Context, op string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordCalendarOperation(ctx, op, status, time.Since(start))
}

// ListEvents lists events on the clinic calendar within [timeMin, timeMax),
// expanded to single instances and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, "events.list")
	defer span.End()
	start := time.Now()

	var events []Event
	pageToken := ""
	for {
		call := c.svc.Events.List(c.calendarID).
			Context(ctx).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			err = wrapAPIError("events.list", err)
			instrumentation.SetSpanError(span, err)
			c.record(ctx, "events.list", start, err)
			return nil, err
		}

		for _, item := range result.Items {
			events = append(events, toEvent(item))
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	instrumentation.SetSpanSuccess(span)
	c.record(ctx, "events.list", start, nil)
	return events, nil
}

// InsertEvent creates a new event on the clinic calendar.
func (c *Client) InsertEvent(ctx context.Context, input EventInput) (*Event, error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, "events.insert")
	defer span.End()
	start := time.Now()

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	for _, att := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{
			Email:       att.Email,
			DisplayName: att.Name,
		})
	}

	call := c.svc.Events.Insert(c.calendarID, event).Context(ctx)
	if input.SendUpdates != "" {
		call = call.SendUpdates(input.SendUpdates)
	}

	created, err := call.Do()
	if err != nil {
		err = wrapAPIError("events.insert", err)
		instrumentation.SetSpanError(span, err)
		c.record(ctx, "events.insert", start, err)
		return nil, err
	}

	instrumentation.SetSpanSuccess(span)
	c.record(ctx, "events.insert", start, nil)

	result := toEvent(created)
	return &result, nil
}

// SearchEventsByAttendee returns events starting at or after from that have
// the given email among their guests. The attendee match is case-insensitive;
// the Calendar API has no server-side guest filter, so events are fetched
// page by page and filtered here.
func (c *Client) SearchEventsByAttendee(ctx context.Context, email string, from time.Time) ([]Event, error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, "events.search")
	defer span.End()
	start := time.Now()

	needle := strings.ToLower(strings.TrimSpace(email))

	var matches []Event
	pageToken := ""
	for {
		call := c.svc.Events.List(c.calendarID).
			Context(ctx).
			TimeMin(from.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			err = wrapAPIError("events.search", err)
			instrumentation.SetSpanError(span, err)
			c.record(ctx, "events.search", start, err)
			return nil, err
		}

		for _, item := range result.Items {
			for _, att := range item.Attendees {
				if strings.ToLower(att.Email) == needle {
					matches = append(matches, toEvent(item))
					break
				}
			}
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	instrumentation.SetSpanSuccess(span)
	c.record(ctx, "events.search", start, nil)
	return matches, nil
}
