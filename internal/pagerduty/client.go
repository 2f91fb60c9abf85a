package pagerduty

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultEventsURL is the Events API v2 enqueue endpoint.
const DefaultEventsURL = "https://events.pagerduty.com/v2/enqueue"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// Sender delivers a single event.
type Sender interface {
	Send(ctx context.Context, event *Event) Result
}

// Client sends events to the Events API over HTTP. It never retries.
type Client struct {
	httpClient *http.Client
	eventsURL  string
}

// NewClient creates a Client posting to eventsURL. An empty eventsURL means
// DefaultEventsURL; a zero timeout leaves the http.Client without one.
func NewClient(eventsURL string, timeout time.Duration) *Client {
	if eventsURL == "" {
		eventsURL = DefaultEventsURL
	}
	return &Client{
		eventsURL: eventsURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: LogRoundTrips(http.DefaultTransport),
		},
	}
}

// EventsURL returns the endpoint the client posts to.
func (c *Client) EventsURL() string {
	return c.eventsURL
}

// Send posts event and classifies the response. Problems building the
// request are reported as a TransportError since nothing reached the wire.
func (c *Client) Send(ctx context.Context, event *Event) Result {
	body, err := event.Encode()
	if err != nil {
		return &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.eventsURL, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: errors.Wrap(err, "pagerduty: failed to create HTTP request")}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: errors.Wrap(err, "pagerduty: failed to send HTTP request")}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Debug("pagerduty: failed to close response body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &TransportError{Err: errors.Wrapf(err, "pagerduty: failed to read response (status %d)", resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: decodeErrorBody(raw), Raw: raw}
	}

	// An accepted event with no body is still a success, with nothing to report.
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Success{StatusCode: resp.StatusCode}
	}

	ok, err := decodeSuccessBody(raw)
	if err != nil {
		log.WithError(err).WithField("status", resp.StatusCode).Debug("pagerduty: unreadable success response")
		return &HTTPError{StatusCode: resp.StatusCode, Raw: raw}
	}
	return &Success{StatusCode: resp.StatusCode, Body: ok}
}
