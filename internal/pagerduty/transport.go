package pagerduty

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// LogRoundTrips returns a RoundTripper that logs each outbound request at
// debug level with method, URL, status and duration.
func LogRoundTrips(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)

		entry := log.WithFields(log.Fields{
			"method":   r.Method,
			"url":      r.URL.Redacted(),
			"duration": time.Since(start).Round(time.Millisecond),
		})
		if err != nil {
			entry.WithError(err).Debug("http request failed")
			return nil, err
		}
		entry.WithFields(log.Fields{
			"status": resp.StatusCode,
			"bytes":  resp.ContentLength,
		}).Debug("http request")
		return resp, nil
	})
}
