package pagerduty

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Inputs are the raw named values read from the CI step.
type Inputs struct {
	RoutingKey    string
	EventAction   string
	DedupKey      string
	Summary       string
	Source        string
	Severity      string
	Timestamp     string
	Component     string
	Group         string
	Class         string
	CustomDetails string
}

// CustomDetailsError reports custom_details text that is not a JSON object.
type CustomDetailsError struct {
	Input string
	Err   error
}

func (e *CustomDetailsError) Error() string {
	return "pagerduty: invalid custom_details JSON: " + e.Err.Error()
}

func (e *CustomDetailsError) Unwrap() error { return e.Err }

// ParseCustomDetails decodes custom_details text into a mapping. Empty or
// whitespace-only text yields an empty, non-nil map.
func ParseCustomDetails(s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var details map[string]any
	if err := dec.Decode(&details); err != nil {
		return nil, &CustomDetailsError{Input: s, Err: err}
	}
	if details == nil {
		return nil, &CustomDetailsError{Input: s, Err: errors.New("expected a JSON object, got null")}
	}
	// More reports false ahead of a stray '}' or ']', so require EOF instead.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &CustomDetailsError{Input: s, Err: errors.New("unexpected data after JSON object")}
	}
	return details, nil
}

// Assemble builds the Event for in. The only failure is unparseable
// custom_details; nothing else about the inputs is checked.
func Assemble(in Inputs) (*Event, error) {
	details, err := ParseCustomDetails(in.CustomDetails)
	if err != nil {
		return nil, err
	}

	return &Event{
		RoutingKey:  in.RoutingKey,
		EventAction: EventAction(in.EventAction),
		DedupKey:    in.DedupKey,
		Payload: Payload{
			Summary:       in.Summary,
			Source:        in.Source,
			Severity:      Severity(in.Severity),
			Timestamp:     in.Timestamp,
			Component:     in.Component,
			Group:         in.Group,
			Class:         in.Class,
			CustomDetails: details,
		},
	}, nil
}

// Encode returns the JSON request body for e.
func (e *Event) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, errors.Wrap(err, "pagerduty: failed to encode event")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MaskKey hides all but the last four characters of a routing key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
