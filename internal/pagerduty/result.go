package pagerduty

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// Result is the outcome of one send. It is one of *Success, *HTTPError or
// *TransportError.
type Result interface {
	isResult()
}

// Success is a 2xx response with a decodable body.
type Success struct {
	StatusCode int
	Body       SuccessBody
}

// HTTPError is a response that was received but not accepted: a non-2xx
// status, or a 2xx whose body could not be decoded.
type HTTPError struct {
	StatusCode int
	Body       ErrorBody
	Raw        []byte
}

// TransportError means no response was received at all.
type TransportError struct {
	Err error
}

func (*Success) isResult()        {}
func (*HTTPError) isResult()      {}
func (*TransportError) isResult() {}

// Detail is the error text reported for the response: the joined errors
// array when present, otherwise the whole body.
func (e *HTTPError) Detail() string {
	if len(e.Body.Errors) > 0 {
		return strings.Join(e.Body.Errors, ", ")
	}
	raw := bytes.TrimSpace(e.Raw)
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// decodeErrorBody picks message and errors out of raw without requiring the
// body to match ErrorBody exactly; fields of an unexpected type are skipped.
func decodeErrorBody(raw []byte) ErrorBody {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ErrorBody{}
	}

	var body ErrorBody
	_ = json.Unmarshal(fields["status"], &body.Status)
	_ = json.Unmarshal(fields["message"], &body.Message)

	var items []json.RawMessage
	if err := json.Unmarshal(fields["errors"], &items); err == nil {
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				body.Errors = append(body.Errors, s)
				continue
			}
			body.Errors = append(body.Errors, string(item))
		}
	}
	return body
}

// decodeSuccessBody requires a JSON object; anything else is treated as an
// unusable response by the caller.
func decodeSuccessBody(raw []byte) (SuccessBody, error) {
	var body SuccessBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return SuccessBody{}, errors.Wrap(err, "decode response body")
	}
	return body, nil
}
