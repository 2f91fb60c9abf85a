package pagerduty

import "fmt"

const noDetails = "No additional details available"

// FormatSuccess renders the log line for an accepted event.
func FormatSuccess(s *Success) string {
	return fmt.Sprintf("PagerDuty alert sent successfully! %s, dedup_key: %s. Status Code: %d",
		s.Body.Message, s.Body.DedupKey, s.StatusCode)
}

// FormatHTTPError renders the error line for a rejected event. The message
// part is left out when the body has none.
func FormatHTTPError(e *HTTPError) string {
	msg := ""
	if e.Body.Message != "" {
		msg = e.Body.Message + " - "
	}
	detail := e.Detail()
	if detail == "" {
		detail = noDetails
	}
	return fmt.Sprintf("Error! %s%s. Status Code: %d", msg, detail, e.StatusCode)
}
