package pagerduty

// EventAction is the lifecycle verb of an event.
type EventAction string

const (
	ActionTrigger     EventAction = "trigger"
	ActionAcknowledge EventAction = "acknowledge"
	ActionResolve     EventAction = "resolve"
)

// Severity is the perceived impact of the alerting condition.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Event is the request body of the Events API v2 enqueue endpoint.
// EventAction and Severity are sent as given: values outside the known
// sets are rejected by PagerDuty, not here (see Validate for strict mode).
type Event struct {
	RoutingKey  string      `json:"routing_key" validate:"required"`
	EventAction EventAction `json:"event_action" validate:"required,oneof=trigger acknowledge resolve"`
	DedupKey    string      `json:"dedup_key,omitempty" validate:"required_unless=EventAction trigger"`
	Payload     Payload     `json:"payload"`
}

// Payload carries the alert details of an Event.
type Payload struct {
	Summary       string         `json:"summary" validate:"required,max=1024"`
	Source        string         `json:"source" validate:"required"`
	Severity      Severity       `json:"severity" validate:"required,oneof=critical error warning info"`
	Timestamp     string         `json:"timestamp,omitempty"`
	Component     string         `json:"component,omitempty"`
	Group         string         `json:"group,omitempty"`
	Class         string         `json:"class,omitempty"`
	CustomDetails map[string]any `json:"custom_details"`
}

// SuccessBody is the JSON body PagerDuty returns for an accepted event.
type SuccessBody struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	DedupKey string `json:"dedup_key"`
}

// ErrorBody is the JSON body PagerDuty returns for a rejected event.
// Every field is optional.
type ErrorBody struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}
