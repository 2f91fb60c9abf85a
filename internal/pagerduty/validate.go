package pagerduty

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists the fields that failed strict validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "pagerduty: invalid event: " + strings.Join(e.Fields, "; ")
}

// Validate checks e the way the Events API would, so that strict runs fail
// before the request. Payload fields are only required for trigger events.
func (e *Event) Validate() error {
	var err error
	if e.EventAction == ActionTrigger {
		err = validate.Struct(e)
	} else {
		err = validate.StructExcept(e, "Payload")
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "pagerduty: validation failed")
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, describe(fe))
	}
	return verr
}

func describe(fe validator.FieldError) string {
	name := jsonName(fe.Namespace())
	switch fe.Tag() {
	case "required", "required_unless":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fmt.Sprint(fe.Value()))
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	default:
		return name + " failed " + fe.Tag()
	}
}

var jsonNames = map[string]string{
	"RoutingKey":  "routing_key",
	"EventAction": "event_action",
	"DedupKey":    "dedup_key",
	"Payload":     "payload",
	"Summary":     "summary",
	"Source":      "source",
	"Severity":    "severity",
}

// jsonName turns "Event.Payload.Summary" into "payload.summary".
func jsonName(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if n, ok := jsonNames[p]; ok {
			parts[i] = n
		}
	}
	return strings.Join(parts, ".")
}
