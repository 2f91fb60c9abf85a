package action

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"

	"github.com/swatto/pdalert/internal/pagerduty"
)

// Outcome is the state a run ends in. Events start pending and move to
// sent or failed exactly once; a run that errors out locally stays pending.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
)

// Step forwards one event: assemble, send, interpret, report.
type Step struct {
	Sender  pagerduty.Sender
	Outputs Outputs
	Metrics *Metrics
	Logger  log.FieldLogger
}

// Run forwards the event described by cfg. The returned error is only
// non-nil for problems that should fail the CI step: an event that could
// not be built, or an output that could not be written. Rejections and
// network failures are reported through logs and outputs instead.
//
// On failure the dedup_key output is left unset.
func (s *Step) Run(ctx context.Context, cfg *Config) (Outcome, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	event, err := pagerduty.Assemble(cfg.Event)
	if err != nil {
		s.observe(cfg.Event.EventAction, OutcomePending)
		return OutcomePending, err
	}
	if cfg.Strict {
		if err := event.Validate(); err != nil {
			s.observe(cfg.Event.EventAction, OutcomePending)
			return OutcomePending, err
		}
	}

	start := time.Now()
	result := s.Sender.Send(ctx, event)
	if s.Metrics != nil {
		s.Metrics.ObserveRequest(time.Since(start))
	}

	var outcome Outcome
	switch r := result.(type) {
	case *pagerduty.Success:
		outcome = OutcomeSent
		logger.Info(pagerduty.FormatSuccess(r))
		err = s.setOutputs(
			OutputDedupKey, r.Body.DedupKey,
			OutputStatusCode, strconv.Itoa(r.StatusCode),
		)
	case *pagerduty.HTTPError:
		outcome = OutcomeFailed
		logger.Error(pagerduty.FormatHTTPError(r))
		err = s.setOutputs(OutputStatusCode, strconv.Itoa(r.StatusCode))
	case *pagerduty.TransportError:
		outcome = OutcomeFailed
		logger.WithError(r.Err).Debug("pagerduty: no response received")
		err = s.setOutputs(OutputStatusCode, "")
	default:
		return OutcomePending, errors.AssertionFailedf("action: unexpected send result %T", result)
	}

	s.observe(string(event.EventAction), outcome)
	return outcome, err
}

func (s *Step) setOutputs(kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if err := s.Outputs.SetOutput(kv[i], kv[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Step) observe(action string, outcome Outcome) {
	if s.Metrics != nil {
		s.Metrics.ObserveEvent(action, outcome)
	}
}
