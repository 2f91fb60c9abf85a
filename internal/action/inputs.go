package action

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/swatto/pdalert/internal/pagerduty"
)

// Input names as declared by the step. The runner exposes each one as
// INPUT_<NAME> in the environment.
const (
	InputRoutingKey    = "routing_key"
	InputEventAction   = "event_action"
	InputDedupKey      = "dedup_key"
	InputSummary       = "summary"
	InputSource        = "source"
	InputSeverity      = "severity"
	InputTimestamp     = "timestamp"
	InputComponent     = "component"
	InputGroup         = "group"
	InputClass         = "class"
	InputCustomDetails = "custom_details"

	InputStrict      = "strict"
	InputEventsURL   = "events_url"
	InputTimeout     = "timeout"
	InputMetricsFile = "metrics_file"
)

var eventInputs = []string{
	InputRoutingKey, InputEventAction, InputDedupKey, InputSummary, InputSource,
	InputSeverity, InputTimestamp, InputComponent, InputGroup, InputClass, InputCustomDetails,
}

// Config is everything a run needs, read once from the CI environment.
type Config struct {
	Event       pagerduty.Inputs
	Strict      bool
	EventsURL   string
	Timeout     time.Duration
	MetricsFile string
}

// NewViper returns a viper instance reading inputs from INPUT_* variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("INPUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(" ", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault(InputStrict, false)
	v.SetDefault(InputTimeout, "")
	return v
}

// FlagName converts an input name to its command-line flag name.
func FlagName(input string) string {
	return strings.ReplaceAll(input, "_", "-")
}

// BindFlags registers one flag per input on fs and binds it into v, so a
// flag given on the command line wins over the environment.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	usage := map[string]string{
		InputRoutingKey:    "integration routing key",
		InputEventAction:   "trigger, acknowledge or resolve",
		InputDedupKey:      "deduplication key of the incident",
		InputSummary:       "human readable summary of the alert",
		InputSource:        "where the alert originated",
		InputSeverity:      "critical, error, warning or info",
		InputTimestamp:     "ISO-8601 time the event was detected",
		InputComponent:     "component responsible for the event",
		InputGroup:         "logical grouping of components",
		InputClass:         "class or type of the event",
		InputCustomDetails: "JSON object with additional details",
		InputEventsURL:     "Events API endpoint",
		InputTimeout:       "HTTP timeout, e.g. 10s (default none)",
		InputMetricsFile:   "write Prometheus metrics to this file",
	}
	names := append(append([]string{}, eventInputs...), InputEventsURL, InputTimeout, InputMetricsFile)
	for _, name := range names {
		fs.String(FlagName(name), "", usage[name])
	}
	fs.Bool(FlagName(InputStrict), false, "validate the event locally before sending")

	for _, name := range append(names, InputStrict) {
		if err := v.BindPFlag(name, fs.Lookup(FlagName(name))); err != nil {
			return errors.Wrapf(err, "action: failed to bind flag %q", FlagName(name))
		}
	}
	return nil
}

// LoadConfig reads all inputs from v. Values are whitespace-trimmed the
// way the runner trims them; nothing else is checked here.
func LoadConfig(v *viper.Viper) (*Config, error) {
	get := func(name string) string {
		return strings.TrimSpace(v.GetString(name))
	}

	cfg := &Config{
		Event: pagerduty.Inputs{
			RoutingKey:    get(InputRoutingKey),
			EventAction:   get(InputEventAction),
			DedupKey:      get(InputDedupKey),
			Summary:       get(InputSummary),
			Source:        get(InputSource),
			Severity:      get(InputSeverity),
			Timestamp:     get(InputTimestamp),
			Component:     get(InputComponent),
			Group:         get(InputGroup),
			Class:         get(InputClass),
			CustomDetails: get(InputCustomDetails),
		},
		EventsURL:   get(InputEventsURL),
		MetricsFile: get(InputMetricsFile),
	}

	if s := get(InputStrict); s != "" {
		strict, err := parseBool(s)
		if err != nil {
			return nil, errors.Wrapf(err, "action: invalid %s input", InputStrict)
		}
		cfg.Strict = strict
	}

	if s := get(InputTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, errors.Wrapf(err, "action: invalid %s input", InputTimeout)
		}
		if d < 0 {
			return nil, errors.Newf("action: %s must be >= 0 (got %s)", InputTimeout, s)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// parseBool accepts the YAML 1.2 core schema booleans, as the runner does
// for boolean inputs.
func parseBool(s string) (bool, error) {
	switch s {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, errors.Newf("%q is not one of true, True, TRUE, false, False, FALSE", s)
}
