package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/swatto/pdalert/internal/action"
	"github.com/swatto/pdalert/internal/pagerduty"
)

const (
	// AppName is the name of the application
	AppName = "pdalert"
	// AppDescription provides a brief description of the application
	AppDescription = "CI step forwarding an alert to PagerDuty Events v2"
)

// Version can be set at build time via ldflags
var Version = "1.0.0"

func main() {
	_ = action.ConfigureLogger(os.Stdout, "", false)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cmd, err := newRootCmd(os.Stdout)
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	stop()

	if err != nil {
		// Same contract as a failed step: an error annotation and exit code 1.
		log.Error(err.Error())
		os.Exit(1)
	}
}

// newRootCmd builds the pdalert command. Output, logs and the legacy
// set-output commands all go to stdout, where the runner reads them.
func newRootCmd(stdout io.Writer) (*cobra.Command, error) {
	v := action.NewViper()
	var envFile, logLevel string

	cmd := &cobra.Command{
		Use:   AppName,
		Short: AppDescription,
		Long: AppDescription + `.

Inputs are read from INPUT_<NAME> environment variables, as set by the runner
for a step's "with:" block. Every input can also be given as a flag, which
takes precedence. Outputs are appended to $GITHUB_OUTPUT.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return errors.Wrapf(err, "failed to load env file %q", envFile)
				}
			}
			if err := action.ConfigureLogger(stdout, logLevel, os.Getenv("RUNNER_DEBUG") == "1"); err != nil {
				return err
			}

			cfg, err := action.LoadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdout)
		},
	}
	cmd.SetOut(stdout)

	fs := cmd.Flags()
	fs.StringVar(&envFile, "env-file", "", "load INPUT_* variables from a dotenv file")
	fs.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	if err := action.BindFlags(v, fs); err != nil {
		return nil, err
	}
	return cmd, nil
}

// run forwards the configured event once.
func run(ctx context.Context, cfg *action.Config, stdout io.Writer) error {
	client := pagerduty.NewClient(cfg.EventsURL, cfg.Timeout)
	printSummary(stdout, cfg, client.EventsURL())

	metrics := action.NewMetrics()
	step := &action.Step{
		Sender:  client,
		Outputs: action.NewOutputs(stdout),
		Metrics: metrics,
	}

	outcome, err := step.Run(ctx, cfg)
	log.WithField("outcome", outcome).Debug("run complete")

	if cfg.MetricsFile != "" {
		if werr := metrics.WriteFile(cfg.MetricsFile); werr != nil {
			log.Warnf("metrics were not written: %v", werr)
		}
	}
	return err
}
