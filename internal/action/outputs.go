package action

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Output names written by the step.
const (
	OutputDedupKey   = "dedup_key"
	OutputStatusCode = "status_code"
)

// Outputs receives the step's named outputs.
type Outputs interface {
	SetOutput(name, value string) error
}

// FileOutputs appends outputs to the runner's GITHUB_OUTPUT file.
type FileOutputs struct {
	Path string
	// NewDelimiter is overridable in tests; it defaults to a random one.
	NewDelimiter func() string
}

// SetOutput appends name=value using the heredoc form, which is safe for
// multi-line values.
func (f *FileOutputs) SetOutput(name, value string) error {
	newDelim := f.NewDelimiter
	if newDelim == nil {
		newDelim = func() string { return "ghadelimiter_" + uuid.NewString() }
	}
	delim := newDelim()
	if strings.Contains(name, delim) {
		return errors.Newf("action: output name %q must not contain the delimiter %q", name, delim)
	}
	if strings.Contains(value, delim) {
		return errors.Newf("action: output value for %q must not contain the delimiter %q", name, delim)
	}

	file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "action: failed to open output file %q", f.Path)
	}
	if _, err := fmt.Fprintf(file, "%s<<%s\n%s\n%s\n", name, delim, value, delim); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "action: failed to write output %q", name)
	}
	return errors.Wrapf(file.Close(), "action: failed to close output file %q", f.Path)
}

// CommandOutputs writes the legacy set-output workflow command, for runners
// that do not provide GITHUB_OUTPUT.
type CommandOutputs struct {
	W io.Writer
}

func (c *CommandOutputs) SetOutput(name, value string) error {
	_, err := fmt.Fprintf(c.W, "\n::set-output name=%s::%s\n", escapeProperty(name), EscapeData(value))
	return errors.Wrapf(err, "action: failed to write output %q", name)
}

// NewOutputs picks FileOutputs when GITHUB_OUTPUT is set, CommandOutputs
// on w otherwise.
func NewOutputs(w io.Writer) Outputs {
	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		return &FileOutputs{Path: path}
	}
	return &CommandOutputs{W: w}
}
