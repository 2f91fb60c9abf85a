package action

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// WorkflowFormatter renders logrus entries as runner workflow commands:
// errors and warnings become annotations, debug lines are only shown when
// step debugging is on, info lines are printed as-is.
type WorkflowFormatter struct {
	// WithFields appends entry fields as key=value to every line. Debug
	// lines always carry them.
	WithFields bool
}

func (f *WorkflowFormatter) Format(entry *log.Entry) ([]byte, error) {
	msg := entry.Message
	if f.WithFields || entry.Level >= log.DebugLevel {
		msg += formatFields(entry.Data)
	}

	var b bytes.Buffer
	switch {
	case entry.Level <= log.ErrorLevel:
		b.WriteString("::error::" + EscapeData(msg))
	case entry.Level == log.WarnLevel:
		b.WriteString("::warning::" + EscapeData(msg))
	case entry.Level >= log.DebugLevel:
		b.WriteString("::debug::" + EscapeData(msg))
	default:
		// Plain lines are not decoded by the runner; only break up line endings.
		b.WriteString(lineBreaks.Replace(msg))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatFields(data log.Fields) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v := data[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fmt.Fprintf(&sb, " %s=%v", k, v)
	}
	return sb.String()
}

// ConfigureLogger points the standard logrus logger at w with the workflow
// formatter. runnerDebug mirrors RUNNER_DEBUG=1 and forces debug level.
func ConfigureLogger(w io.Writer, level string, runnerDebug bool) error {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return errors.Wrapf(err, "action: invalid log level %q", level)
		}
		lvl = parsed
	}
	if runnerDebug {
		lvl = log.DebugLevel
	}
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&WorkflowFormatter{})
	return nil
}

var lineBreaks = strings.NewReplacer("\r", "%0D", "\n", "%0A")

// EscapeData encodes s so the runner reads it as text on a single line and
// never as the start of a workflow command.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func escapeProperty(s string) string {
	s = EscapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	return strings.ReplaceAll(s, ",", "%2C")
}
