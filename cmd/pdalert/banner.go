package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/swatto/pdalert/internal/action"
	"github.com/swatto/pdalert/internal/pagerduty"
)

const (
	boxInnerWidth = 64
	configValueAt = 22 // column where summary values start
)

// padCenter returns s centered in a string of width runes, padded with spaces.
func padCenter(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	pad := width - n
	left := pad / 2
	right := pad - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// boxLine returns a box line with s centered between the vertical borders.
func boxLine(s string) string {
	return "║" + padCenter(s, boxInnerWidth) + "║"
}

// configLine returns a summary line with label and value, value aligned at configValueAt.
// Values come from step inputs, so they are escaped to stay on one stdout line.
func configLine(label, value string) string {
	prefix := "    • " + label + ":"
	pad := max(1, configValueAt-utf8.RuneCountInString(prefix))
	return prefix + strings.Repeat(" ", pad) + action.EscapeData(value)
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

// printSummary writes what is about to be sent inside a collapsible log
// group. The routing key is masked.
func printSummary(w io.Writer, cfg *action.Config, endpoint string) {
	ev := cfg.Event
	lines := []string{
		"::group::" + AppName + " " + Version,
		"╔" + strings.Repeat("═", boxInnerWidth) + "╗",
		boxLine(AppName),
		boxLine(AppDescription),
		"╚" + strings.Repeat("═", boxInnerWidth) + "╝",
		fmt.Sprintf("  Version:        %s", Version),
		fmt.Sprintf("  Go version:     %s", runtime.Version()),
		fmt.Sprintf("  OS/Arch:        %s/%s", runtime.GOOS, runtime.GOARCH),
		"",
		"  Event:",
		configLine("Action", orUnset(ev.EventAction)),
		configLine("Severity", orUnset(ev.Severity)),
		configLine("Source", orUnset(ev.Source)),
		configLine("Summary", orUnset(ev.Summary)),
		configLine("Routing key", orUnset(pagerduty.MaskKey(ev.RoutingKey))),
	}
	if ev.DedupKey != "" {
		lines = append(lines, configLine("Dedup key", ev.DedupKey))
	}
	if endpoint != pagerduty.DefaultEventsURL {
		endpoint += " (custom)"
	}
	lines = append(lines, configLine("Endpoint", endpoint))
	if cfg.Timeout > 0 {
		lines = append(lines, configLine("Timeout", cfg.Timeout.String()))
	}
	if cfg.Strict {
		lines = append(lines, configLine("Strict", "enabled (validated before send)"))
	}
	if cfg.MetricsFile != "" {
		lines = append(lines, configLine("Metrics file", cfg.MetricsFile))
	}
	lines = append(lines, "::endgroup::")

	for _, l := range lines {
		_, _ = fmt.Fprintln(w, l)
	}
}
