package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/swatto/pdalert/internal/action"
	"github.com/swatto/pdalert/internal/pagerduty"
)

func configFor(in pagerduty.Inputs) *action.Config {
	return &action.Config{Event: in}
}

func captureSummary(cfg *action.Config, endpoint string) string {
	var buf bytes.Buffer
	printSummary(&buf, cfg, endpoint)
	return buf.String()
}

func TestPadCenter(t *testing.T) {
	tests := []struct {
		s      string
		width  int
		length int // expected total length
	}{
		{"ab", 5, 5},
		{"x", 3, 3},
		{"", 4, 4},
		{"hello", 5, 5},
		{"hello", 10, 10},
		{"pdalert", 64, 64},
		{"ééé", 2, 2},
		{"é", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.s+"/"+fmt.Sprint(tt.width), func(t *testing.T) {
			got := padCenter(tt.s, tt.width)
			if !utf8.ValidString(got) {
				t.Fatalf("padCenter(%q, %d) = %q: split a multi-byte character", tt.s, tt.width, got)
			}
			if utf8.RuneCountInString(got) != tt.length {
				t.Errorf("padCenter(%q, %d) length = %d, want %d", tt.s, tt.width, len(got), tt.length)
			}
			if r := []rune(tt.s); len(r) >= tt.width && string(r[:tt.width]) != got {
				t.Errorf("padCenter(%q, %d) should truncate to %q", tt.s, tt.width, string(r[:tt.width]))
			}
		})
	}
}

func TestConfigLine(t *testing.T) {
	tests := []struct {
		label string
		value string
	}{
		{"Action", "trigger"},
		{"Routing key", "******GK3Y"},
		{"A label longer than the column", "value"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := configLine(tt.label, tt.value)
			prefix := "    • " + tt.label + ":"
			if !strings.HasPrefix(got, prefix) {
				t.Fatalf("configLine(%q, %q) should start with %q", tt.label, tt.value, prefix)
			}
			if !strings.HasSuffix(got, " "+tt.value) {
				t.Errorf("configLine(%q, %q) = %q: value should follow at least one space", tt.label, tt.value, got)
			}
			if width := len([]rune(prefix)); width < configValueAt {
				if col := len([]rune(got)) - len([]rune(tt.value)); col != configValueAt {
					t.Errorf("configLine(%q, %q): value starts at column %d, want %d", tt.label, tt.value, col, configValueAt)
				}
			}
		})
	}
}

func TestPrintSummary_Group(t *testing.T) {
	output := captureSummary(configFor(pagerduty.Inputs{EventAction: "trigger"}), pagerduty.DefaultEventsURL)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if !strings.HasPrefix(lines[0], "::group::pdalert ") {
		t.Errorf("first line should open a group, got %q", lines[0])
	}
	if lines[len(lines)-1] != "::endgroup::" {
		t.Errorf("last line should close the group, got %q", lines[len(lines)-1])
	}
}

func TestPrintSummary_MasksRoutingKey(t *testing.T) {
	output := captureSummary(configFor(pagerduty.Inputs{RoutingKey: "R0UT1NGK3Y"}), pagerduty.DefaultEventsURL)

	if strings.Contains(output, "R0UT1NGK3Y") {
		t.Errorf("routing key should be masked, got:\n%s", output)
	}
	if !strings.Contains(output, "******GK3Y") {
		t.Errorf("expected masked routing key in summary, got:\n%s", output)
	}
}

func TestPrintSummary_UnsetFields(t *testing.T) {
	output := captureSummary(configFor(pagerduty.Inputs{}), pagerduty.DefaultEventsURL)

	if !strings.Contains(output, configLine("Severity", "(unset)")) {
		t.Errorf("expected unset severity in summary, got:\n%s", output)
	}
	if strings.Contains(output, "Dedup key") {
		t.Errorf("dedup key line should be omitted when empty, got:\n%s", output)
	}
}

func TestPrintSummary_OptionalFields(t *testing.T) {
	cfg := &action.Config{
		Event:       pagerduty.Inputs{EventAction: "resolve", DedupKey: "abc123"},
		Strict:      true,
		Timeout:     10 * time.Second,
		MetricsFile: "/tmp/pdalert.prom",
	}
	output := captureSummary(cfg, "http://localhost:9999/v2/enqueue")

	for _, want := range []string{
		configLine("Dedup key", "abc123"),
		configLine("Endpoint", "http://localhost:9999/v2/enqueue (custom)"),
		configLine("Timeout", "10s"),
		configLine("Strict", "enabled (validated before send)"),
		configLine("Metrics file", "/tmp/pdalert.prom"),
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in summary, got:\n%s", want, output)
		}
	}
}

func TestPrintSummary_EscapesInputs(t *testing.T) {
	cfg := configFor(pagerduty.Inputs{
		EventAction: "trigger",
		Summary:     "x\n::endgroup::\n::error::injected",
		Source:      "ci\r\n::warning::also injected",
		DedupKey:    "100%\n::debug::d",
	})
	output := captureSummary(cfg, pagerduty.DefaultEventsURL)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "::") && i != 0 && i != len(lines)-1 {
			t.Errorf("line %d reads as a workflow command: %q", i, l)
		}
	}
	if !strings.Contains(output, configLine("Summary", "x\n::endgroup::\n::error::injected")) {
		t.Errorf("expected escaped summary line, got:\n%s", output)
	}
	if !strings.Contains(output, "x%0A::endgroup::%0A::error::injected") {
		t.Errorf("expected newlines encoded as %%0A, got:\n%s", output)
	}
	if !strings.Contains(output, "100%25%0A::debug::d") {
		t.Errorf("expected percent encoded as %%25, got:\n%s", output)
	}
}
