package sinks

import (
	"bytes"
	"strings"
	"testing"

	"star-rush/server/logging"
)

func TestConsoleSinkPlainByDefault(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{})

	if err := sink.Write(logging.Event{
		Type:     "gameplay.star_pickup",
		Tick:     7,
		Actor:    logging.EntityRef{ID: "ship-1", Kind: logging.EntityKindShip},
		Severity: logging.SeverityWarn,
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "severity=warn") {
		t.Fatalf("missing severity label: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("unexpected ansi escape in plain output: %q", line)
	}
}

func TestConsoleSinkColorsSeverity(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{UseColor: true})

	if err := sink.Write(logging.Event{
		Type:     "lifecycle.ship_joined",
		Severity: logging.SeverityError,
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "\x1b[31merror\x1b[0m") {
		t.Fatalf("expected colored error label: %q", line)
	}
}
