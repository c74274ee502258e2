// Structured logging tests
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	logger := New("test")
	logger.SetWriter(buf)
	logger.SetLevel(DEBUG)
	logger.SetColorize(false)
	return logger
}

func TestLoggerBasic(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Info("update %d of %s", 3, "pendulum")

	output := buf.String()
	if !strings.Contains(output, "[INFO ]") {
		t.Errorf("expected INFO level, got: %s", output)
	}
	if !strings.Contains(output, "test: update 3 of pendulum") {
		t.Errorf("expected prefix and message, got: %s", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("expected trailing newline, got: %q", output)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level   LogLevel
		emitted []string
	}{
		{DEBUG, []string{"d", "i", "w", "e"}},
		{INFO, []string{"i", "w", "e"}},
		{WARN, []string{"w", "e"}},
		{ERROR, []string{"e"}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newTestLogger(&buf)
			logger.SetLevel(tt.level)
			logger.SetTimeFormat("T")

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.emitted) {
				t.Fatalf("expected %d lines, got %d: %q", len(tt.emitted), len(lines), lines)
			}
			for i, msg := range tt.emitted {
				if !strings.HasSuffix(lines[i], ": "+msg) {
					t.Errorf("line %d: expected message %q, got %q", i, msg, lines[i])
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		" Warn ":  WARN,
		"error":   ERROR,
		"verbose": INFO,
		"":        INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if LogLevel(42).String() != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for out-of-range level")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("text") != FormatText || ParseFormat("xml") != FormatText {
		t.Errorf("ParseFormat mismatch")
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.SetFormat(FormatJSON)

	logger.With(Fields{"model": "scara"}).WithField("bodies", 4).Warn("slow propagation")

	var entry JSONLogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v, output: %s", err, buf.String())
	}
	if entry.Level != "WARN" || entry.Logger != "test" || entry.Message != "slow propagation" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Fields["model"] != "scara" {
		t.Errorf("expected persistent field model=scara, got: %v", entry.Fields)
	}
	// JSON numbers decode as float64
	if entry.Fields["bodies"] != float64(4) {
		t.Errorf("expected entry field bodies=4, got: %v", entry.Fields)
	}
	if entry.Caller != "" {
		t.Errorf("expected no caller, got: %s", entry.Caller)
	}
}

func TestLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.WithFields(Fields{"zeta": 1, "alpha": 2}).WithError(errors.New("boom")).Info("fields")

	output := buf.String()
	if !strings.Contains(output, "{alpha=2, error=boom, zeta=1}") {
		t.Errorf("expected sorted fields, got: %s", output)
	}
}

func TestEntryDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	base := logger.WithField("a", 1)
	_ = base.WithField("b", 2)
	base.Info("only a")

	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("child entry leaked a field into its parent: %s", buf.String())
	}
}

func TestLoggerCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.SetCaller(true)

	logger.Info("where")
	if !strings.Contains(buf.String(), "(logger_test.go:") {
		t.Errorf("expected caller in this file, got: %s", buf.String())
	}

	buf.Reset()
	logger.WithField("k", "v").Infof("where %d", 2)
	if !strings.Contains(buf.String(), "(logger_test.go:") {
		t.Errorf("expected caller through Entry in this file, got: %s", buf.String())
	}
}

func TestWithPrefixSharesSettings(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.SetLevel(WARN)

	child := logger.WithPrefix("child")
	child.Info("hidden")
	child.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("child should inherit level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "child: shown") {
		t.Errorf("expected child prefix, got: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(ERROR) {
		t.Errorf("discard logger should not be enabled")
	}
	logger.Error("nothing")
}

func TestConfigureFromEnv(t *testing.T) {
	t.Setenv("KINEMATICS_LOG_LEVEL", "error")
	t.Setenv("KINEMATICS_LOG_FORMAT", "json")
	t.Setenv("KINEMATICS_LOG_CALLER", "1")
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := New("env")
	logger.SetWriter(&buf)
	ConfigureFromEnv(logger)

	if logger.GetLevel() != ERROR {
		t.Errorf("expected ERROR level, got %v", logger.GetLevel())
	}
	logger.Error("configured")

	var entry JSONLogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output: %v, output: %s", err, buf.String())
	}
	if !strings.HasPrefix(entry.Caller, "logger_test.go:") {
		t.Errorf("expected caller, got %q", entry.Caller)
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	root := newTestLogger(&buf)
	SetDefaultLogger(root)
	defer SetDefaultLogger(nil)

	GetLogger("multibody").Info("hello")
	Warn("package level")

	output := buf.String()
	if !strings.Contains(output, "multibody: hello") {
		t.Errorf("expected component prefix, got: %s", output)
	}
	if !strings.Contains(output, "kinematics: package level") {
		t.Errorf("expected default prefix, got: %s", output)
	}
}

func TestColorOnlyForTerminals(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	logger := New("plain")
	logger.SetWriter(&buf)
	logger.Warn("no escapes")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("buffers should not be coloured: %q", buf.String())
	}

	buf.Reset()
	logger.SetColorize(true)
	logger.Warn("forced")
	if !strings.Contains(buf.String(), "\x1b[33m") {
		t.Errorf("expected forced colour, got %q", buf.String())
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if colorFor(w) {
		t.Error("a pipe is not a terminal")
	}
}
