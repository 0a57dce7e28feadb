// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		if l := NewLogger(level); l == nil {
			t.Errorf("expected logger for level %q", level)
		}
	}
}

func TestNewLoggerInvalidLevelFallsBack(t *testing.T) {
	if l := NewLogger("invalid"); l == nil {
		t.Error("expected logger for invalid level")
	}
}

func TestNoopLoggerSecurity(t *testing.T) {
	l := NewNoopLogger()
	if l.Security() == nil {
		t.Error("expected security logger")
	}
	l.Security().SystemStartup()
	l.Security().SystemShutdown()
}
