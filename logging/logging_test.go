// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerInitializers(t *testing.T) {
	t.Parallel()

	Init()
	if l := Logger(SourceNarrative); l == nil {
		t.Fatal("Logger returned nil")
	}
	if l := StdLogger(SourceWebRequest); l == nil {
		t.Fatal("StdLogger returned nil")
	}
}

func TestSetLevelRejectsUnknownLevel(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug) failed: %v", err)
	}

	if err := SetLevel("info"); err != nil {
		t.Fatalf("SetLevel(info) failed: %v", err)
	}
}

func TestSetLevelAppliesToExistingLoggers(t *testing.T) {
	l := Logger(SourceDB)

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel(error) failed: %v", err)
	}
	defer func() {
		if err := SetLevel("info"); err != nil {
			t.Fatalf("SetLevel(info) failed: %v", err)
		}
	}()

	if got := l.GetLevel(); got != log.ErrorLevel {
		t.Fatalf("expected derived logger at error level, got %v", got)
	}
}
