package main

import (
	"testing"

	"github.com/tracer-protocol/tracer-utils/pkg/accounting"
)

func TestExitCodeWithoutBook(t *testing.T) {
	// Short 10 at $100 with 1000 quote sits below its minimum margin
	pos, err := accounting.NewPosition("1000", "-10", "100", "50")
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if got := exitCode(pos.Health().Liquidatable()); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}

	healthy, err := accounting.NewPosition("1200", "-10", "100", "50")
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if got := exitCode(healthy.Health().Liquidatable()); got != 0 {
		t.Errorf("exit code = %d, want 0", got)
	}
}

func TestParseBook(t *testing.T) {
	levels, err := parseBook("1:10, 1.1:20")
	if err != nil {
		t.Fatalf("parseBook: %v", err)
	}
	if len(levels) != 2 || levels[1].Price.String() != "1.1" || levels[1].Amount.String() != "20" {
		t.Errorf("unexpected levels: %+v", levels)
	}
	if _, err := parseBook("1-10"); err == nil {
		t.Error("expected error for missing separator")
	}
}
