package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	lb, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer lb.Close()

	lb.Record("Added %s to cart", "Monstera")
	lb.Record("Checkout complete")

	lines := lb.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Added Monstera to cart") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestTailIsBounded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	lb, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer lb.Close()

	for i := 0; i < 10; i++ {
		lb.Record("entry %d", i)
	}
	lines := lb.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "entry 9") {
		t.Fatalf("expected most recent entry last, got %q", lines[2])
	}
}

func TestOpenPreloadsExistingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	first.Record("persisted entry")
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	lines := second.Tail(5)
	if len(lines) != 1 || !strings.Contains(lines[0], "persisted entry") {
		t.Fatalf("expected preloaded entry, got %v", lines)
	}
}
