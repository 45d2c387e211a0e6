package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")
	h := NewHistory(path)

	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}

	for _, line := range []string{"a", "b", "  ", "b", "c", "a"} {
		if err := h.Add(line); err != nil {
			t.Fatalf("Add(%q) error = %v", line, err)
		}
	}

	want := []string{"b", "c", "a"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "b\nc\na\n" {
		t.Errorf("file = %q, want %q", got, "b\nc\na\n")
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %q, want %q", got, want)
	}

	if got, err := reloaded.Entry(0); err != nil || got != "b" {
		t.Errorf("Entry(0) = %q, %v; want b", got, err)
	}

	if _, err := reloaded.Entry(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(3) error = %v, want ErrOutOfBounds", err)
	}
}

func TestHistoryInMemory(t *testing.T) {
	t.Parallel()

	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if err := h.Add("x"); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}
