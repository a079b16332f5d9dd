package bookshelf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateItem(t *testing.T) {
	h := newHome(t, nil)
	it := card("Lightning Bolt", "b", Plain, 1)

	e, err := h.CreateItem("mtg/red", "Lightning Bolt", it)
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	if !strings.HasPrefix(e.Path, "mtg/red/Lightning Bolt-") {
		t.Errorf("CreateItem() path = %q, want it in mtg/red", e.Path)
	}
	back, err := h.ReadItem(e.Path)
	if err != nil {
		t.Fatalf("ReadItem() error: %v", err)
	}
	if back.Name != it.Name {
		t.Errorf("ReadItem() name = %q, want %q", back.Name, it.Name)
	}

	// a second copy gets its own directory.
	e2, err := h.CreateItem("mtg/red", "Lightning Bolt", it)
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	if e2.Path == e.Path {
		t.Errorf("CreateItem() reused path %q", e.Path)
	}
}

func TestCreateItemOutOfScope(t *testing.T) {
	h := newHome(t, nil)
	it := card("Bolt", "b", Plain, 1)

	if _, err := h.CreateItem("../elsewhere", "Bolt", it); !errors.Is(err, ErrOutOfScope) {
		t.Errorf("CreateItem(../elsewhere) error = %v, want ErrOutOfScope", err)
	}

	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(h.Root(), "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if _, err := h.CreateItem("link/new/shelf", "Bolt", it); !errors.Is(err, ErrOutOfScope) {
		t.Errorf("CreateItem(link/new/shelf) error = %v, want ErrOutOfScope", err)
	}
	entries, _ := os.ReadDir(outside)
	if len(entries) != 0 {
		t.Errorf("CreateItem() wrote outside of the home: %v", entries)
	}
	if _, err := h.CreateItem("mtg", "../../Bolt", it); err == nil {
		t.Error("CreateItem() with a path as name expected an error")
	}
}

func TestResolve(t *testing.T) {
	h := newHome(t, map[string]*Item{"a/b": nil})
	testCases := []struct {
		shelf string
		want  string
		err   error
	}{
		{"", "", nil},
		{"a", "a", nil},
		{"a/b/", "a/b", nil},
		{"/a", "", ErrOutOfScope}, // absolute, not under the home.
		{filepath.Join(h.Root(), "a"), "a", nil},
		{"a/../..", "", ErrOutOfScope},
		{"a/c", "", ErrShelfNotFound},
	}
	for _, tc := range testCases {
		p, err := h.Resolve(tc.shelf)
		if !errors.Is(err, tc.err) || (tc.err == nil && err != nil) {
			t.Errorf("Resolve(%q) error = %v, want %v", tc.shelf, err, tc.err)
			continue
		}
		if err == nil && h.Rel(p) != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.shelf, h.Rel(p), tc.want)
		}
	}
}
