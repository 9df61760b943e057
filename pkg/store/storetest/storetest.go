// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/mdtree/mdtree/pkg/store/storedefs"
)

// TestRender tests the render cache functionality of a Store.
func TestRender(t *testing.T, store storedefs.Store) {
	t.Helper()

	if _, err := store.Get("html", "# a"); !errors.Is(err, storedefs.ErrNoEntry) {
		t.Errorf("Get of missing entry -> error %v, want ErrNoEntry", err)
	}

	if err := store.Put("html", "# a", "<h1>a</h1>\n"); err != nil {
		t.Fatalf("Put -> error %v", err)
	}
	if out, err := store.Get("html", "# a"); out != "<h1>a</h1>\n" || err != nil {
		t.Errorf("Get -> (%q, %v), want (%q, nil)", out, err, "<h1>a</h1>\n")
	}
	// The same source in another format is a different entry.
	if _, err := store.Get("trace", "# a"); !errors.Is(err, storedefs.ErrNoEntry) {
		t.Errorf("Get in another format -> error %v, want ErrNoEntry", err)
	}

	if err := store.Put("html", "# a", "<h1>A</h1>\n"); err != nil {
		t.Fatalf("Put -> error %v", err)
	}
	if out, _ := store.Get("html", "# a"); out != "<h1>A</h1>\n" {
		t.Errorf("Get after overwrite -> %q, want %q", out, "<h1>A</h1>\n")
	}

	store.Put("trace", "# a", "heading\n")
	stats, err := store.Stats()
	if want := (storedefs.Stats{Entries: 2, Bytes: 19}); stats != want || err != nil {
		t.Errorf("Stats -> (%v, %v), want (%v, nil)", stats, err, want)
	}

	if err := store.Del("html", "# a"); err != nil {
		t.Errorf("Del -> error %v", err)
	}
	if _, err := store.Get("html", "# a"); !errors.Is(err, storedefs.ErrNoEntry) {
		t.Errorf("Get after Del -> error %v, want ErrNoEntry", err)
	}
	if err := store.Del("html", "# a"); err != nil {
		t.Errorf("Del of missing entry -> error %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear -> error %v", err)
	}
	if stats, _ := store.Stats(); stats.Entries != 0 {
		t.Errorf("%d entries after Clear, want 0", stats.Entries)
	}
}
