package testutil

import (
	"os"
	"testing"
)

func TestSet(t *testing.T) {
	c := &cleanuper{}
	s := "old"
	Set(c, &s, "new")
	if s != "new" {
		t.Errorf("after Set, got %q, want %q", s, "new")
	}
	c.runCleanups()
	if s != "old" {
		t.Errorf("after cleanup, got %q, want %q", s, "old")
	}
}

func TestSetenv(t *testing.T) {
	c := &cleanuper{}
	Unsetenv(c, "MDTREE_TEST_VAR")
	Setenv(c, "MDTREE_TEST_VAR", "x")
	if got := os.Getenv("MDTREE_TEST_VAR"); got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
	c.runCleanups()
	if _, ok := os.LookupEnv("MDTREE_TEST_VAR"); ok {
		t.Errorf("MDTREE_TEST_VAR still set after cleanup")
	}
}
