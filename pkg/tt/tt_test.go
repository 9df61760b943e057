package tt

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

// Records the messages passed to Errorf.
type recorder []string

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func addsub(x, y int) (int, int) { return x + y, x - y }

func fields(s string) []string { return strings.Fields(s) }

func join(sep string, parts ...[]byte) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.Write(p)
	}
	return sb.String()
}

func open(name string) error {
	return fmt.Errorf("open: %w", &fs.PathError{Op: "open", Path: name, Err: errors.New("x")})
}

type otherError struct{}

func (*otherError) Error() string { return "other" }

func TestTest_Pass(t *testing.T) {
	for _, test := range []struct {
		name  string
		fn    *FnToTest
		table Table
	}{
		{"exact", Fn("addsub", addsub), Table{Args(1, 10).Rets(11, -9)}},
		{"any", Fn("addsub", addsub), Table{Args(1, 10).Rets(Any, -9)}},
		{"several Rets", Fn("addsub", addsub), Table{Args(2, 2).Rets(4, 0).Rets(Any, Any)}},
		{"nil equals empty", Fn("fields", fields), Table{
			Args("").Rets([]string(nil)),
			Args(" ").Rets([]string{}),
		}},
		{"ErrorAs", Fn("open", open), Table{Args("a").Rets(ErrorAs(&fs.PathError{}))}},
		{"nil variadic argument", Fn("join", join), Table{
			Args(",", []byte("a"), nil, []byte("b")).Rets("a,,b"),
		}},
	} {
		t.Run(test.name, func(t *testing.T) {
			var r recorder
			Test(&r, test.fn, test.table)
			if len(r) > 0 {
				t.Errorf("got errors %q, want none", r)
			}
		})
	}
}

func TestTest_Fail(t *testing.T) {
	for _, test := range []struct {
		name       string
		fn         *FnToTest
		table      Table
		wantPrefix string
	}{
		{
			"default format",
			Fn("addsub", addsub), Table{Args(1, 10).Rets(11, -90)},
			`addsub("1", "10") returns (-want +got):` + "\nret 1:",
		},
		{
			"custom format",
			Fn("addsub", addsub).ArgsFmt("x = %d, y = %d"), Table{Args(1, 10).Rets(12, -9)},
			"addsub(x = 1, y = 10) returns (-want +got):\nret 0:",
		},
		{
			"matcher",
			Fn("open", open), Table{Args("a").Rets(ErrorAs(&otherError{}))},
			`open("a") returns (-want +got):` + "\nret 0: open: open a: x does not match",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var r recorder
			Test(&r, test.fn, test.table)
			if len(r) != 1 {
				t.Fatalf("got %d errors, want 1: %q", len(r), r)
			}
			if !strings.HasPrefix(r[0], test.wantPrefix) {
				t.Errorf("got message %q, want prefix %q", r[0], test.wantPrefix)
			}
		})
	}
}
