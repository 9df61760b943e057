package must

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOK(t *testing.T) {
	OK(nil)
	if got := OK1(42, nil); got != 42 {
		t.Errorf("OK1 -> %v, want 42", got)
	}
	if a, b := OK2("a", 1, nil); a != "a" || b != 1 {
		t.Errorf("OK2 -> (%v, %v), want (a, 1)", a, b)
	}
}

func TestOK_PanicsOnError(t *testing.T) {
	err := errors.New("bad")
	defer func() {
		if r := recover(); r != err {
			t.Errorf("recovered %v, want %v", r, err)
		}
	}()
	OK(err)
}

func TestWriteFileAndRead(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a", "b.txt")
	WriteFile(name, "content")
	if got := ReadFileString(name); got != "content" {
		t.Errorf("got %q, want %q", got, "content")
	}
}

func TestPipe(t *testing.T) {
	r, w := Pipe()
	defer r.Close()
	w.Write([]byte("x"))
	w.Close()
	buf := make([]byte, 1)
	if n, _ := r.Read(buf); n != 1 || buf[0] != 'x' {
		t.Errorf("read %q from pipe, want %q", buf[:n], "x")
	}
}
