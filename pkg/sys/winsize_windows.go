package sys

import (
	"os"

	"golang.org/x/sys/windows"
)

func winSize(file *os.File) (row, col int, err error) {
	var info windows.ConsoleScreenBufferInfo
	err = windows.GetConsoleScreenBufferInfo(windows.Handle(file.Fd()), &info)
	if err != nil {
		return 0, 0, err
	}
	// The window coordinates are inclusive.
	w := info.Window
	return int(w.Bottom-w.Top) + 1, int(w.Right-w.Left) + 1, nil
}
