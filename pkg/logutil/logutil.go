// Package logutil provides loggers that write to a shared, configurable sink.
// The sink discards everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out = io.Discard
	// Set when out was opened by SetOutputFile, so that it can be closed when
	// the output changes again.
	outFile *os.File
	loggers []*log.Logger
	// Protects the fields above.
	mutex sync.Mutex
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// GetLogger gets a logger with a prefix.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// newout. If the old output was a file opened by SetOutputFile, it is closed.
func SetOutput(newout io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(newout)
}

func setOutput(newout io.Writer) {
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file, which is opened for appending. An empty name discards
// the output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(file)
	outFile = file
	return nil
}
