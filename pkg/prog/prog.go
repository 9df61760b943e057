// Package prog supports building testable, composable programs.
//
// The main function of mdtree is a Composite of subprograms; each registers
// its flags and either handles the invocation or defers to the next one.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/mdtree/mdtree/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	// RegisterFlags registers the flags the subprogram understands.
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram. It returns ErrNextProgram if the flags
	// indicate that another subprogram should handle the invocation.
	Run(fds [3]*os.File, args []string) error
}

// ErrNextProgram may be returned by the Run method of a Program in a
// Composite, so that the next Program is tried.
var ErrNextProgram = errors.New("next program")

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// Flags understood regardless of the subprogram.
type globalFlags struct {
	log        string
	cpuProfile string
	help       bool
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.log, "log", "", "a file to write debug log to")
	fs.StringVar(&g.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	fs.BoolVar(&g.help, "help", false, "show usage help and quit")
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: mdtree [flags] [file...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	var g globalFlags
	fs := flag.NewFlagSet("mdtree", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	g.register(fs)
	p.RegisterFlags(&FlagSet{FlagSet: fs})

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// Only -help is defined.
			err = errors.New("flag provided but not defined: -h")
		}
		fmt.Fprintln(fds[2], err)
		usage(fds[2], fs)
		return 2
	}

	if g.cpuProfile != "" {
		if stop, err := startCPUProfile(g.cpuProfile); err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			defer stop()
		}
	}
	if g.log != "" {
		if err := logutil.SetOutputFile(g.log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}
	if g.help {
		usage(fds[1], fs)
		return 0
	}

	err := p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrNextProgram) {
		err = errNoSuitableSubprogram
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	if errors.As(err, &badUsage) {
		usage(fds[2], fs)
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 2
}

func startCPUProfile(name string) (stop func(), err error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

// Composite returns a Program that registers the flags of all the given
// programs, and runs them in turn until one returns something other than
// ErrNextProgram.
func Composite(programs ...Program) Program { return composite(programs) }

type composite []Program

func (c composite) RegisterFlags(fs *FlagSet) {
	for _, p := range c {
		p.RegisterFlags(fs)
	}
}

func (c composite) Run(fds [3]*os.File, args []string) error {
	for _, p := range c {
		if err := p.Run(fds, args); !errors.Is(err, ErrNextProgram) {
			return err
		}
	}
	return ErrNextProgram
}

// BadUsage returns an error that makes Run print msg followed by the usage,
// and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that makes Run exit with the given code without
// printing anything. Exit(0) returns nil.
func Exit(code int) error {
	if code == 0 {
		return nil
	}
	return exitError{code}
}

type exitError struct{ code int }

func (e exitError) Error() string { return "" }
