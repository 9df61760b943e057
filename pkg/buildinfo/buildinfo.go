// Package buildinfo contains build information.
//
// Most of the information is derived from the module and VCS data that the Go
// toolchain embeds in the binary.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/mdtree/mdtree/pkg/mdrules"
	"github.com/mdtree/mdtree/pkg/prog"
)

// VersionBase is the version of mdtree. On development commits, it identifies
// the next release.
const VersionBase = "0.1.0"

// Type contains all the build information fields.
type Type struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
	// Names of the built-in rules in priority order.
	Rules []string `json:"rules"`
}

// Value contains all the build information.
var Value = Type{
	Version:   devVersion(VersionBase, readBuildInfo()),
	GoVersion: runtime.Version(),
	Rules:     mdrules.Default().Priority,
}

func readBuildInfo() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
}

func devVersion(next string, bi *debug.BuildInfo) string {
	fallback := next + "-dev.unknown"
	if bi == nil {
		return fallback
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}

	var revision, timestamp string
	modified := false
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			timestamp = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" || timestamp == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return fallback
	}
	// Format the same way as Go's pseudo-versions.
	v := fmt.Sprintf("%s-dev.0.%s-%s",
		next, t.UTC().Format("20060102150405"), revision[:min(12, len(revision))])
	if modified {
		v += "-dirty"
	}
	return v
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo, json bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&p.json, "json", false, "show the output of -version or -buildinfo in JSON")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			fmt.Fprintln(fds[1], "Rules:", strings.Join(Value.Rules, " "))
		}
	case p.version:
		if p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
