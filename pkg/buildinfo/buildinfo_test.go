package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/mdtree/mdtree/pkg/prog/progtest"
	"github.com/mdtree/mdtree/pkg/tt"
)

func TestProgram(t *testing.T) {
	progtest.Test(t, &Program{},
		progtest.ThatMdtree("-version").WritesStdout(Value.Version+"\n"),
		progtest.ThatMdtree("-version", "-json").WritesStdout(`"`+Value.Version+`"`+"\n"),
		progtest.ThatMdtree("-buildinfo").
			WritesStdoutContaining("Go version: "+Value.GoVersion+"\n"),
		progtest.ThatMdtree("-buildinfo").
			WritesStdoutContaining("Rules: frontMatter heading lheading"),
		progtest.ThatMdtree("-buildinfo", "-json").
			WritesStdoutContaining(`"rules":["frontMatter",`),
		// -json alone does nothing.
		progtest.ThatMdtree("-json").ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestValue(t *testing.T) {
	if !strings.HasPrefix(Value.Version, VersionBase) {
		t.Errorf("Version %q does not start with %q", Value.Version, VersionBase)
	}
	if last := Value.Rules[len(Value.Rules)-1]; last != "text" {
		t.Errorf("last rule is %q, want text", last)
	}
}

func vcs(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestDevVersion(t *testing.T) {
	tt.Test(t, tt.Fn("devVersion", devVersion), tt.Table{
		tt.Args("1.0.0", (*debug.BuildInfo)(nil)).Rets("1.0.0-dev.unknown"),
		tt.Args("1.0.0", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).
			Rets("1.0.0-dev.unknown"),
		// Installed with go install from a tag.
		tt.Args("1.0.0", &debug.BuildInfo{Main: debug.Module{Version: "v0.9.1"}}).
			Rets("0.9.1"),
		tt.Args("1.0.0", vcs("abcdef0123456789", "2023-05-06T07:08:09Z", "false")).
			Rets("1.0.0-dev.0.20230506070809-abcdef012345"),
		tt.Args("1.0.0", vcs("abcdef0123456789", "2023-05-06T09:08:09+02:00", "true")).
			Rets("1.0.0-dev.0.20230506070809-abcdef012345-dirty"),
		// Short revisions are kept whole.
		tt.Args("1.0.0", vcs("abc", "2023-05-06T07:08:09Z", "false")).
			Rets("1.0.0-dev.0.20230506070809-abc"),
		tt.Args("1.0.0", vcs("abcdef0123456789", "yesterday", "false")).
			Rets("1.0.0-dev.unknown"),
		tt.Args("1.0.0", vcs("", "2023-05-06T07:08:09Z", "false")).
			Rets("1.0.0-dev.unknown"),
	})
}
