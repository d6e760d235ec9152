package core_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"wish/core/coretest"
)

func TestRunLineGrammarError(t *testing.T) {
	cases := []string{
		"& cmd",
		"a && b",
		"> file",
		"cmd >",
		"cmd > a > b",
	}

	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			f := coretest.NewFixture()
			assert.NoError(t, f.WriteExecutable("/bin/a"))
			assert.NoError(t, f.WriteExecutable("/bin/cmd"))

			f.Session.RunLine(line)

			// The whole line is aborted: nothing launches.
			assert.Empty(t, f.Journal.Calls())
			assert.Equal(t, errorMessage, f.Stderr.String())
		})
	}
}

func TestRunLineEmpty(t *testing.T) {
	f := coretest.NewFixture()

	f.Session.RunLine("")
	f.Session.RunLine("   \t ")

	assert.Empty(t, f.Journal.Calls())
	assert.Empty(t, f.Stderr.String())
}

func TestRunBatchLaunchesAllBeforeWaiting(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/first"))
	assert.NoError(t, f.WriteExecutable("/bin/second"))
	assert.NoError(t, f.WriteExecutable("/bin/third"))

	f.Session.RunLine("first & second & third")

	assert.Equal(t, []string{
		"launch first",
		"launch second",
		"launch third",
		"wait first",
		"wait second",
		"wait third",
	}, f.Journal.Calls())
}

func TestRunBatchNotFoundIsolation(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/a"))
	assert.NoError(t, f.WriteExecutable("/bin/c"))

	f.Session.RunLine("a & missing & c")

	// The unresolvable middle command is reported once and its siblings
	// run regardless.
	assert.Equal(t, []string{
		"launch a",
		"launch c",
		"wait a",
		"wait c",
	}, f.Journal.Calls())
	assert.Equal(t, errorMessage, f.Stderr.String())
}

func TestRunBatchLaunchFailureIsolation(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/a"))
	assert.NoError(t, f.WriteExecutable("/bin/broken"))
	f.Launcher.Results["broken"] = coretest.Result{Err: assert.AnError}

	f.Session.RunLine("broken & a")

	assert.Equal(t, []string{
		"launch broken",
		"launch a",
		"wait a",
	}, f.Journal.Calls())
	assert.Equal(t, errorMessage, f.Stderr.String())
}

func TestRunBatchRedirect(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/cmd"))
	f.Launcher.Results["cmd"] = coretest.Result{Output: "redirected\n"}

	f.Session.RunLine("cmd arg > /out")

	content, err := afero.ReadFile(f.FS, "/out")
	assert.NoError(t, err)
	assert.Equal(t, "redirected\n", string(content))

	// The shell's own stdout never sees the redirected output.
	assert.Empty(t, f.Stdout.String())
	assert.Equal(t, []string{"launch cmd arg", "wait cmd"}, f.Journal.Calls())
}

func TestRunBatchRedirectTruncates(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/cmd"))
	assert.NoError(t, afero.WriteFile(f.FS, "/out", []byte("previous contents"), 0644))
	f.Launcher.Results["cmd"] = coretest.Result{Output: "new"}

	f.Session.RunLine("cmd > /out")

	content, err := afero.ReadFile(f.FS, "/out")
	assert.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestRunBatchRedirectTruncatesBeforeResolution(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, afero.WriteFile(f.FS, "/out", []byte("previous contents"), 0644))

	// The target is opened before the program search, so even a command
	// that fails to resolve truncates it.
	f.Session.RunLine("missing > /out")

	content, err := afero.ReadFile(f.FS, "/out")
	assert.NoError(t, err)
	assert.Empty(t, content)
	assert.Equal(t, errorMessage, f.Stderr.String())
}

func TestRunBatchParallelRedirectsDoNotCross(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/c1"))
	assert.NoError(t, f.WriteExecutable("/bin/c2"))
	f.Launcher.Results["c1"] = coretest.Result{Output: "one\n"}
	f.Launcher.Results["c2"] = coretest.Result{Output: "two\n"}

	f.Session.RunLine("c1 > /out1 & c2 > /out2")

	out1, err := afero.ReadFile(f.FS, "/out1")
	assert.NoError(t, err)
	assert.Equal(t, "one\n", string(out1))

	out2, err := afero.ReadFile(f.FS, "/out2")
	assert.NoError(t, err)
	assert.Equal(t, "two\n", string(out2))

	assert.Empty(t, f.Stdout.String())
}

func TestRunBatchBuiltinsAffectOnlyLaterSiblings(t *testing.T) {
	t.Run("cd orders with launches", func(t *testing.T) {
		f := coretest.NewFixture()
		assert.NoError(t, f.WriteExecutable("/bin/before"))
		assert.NoError(t, f.WriteExecutable("/bin/after"))

		f.Session.RunLine("before & cd /tmp & after")

		assert.Equal(t, []string{
			"launch before",
			"chdir /tmp",
			"launch after",
			"wait before",
			"wait after",
		}, f.Journal.Calls())
	})

	t.Run("path change applies to later siblings", func(t *testing.T) {
		f := coretest.NewFixture()
		assert.NoError(t, f.WriteExecutable("/opt/prog"))

		// prog only resolves once the mid-batch path builtin has
		// replaced the search path.
		f.Session.RunLine("prog & path /opt & prog")

		assert.Equal(t, []string{
			"launch prog",
			"wait prog",
		}, f.Journal.Calls())
		assert.Equal(t, errorMessage, f.Stderr.String())
	})
}

func TestRunBatchExitAbandonsSiblings(t *testing.T) {
	f := coretest.NewFixture()
	assert.NoError(t, f.WriteExecutable("/bin/a"))
	assert.NoError(t, f.WriteExecutable("/bin/b"))

	f.Session.RunLine("a & exit & b")

	// Exit terminates mid-batch: the already-launched sibling is never
	// waited on and the later one never launches.
	assert.Equal(t, []string{
		"launch a",
		"exit 0",
	}, f.Journal.Calls())
	assert.True(t, f.Session.Exited())
}

func TestRunBatchAllBuiltinsReturnsImmediately(t *testing.T) {
	f := coretest.NewFixture()

	f.Session.RunLine("path /bin & cd /tmp")

	assert.Equal(t, []string{"chdir /tmp"}, f.Journal.Calls())
	assert.Empty(t, f.Stderr.String())
}
