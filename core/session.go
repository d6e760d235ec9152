package core

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"wish/core/config"
	"wish/core/logger"
)

// MaxLineLen is a soft sanity limit on one input line, checked once at
// the read boundary.
const MaxLineLen = 1 << 20

// Session is one run of the shell: its streams, search path, launcher
// and event log. The session is single threaded between lines; only the
// external commands of one batch ever run concurrently.
type Session struct {
	Config *config.Configuration

	// FS backs the resolver, redirect targets and config access.
	FS afero.Fs

	// Stdin feeds the read loop; Stdout and Stderr are the shell's own
	// streams. Redirects never touch them.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ChildStdin is inherited by every launched process.
	ChildStdin io.Reader

	Launcher Launcher
	Log      *logger.SessionLogger

	// Chdir and ExitFunc exist so tests can observe cd and exit without
	// changing the test process's own state. ExitFunc == nil means
	// os.Exit.
	Chdir    func(dir string) error
	ExitFunc func(status int)

	searchPath []string
	colors     *ColorPrinter
	exited     bool
}

// NewSession creates a session wired to the real OS. Callers may swap
// out any of the exported fields before running it.
func NewSession(cfg *config.Configuration) *Session {
	s := &Session{
		Config:     cfg,
		FS:         afero.NewOsFs(),
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		ChildStdin: os.Stdin,
		Launcher:   OSLauncher{},
		Log:        logger.NewNopLogRecorder().NewSession(),
		Chdir:      os.Chdir,
	}
	s.SetSearchPath(cfg.SearchPath)
	return s
}

// Exited reports whether the exit builtin has run. Only observable when
// ExitFunc is injected; the default terminates the process outright.
func (s *Session) Exited() bool {
	return s.exited
}

func (s *Session) terminate(status int) {
	if s.ExitFunc == nil {
		os.Exit(status)
	}
	s.ExitFunc(status)
	s.exited = true
}

// reportError signals a failure to the user. Per-failure detail goes to
// the event log only; the user-visible message is fixed and printed
// exactly once per failing command or line.
func (s *Session) reportError() {
	fmt.Fprintln(s.Stderr, "An error has occurred")
}

func (s *Session) invalidInvocation(args []string, err error) {
	s.Log.Record(&logger.InvalidInvocation{Command: args, Error: err.Error()})
	s.reportError()
}

func (s *Session) prompt() string {
	if s.colors == nil {
		s.colors = NewColorPrinter(s.Config.Colors, s.Stdout)
	}
	return s.colors.Sprintf(ColorBoldGreen, "%s", s.Config.Prompt)
}

// RunScript feeds the session lines from a script. No prompt is
// printed; EOF ends the session.
func (s *Session) RunScript(path string, r io.Reader) error {
	s.Log.Record(&logger.SessionStart{Mode: "script", ScriptPath: path})
	defer s.Log.Record(&logger.SessionEnd{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineLen)
	for scanner.Scan() {
		s.RunLine(scanner.Text())
		if s.exited {
			return nil
		}
	}
	return scanner.Err()
}

// RunInteractive runs the prompted read loop. When stdin is a terminal
// the loop supports line editing; either way the prompt is printed
// before every read. EOF ends the session.
func (s *Session) RunInteractive() error {
	s.Log.Record(&logger.SessionStart{Mode: "interactive"})
	defer s.Log.Record(&logger.SessionEnd{})

	if f, ok := s.Stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return s.runReadline()
	}
	return s.runPromptLoop()
}

func (s *Session) runReadline() error {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.Stdin),
		Stdout: s.Stdout,
		Stderr: s.Stderr,
		FuncIsTerminal: func() bool {
			return true
		},
	}
	if err := cfg.Init(); err != nil {
		return err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Ctrl-C clears the line.

		case err != nil:
			return err
		}

		s.RunLine(line)
		if s.exited {
			return nil
		}
	}
}

// runPromptLoop is the interactive loop for non-terminal stdin (piped
// input). The prompt is still printed before every read so piped and
// typed sessions look the same.
func (s *Session) runPromptLoop() error {
	scanner := bufio.NewScanner(s.Stdin)
	scanner.Buffer(make([]byte, 64*1024), MaxLineLen)

	for {
		fmt.Fprint(s.Stdout, s.prompt())
		if !scanner.Scan() {
			return scanner.Err()
		}

		s.RunLine(scanner.Text())
		if s.exited {
			return nil
		}
	}
}
