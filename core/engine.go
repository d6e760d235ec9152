package core

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"wish/core/logger"
	"wish/core/syntax"
)

// RunLine parses and executes one input line. A grammar error aborts
// the whole line before anything is dispatched.
func (s *Session) RunLine(line string) {
	if len(line) > MaxLineLen {
		s.Log.Record(&logger.ParseError{Line: line[:80], Error: "line too long"})
		s.reportError()
		return
	}

	batch, err := syntax.ParseLine(line)
	if err != nil {
		s.Log.Record(&logger.ParseError{Line: line, Error: err.Error()})
		s.reportError()
		return
	}

	s.RunBatch(batch)
}

// RunBatch dispatches every command of the batch in order, builtins
// inline and externals launched without waiting, then blocks until
// every launched process has terminated.
//
// Because builtins run strictly before later siblings are dispatched, a
// cd or path earlier in a batch affects later launches in the same
// batch but never processes already launched.
func (s *Session) RunBatch(batch syntax.Batch) {
	var procs []*launchedProcess

	for _, cmd := range batch {
		if builtin, ok := AllBuiltins[cmd.Argv[0]]; ok {
			builtin.Main(s, cmd.Argv)
			if s.exited {
				// exit abandons already-launched siblings without
				// waiting on them.
				return
			}
			continue
		}

		if proc := s.launch(cmd); proc != nil {
			procs = append(procs, proc)
		}
	}

	for _, proc := range procs {
		proc.wait(s)
	}
}

// launch starts one external command. Every failure here is isolated to
// this command: it is reported once and the siblings run regardless.
func (s *Session) launch(cmd syntax.Command) *launchedProcess {
	stdout := io.Writer(s.Stdout)
	var redirect afero.File

	// The redirect target is opened, and truncated, before the program
	// search begins, so even a command that fails to resolve truncates
	// its target.
	if cmd.Redirected() {
		fd, err := s.FS.OpenFile(cmd.RedirectTarget, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			s.Log.Record(&logger.LaunchError{Command: cmd.Argv, Error: err.Error()})
			s.reportError()
			return nil
		}
		redirect = fd
		stdout = fd
	}

	path, err := s.Resolve(cmd.Argv[0])
	if err != nil {
		s.Log.Record(&logger.UnknownCommand{Command: cmd.Argv})
		s.reportError()
		closeRedirect(redirect)
		return nil
	}

	proc, err := s.Launcher.Launch(LaunchSpec{
		Path:   path,
		Argv:   cmd.Argv,
		Stdin:  s.ChildStdin,
		Stdout: stdout,
		Stderr: s.Stderr,
	})
	if err != nil {
		s.Log.Record(&logger.LaunchError{Command: cmd.Argv, Error: err.Error()})
		s.reportError()
		closeRedirect(redirect)
		return nil
	}

	s.Log.Record(&logger.ExecStart{
		Command:        cmd.Argv,
		ResolvedPath:   path,
		RedirectTarget: cmd.RedirectTarget,
	})

	return &launchedProcess{proc: proc, argv: cmd.Argv, redirect: redirect}
}

type launchedProcess struct {
	proc     Process
	argv     []string
	redirect afero.File
}

func (p *launchedProcess) wait(s *Session) {
	status, err := p.proc.Wait()

	exit := &logger.ExecExit{Command: p.argv, Status: status}
	if err != nil {
		exit.Error = err.Error()
	}
	s.Log.Record(exit)

	closeRedirect(p.redirect)
}

func closeRedirect(fd afero.File) {
	if fd != nil {
		fd.Close()
	}
}
