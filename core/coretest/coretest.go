// Package coretest provides a scripted launcher and a ready-made
// session for testing the execution engine without touching the host
// OS.
package coretest

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"wish/core"
	"wish/core/config"
)

// Journal records calls in the order they happened so tests can assert
// on the relative ordering of launches, waits, chdirs and exits.
type Journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *Journal) Add(format string, a ...interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, fmt.Sprintf(format, a...))
}

// Calls returns a copy of the journal in call order.
func (j *Journal) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

// Result scripts the outcome of one launched command, keyed by argv[0].
type Result struct {
	// Output is written to the command's stdout at launch time.
	Output string
	// Status is the exit status returned from Wait.
	Status int
	// Err, if set, makes the launch itself fail.
	Err error
}

// Launcher is a scripted core.Launcher. Unscripted commands launch
// successfully, produce no output and exit 0.
type Launcher struct {
	Journal *Journal
	Results map[string]Result
}

var _ core.Launcher = (*Launcher)(nil)

func (l *Launcher) Launch(spec core.LaunchSpec) (core.Process, error) {
	l.Journal.Add("launch %s", strings.Join(spec.Argv, " "))

	result := l.Results[spec.Argv[0]]
	if result.Err != nil {
		return nil, result.Err
	}

	if result.Output != "" {
		if _, err := spec.Stdout.Write([]byte(result.Output)); err != nil {
			return nil, err
		}
	}

	return &process{name: spec.Argv[0], status: result.Status, journal: l.Journal}, nil
}

type process struct {
	name    string
	status  int
	journal *Journal
}

func (p *process) Wait() (int, error) {
	p.journal.Add("wait %s", p.name)
	return p.status, nil
}

// Fixture bundles a session wired to fakes.
type Fixture struct {
	Session  *core.Session
	Launcher *Launcher
	Journal  *Journal
	FS       afero.Fs

	Stdout *bytes.Buffer
	Stderr *bytes.Buffer

	// Dir is the directory of the last successful cd.
	Dir string
	// ExitStatuses records every exit call; the session keeps running
	// from the builtin's point of view but the read loops stop.
	ExitStatuses []int
}

// NewFixture builds a session on an in-memory filesystem with a
// scripted launcher, journaling chdir and exit instead of doing them.
func NewFixture() *Fixture {
	fs := afero.NewMemMapFs()

	f := &Fixture{
		Journal: &Journal{},
		FS:      fs,
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}
	f.Launcher = &Launcher{Journal: f.Journal, Results: make(map[string]Result)}

	session := core.NewSession(config.Default(fs))
	session.FS = fs
	session.Stdout = f.Stdout
	session.Stderr = f.Stderr
	session.ChildStdin = strings.NewReader("")
	session.Launcher = f.Launcher
	session.Chdir = func(dir string) error {
		f.Journal.Add("chdir %s", dir)
		f.Dir = dir
		return nil
	}
	session.ExitFunc = func(status int) {
		f.Journal.Add("exit %d", status)
		f.ExitStatuses = append(f.ExitStatuses, status)
	}

	f.Session = session
	return f
}

// WriteExecutable creates an executable file so the resolver can find
// it.
func (f *Fixture) WriteExecutable(path string) error {
	return afero.WriteFile(f.FS, path, []byte("#!/bin/fake\n"), 0755)
}
