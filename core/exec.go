package core

import (
	"errors"
	"io"
	"os/exec"
)

// LaunchSpec describes one external command to start: the resolved
// executable path, the full argument vector (Argv[0] is the program
// name as typed), and the streams the child should use. Stdout already
// points at the redirect target when one was given.
type LaunchSpec struct {
	Path   string
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a handle to a launched command. Wait blocks until the
// process terminates and returns its exit status.
type Process interface {
	Wait() (int, error)
}

// Launcher starts external processes. The production implementation is
// OSLauncher; tests substitute a scripted fake so the engine can be
// exercised without touching the host OS.
type Launcher interface {
	Launch(spec LaunchSpec) (Process, error)
}

// OSLauncher launches real processes on the host.
type OSLauncher struct{}

var _ Launcher = OSLauncher{}

func (OSLauncher) Launch(spec LaunchSpec) (Process, error) {
	cmd := &exec.Cmd{
		Path:   spec.Path,
		Args:   spec.Argv,
		Stdin:  spec.Stdin,
		Stdout: spec.Stdout,
		Stderr: spec.Stderr,
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osProcess{cmd: cmd}, nil
}

type osProcess struct {
	cmd *exec.Cmd
}

func (p *osProcess) Wait() (int, error) {
	err := p.cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		// A non-zero status is a normal outcome, not a wait failure.
		return exitErr.ExitCode(), nil
	default:
		return -1, err
	}
}
