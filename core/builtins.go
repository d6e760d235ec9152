package core

import (
	"errors"

	"wish/core/logger"
)

// AllBuiltins holds a list of all registered shell builtins.
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Session, args []string) int
}

type ShellBuiltinFunc func(s *Session, args []string) int

func (f ShellBuiltinFunc) Main(s *Session, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Exit quits the shell. It takes no arguments; any argument is a usage
// error and leaves the shell running.
func Exit(s *Session, args []string) int {
	if len(args) > 1 {
		s.invalidInvocation(args, errors.New("expected no arguments"))
		return 1
	}

	s.Log.Record(&logger.BuiltinRun{Command: args})
	s.terminate(0)
	return 0
}

// Cd changes the working directory. It requires exactly one argument.
func Cd(s *Session, args []string) int {
	if len(args) != 2 {
		s.invalidInvocation(args, errors.New("expected exactly one argument"))
		return 1
	}

	if err := s.Chdir(args[1]); err != nil {
		s.invalidInvocation(args, err)
		return 1
	}

	s.Log.Record(&logger.BuiltinRun{Command: args})
	return 0
}

// Path replaces the whole search path with its arguments. With no
// arguments it clears the search path, making every external lookup
// fail until a new one is set.
func Path(s *Session, args []string) int {
	s.SetSearchPath(args[1:])
	s.Log.Record(&logger.BuiltinRun{Command: args})
	return 0
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["path"] = ShellBuiltinFunc(Path)
}

// BuiltinNames returns the names of all registered builtins, unsorted.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	return names
}
