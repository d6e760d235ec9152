package logger

// LogEntry is one logged event. Exactly one of the event fields is set;
// entries are stored as newline delimited JSON objects.
type LogEntry struct {
	// Microseconds since the UNIX epoch when the event happened.
	TimestampMicros int64 `json:"timestamp_micros"`
	// Random identifier shared by all events of one shell session.
	SessionID string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	ParseError        *ParseError        `json:"parse_error,omitempty"`
	BuiltinRun        *BuiltinRun        `json:"builtin_run,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	ExecStart         *ExecStart         `json:"exec_start,omitempty"`
	ExecExit          *ExecExit          `json:"exec_exit,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	LaunchError       *LaunchError       `json:"launch_error,omitempty"`
}

// LogType is implemented by every event that can be attached to a
// LogEntry.
type LogType interface {
	attach(le *LogEntry)
}

// logType returns the event set on the entry, or nil for entries whose
// event kind this version doesn't know about.
func (le *LogEntry) logType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.ParseError != nil:
		return le.ParseError
	case le.BuiltinRun != nil:
		return le.BuiltinRun
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.ExecStart != nil:
		return le.ExecStart
	case le.ExecExit != nil:
		return le.ExecExit
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.LaunchError != nil:
		return le.LaunchError
	default:
		return nil
	}
}

// SessionStart marks the beginning of a shell session.
type SessionStart struct {
	// Mode is "interactive" or "script".
	Mode string `json:"mode"`
	// ScriptPath is the script being run, empty in interactive mode.
	ScriptPath string `json:"script_path,omitempty"`
}

func (e *SessionStart) attach(le *LogEntry) { le.SessionStart = e }

// SessionEnd marks the end of a shell session.
type SessionEnd struct{}

func (e *SessionEnd) attach(le *LogEntry) { le.SessionEnd = e }

// ParseError records a line the grammar rejected.
type ParseError struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

func (e *ParseError) attach(le *LogEntry) { le.ParseError = e }

// BuiltinRun records a successful builtin invocation.
type BuiltinRun struct {
	Command []string `json:"command"`
}

func (e *BuiltinRun) attach(le *LogEntry) { le.BuiltinRun = e }

// InvalidInvocation records a builtin called with bad arguments.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) attach(le *LogEntry) { le.InvalidInvocation = e }

// ExecStart records an external command being launched.
type ExecStart struct {
	Command        []string `json:"command"`
	ResolvedPath   string   `json:"resolved_path"`
	RedirectTarget string   `json:"redirect_target,omitempty"`
}

func (e *ExecStart) attach(le *LogEntry) { le.ExecStart = e }

// ExecExit records a launched command terminating.
type ExecExit struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
	// Error is set when waiting on the process itself failed.
	Error string `json:"error,omitempty"`
}

func (e *ExecExit) attach(le *LogEntry) { le.ExecExit = e }

// UnknownCommand records a command name that failed resolution against
// the search path.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }

// LaunchError records a command that resolved but could not be started,
// or a redirect target that could not be opened.
type LaunchError struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *LaunchError) attach(le *LogEntry) { le.LaunchError = e }
