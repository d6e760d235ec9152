package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

func NewBugReport() *BugReport {
	return &BugReport{
		InvalidInvocations: NewPathCounter("command", "error"),
		LaunchErrors:       NewPathCounter("command", "error"),
	}
}

// BugReport pulls events that indicate misbehaving input or a
// misconfigured search path.
type BugReport struct {
	LogEntries int

	InvalidInvocations *PathCounter `json:"invalid_invocations"`
	LaunchErrors       *PathCounter `json:"launch_errors"`
}

func (r *BugReport) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.logType().(type) {
	case *InvalidInvocation:
		r.InvalidInvocations.Increment(event.Command[0], event.Error)
	case *LaunchError:
		r.LaunchErrors.Increment(event.Command[0], event.Error)
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Session           SessionReport           `json:"session_report"`
	ParseError        ParseErrorReport        `json:"parse_error_report"`
	Builtin           BuiltinReport           `json:"builtin_report"`
	Exec              ExecReport              `json:"exec_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	LaunchError       LaunchErrorReport       `json:"launch_error_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.logType().(type) {
	case *SessionStart:
		r.Session.update(event)
	case *ParseError:
		r.ParseError.update(event)
	case *BuiltinRun:
		r.Builtin.update(event)
	case *ExecStart:
		r.Exec.updateStart(event)
	case *ExecExit:
		r.Exec.updateExit(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *LaunchError:
		r.LaunchError.update(event)
	case *SessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionReport struct {
	// Number of sessions started.
	Count int `json:"count"`
	// List of session modes and their counts.
	Modes StrCounter `json:"modes"`
}

func (r *SessionReport) update(ss *SessionStart) {
	r.Count++
	r.Modes.Increment(ss.Mode)
}

type ParseErrorReport struct {
	Count  int        `json:"count"`
	Errors StrCounter `json:"errors"`
}

func (r *ParseErrorReport) update(pe *ParseError) {
	r.Count++
	r.Errors.Increment(pe.Error)
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(br *BuiltinRun) {
	if len(br.Command) > 0 {
		r.CommandNames.Increment(br.Command[0])
	}
}

type ExecReport struct {
	// Name of the command as typed.
	CommandNames StrCounter `json:"command_names"`
	// Path of the resolved executable.
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Exit statuses seen, as strings.
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *ExecReport) updateStart(es *ExecStart) {
	r.ResolvedCommandPaths.Increment(es.ResolvedPath)
	if len(es.Command) > 0 {
		r.CommandNames.Increment(es.Command[0])
	}
}

func (r *ExecReport) updateExit(ee *ExecExit) {
	r.ExitStatuses.Increment(fmt.Sprintf("%d", ee.Status))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type LaunchErrorReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *LaunchErrorReport) update(logEntry *LaunchError) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of string tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
