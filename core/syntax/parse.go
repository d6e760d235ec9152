package syntax

import "errors"

// Grammar errors reported by Parse. Any one of them aborts the whole
// line before anything is dispatched.
var (
	// ErrEmptyCommand is returned when a "&" has no command before it.
	ErrEmptyCommand = errors.New("missing command before '&'")
	// ErrRedirectNoCommand is returned when a ">" starts a command.
	ErrRedirectNoCommand = errors.New("missing command before '>'")
	// ErrRedirectNoTarget is returned when a ">" has no file after it.
	ErrRedirectNoTarget = errors.New("missing file after '>'")
	// ErrRedirectExtraArgs is returned when more than one token follows
	// a ">", or a second ">" appears in the same command.
	ErrRedirectExtraArgs = errors.New("expected exactly one file after '>'")
)

// Command is one parsed command: a non-empty argument vector (Argv[0]
// is the program or builtin name) and an optional output redirect
// target. The ">" operator and its target never appear in Argv.
type Command struct {
	Argv           []string
	RedirectTarget string
}

// Redirected reports whether the command's stdout goes to a file.
func (c Command) Redirected() bool {
	return c.RedirectTarget != ""
}

// Batch is the ordered list of commands parsed from one line,
// separated by the parallel operator. An empty batch (blank line) is
// legal and runs nothing.
type Batch []Command

// Parse groups a token stream into a Batch.
//
// A Parallel token closes the current command; a command that is empty
// at that point is a grammar error. The final command is closed at end
// of stream and dropped silently if empty, so a trailing "&" is
// tolerated. Within one command at most one Redirect is permitted, it
// must not be first, and exactly one token must follow it.
func Parse(tokens []Token) (Batch, error) {
	var batch Batch
	var group []Token

	closeGroup := func() error {
		if len(group) == 0 {
			return nil
		}
		cmd, err := parseCommand(group)
		if err != nil {
			return err
		}
		batch = append(batch, cmd)
		group = nil
		return nil
	}

	for _, tok := range tokens {
		if tok.Kind != Parallel {
			group = append(group, tok)
			continue
		}
		if len(group) == 0 {
			return nil, ErrEmptyCommand
		}
		if err := closeGroup(); err != nil {
			return nil, err
		}
	}
	if err := closeGroup(); err != nil {
		return nil, err
	}

	return batch, nil
}

// ParseLine tokenizes and parses a raw line in one step.
func ParseLine(line string) (Batch, error) {
	return Parse(Tokenize(line))
}

func parseCommand(group []Token) (Command, error) {
	var cmd Command
	for i := 0; i < len(group); i++ {
		tok := group[i]
		if tok.Kind != Redirect {
			cmd.Argv = append(cmd.Argv, tok.Text)
			continue
		}

		if len(cmd.Argv) == 0 {
			return Command{}, ErrRedirectNoCommand
		}

		// The redirect must be the second to last token, with only
		// the target file after it.
		rest := group[i+1:]
		switch {
		case len(rest) == 0:
			return Command{}, ErrRedirectNoTarget
		case len(rest) > 1 || rest[0].Kind != Word:
			return Command{}, ErrRedirectExtraArgs
		}

		cmd.RedirectTarget = rest[0].Text
		return cmd, nil
	}
	return cmd, nil
}
