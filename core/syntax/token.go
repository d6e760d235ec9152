// Package syntax turns raw command lines into executable batches.
//
// Parsing happens in two stages. Tokenize splits a line into words and
// operators, emitting operators as standalone tokens even when they're
// fused to neighboring words (`a&b`, `echo>file`). Parse groups the
// token stream into commands separated by the parallel operator and
// extracts redirect targets.
package syntax

// TokenKind classifies a token produced by Tokenize.
type TokenKind int

const (
	// Word is a program name, argument, or redirect target.
	Word TokenKind = iota
	// Redirect is the output redirection operator ">".
	Redirect
	// Parallel is the command separator "&".
	Parallel
)

var tokenKindNames = [...]string{
	Word:     "word",
	Redirect: "redirect",
	Parallel: "parallel",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "invalid"
}

// Token is one lexical element of a command line. Tokens own their text;
// they never alias the line they were parsed from.
type Token struct {
	Kind TokenKind
	Text string
}

const (
	redirectText = ">"
	parallelText = "&"
)

func operatorKind(text string) (TokenKind, bool) {
	switch text {
	case redirectText:
		return Redirect, true
	case parallelText:
		return Parallel, true
	default:
		return Word, false
	}
}
