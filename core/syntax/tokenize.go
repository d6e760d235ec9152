package syntax

import "strings"

// Tokenize splits a raw line into word and operator tokens.
//
// The first pass splits on whitespace. The second pass re-splits each
// word by each operator character in a fixed order (">" then "&") so
// operators fused to words become standalone tokens:
//
//	a&b&c      => a & b & c
//	echo>file  => echo > file
//	&cmd       => & cmd
//
// Empty pieces around an operator are dropped, so a leading or trailing
// operator still tokenizes cleanly; whether the resulting shape is legal
// is Parse's decision, not Tokenize's.
func Tokenize(line string) []Token {
	var tokens []Token
	for _, field := range strings.Fields(line) {
		tokens = append(tokens, splitOperators(field)...)
	}
	return tokens
}

func splitOperators(field string) []Token {
	tokens := []Token{{Kind: Word, Text: field}}
	for _, op := range []string{redirectText, parallelText} {
		tokens = splitEach(tokens, op)
	}
	return tokens
}

// splitEach re-splits every word token in tokens by the operator op,
// passing operator tokens from earlier rounds through untouched.
func splitEach(tokens []Token, op string) []Token {
	kind, ok := operatorKind(op)
	if !ok {
		panic("syntax: not an operator: " + op)
	}

	var out []Token
	for _, tok := range tokens {
		if tok.Kind != Word || !strings.Contains(tok.Text, op) {
			out = append(out, tok)
			continue
		}

		for i, piece := range strings.Split(tok.Text, op) {
			if i > 0 {
				out = append(out, Token{Kind: kind, Text: op})
			}
			if piece != "" {
				out = append(out, Token{Kind: Word, Text: piece})
			}
		}
	}
	return out
}
