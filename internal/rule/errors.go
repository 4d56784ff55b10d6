package rule

import "fmt"

// LexError reports an unrecognized or malformed character sequence in rule
// text. Pos is a zero-based byte offset into the source.
type LexError struct {
	Pos     int
	Char    rune
	Message string
}

func (e *LexError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lex error at position %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("lex error at position %d: unexpected character %q", e.Pos, e.Char)
}

// SyntaxError reports a malformed token sequence: unbalanced parentheses,
// a missing operand, a chained comparison, or a trailing operator.
type SyntaxError struct {
	Pos      int
	Expected string
	Found    Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

func syntaxErr(expected string, found Token) *SyntaxError {
	return &SyntaxError{Pos: found.Pos, Expected: expected, Found: found}
}
