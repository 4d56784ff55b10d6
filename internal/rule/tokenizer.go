package rule

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize scans rule text into a flat token sequence terminated by an EOF
// token. It fails with *LexError on the first unrecognized character or
// malformed literal.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	i := 0

	for i < len(input) {
		for i < len(input) && unicode.IsSpace(rune(input[i])) {
			i++
		}
		if i >= len(input) {
			break
		}

		start := i

		// Multi-character operators before their single-character prefixes.
		if i+1 < len(input) {
			switch input[i : i+2] {
			case ">=", "<=", "!=":
				tokens = append(tokens, Token{Kind: TokenOperator, Text: input[i : i+2], Pos: start})
				i += 2
				continue
			}
		}

		switch c := input[i]; {
		case c == '>' || c == '<' || c == '=':
			tokens = append(tokens, Token{Kind: TokenOperator, Text: string(c), Pos: start})
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLParen, Text: "(", Pos: start})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRParen, Text: ")", Pos: start})
			i++
		case c == ',':
			tokens = append(tokens, Token{Kind: TokenComma, Text: ",", Pos: start})
			i++
		case c == '\'' || c == '"':
			text, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: TokenString, Text: text, Pos: start})
			i = next
		case isNumberStart(input, i):
			text, next, err := scanNumber(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: text, Pos: start})
			i = next
		default:
			// Identifiers may hold any letter, so decode runes here rather
			// than bytes; column headers are not restricted to ASCII.
			r, size := utf8.DecodeRuneInString(input[i:])
			if r != '_' && !unicode.IsLetter(r) {
				return nil, &LexError{Pos: start, Char: r}
			}
			i += size
			for i < len(input) {
				r, size = utf8.DecodeRuneInString(input[i:])
				if !isIdentRune(r) {
					break
				}
				i += size
			}
			word := input[start:i]
			if kw, ok := keywords[strings.ToLower(word)]; ok {
				kw.Pos = start
				tokens = append(tokens, kw)
			} else {
				tokens = append(tokens, Token{Kind: TokenIdent, Text: word, Pos: start})
			}
		}
	}

	tokens = append(tokens, Token{Kind: TokenEOF, Pos: len(input)})
	return tokens, nil
}

// scanString reads a single- or double-quoted literal starting at i. The only
// escape recognized is a backslash followed by the delimiting quote, which
// passes the quote through literally.
func scanString(input string, i int) (string, int, error) {
	quote := input[i]
	i++

	var sb strings.Builder
	for i < len(input) {
		switch {
		case input[i] == '\\' && i+1 < len(input) && input[i+1] == quote:
			sb.WriteByte(quote)
			i += 2
		case input[i] == quote:
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(input[i])
			i++
		}
	}
	return "", 0, &LexError{Pos: len(input), Char: rune(quote), Message: "unterminated string literal"}
}

// scanNumber reads an optionally signed numeric literal with at most one
// decimal point.
func scanNumber(input string, i int) (string, int, error) {
	start := i
	if input[i] == '+' || input[i] == '-' {
		i++
	}

	sawPoint := false
	for i < len(input) {
		switch {
		case isDigit(input[i]):
			i++
		case input[i] == '.':
			if sawPoint {
				return "", 0, &LexError{Pos: i, Char: '.', Message: "malformed number: second decimal point"}
			}
			sawPoint = true
			i++
		default:
			return input[start:i], i, nil
		}
	}
	return input[start:i], i, nil
}

func isNumberStart(input string, i int) bool {
	c := input[i]
	if isDigit(c) {
		return true
	}
	if c == '.' && i+1 < len(input) && isDigit(input[i+1]) {
		return true
	}
	// A sign belongs to a number literal; the language has no arithmetic.
	if (c == '+' || c == '-') && i+1 < len(input) && (isDigit(input[i+1]) || input[i+1] == '.') {
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
