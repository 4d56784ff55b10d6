package rule

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenOperator
	TokenLogical
	TokenLParen
	TokenRParen
	TokenComma
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenOperator:
		return "operator"
	case TokenLogical:
		return "logical operator"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of rule text. Text holds the canonical
// spelling for operator and logical tokens (e.g. "starts_with", "AND")
// regardless of how the source spelled them.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}

// CompareOp is a comparison or string operator usable inside a Comparison.
type CompareOp string

const (
	OpGreater      CompareOp = ">"
	OpLess         CompareOp = "<"
	OpGreaterEqual CompareOp = ">="
	OpLessEqual    CompareOp = "<="
	OpEqual        CompareOp = "="
	OpNotEqual     CompareOp = "!="
	OpContains     CompareOp = "contains"
	OpStartsWith   CompareOp = "starts_with"
	OpEndsWith     CompareOp = "ends_with"
)

// Logical keyword spellings, canonical form.
const (
	kwAnd = "AND"
	kwOr  = "OR"
	kwNot = "NOT"
)

// Surface forms the parser desugars into the four core node kinds.
const (
	kwIn      = "in"
	kwBetween = "between"
)

// keywords maps the lowercase spelling of every keyword operator to its
// canonical token. Identifiers are matched against this table after scanning.
var keywords = map[string]Token{
	"and":         {Kind: TokenLogical, Text: kwAnd},
	"or":          {Kind: TokenLogical, Text: kwOr},
	"not":         {Kind: TokenLogical, Text: kwNot},
	"contains":    {Kind: TokenOperator, Text: string(OpContains)},
	"starts_with": {Kind: TokenOperator, Text: string(OpStartsWith)},
	"startswith":  {Kind: TokenOperator, Text: string(OpStartsWith)},
	"ends_with":   {Kind: TokenOperator, Text: string(OpEndsWith)},
	"endswith":    {Kind: TokenOperator, Text: string(OpEndsWith)},
	"in":          {Kind: TokenOperator, Text: kwIn},
	"between":     {Kind: TokenOperator, Text: kwBetween},
}
