package rule

import (
	"strconv"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// Parse tokenizes and parses rule text into an expression tree. It fails
// with *LexError or *SyntaxError; a tree is never partially constructed and
// exposed.
func Parse(text string) (Expr, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already-tokenized rule. The token slice must be
// terminated by an EOF token, as produced by Tokenize.
func ParseTokens(tokens []Token) (Expr, error) {
	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != TokenEOF {
		return nil, syntaxErr("AND, OR or end of input", p.current())
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() {
	p.pos++
}

// Precedence, loosest first: OR, then AND, then NOT, then comparison.

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == TokenLogical && p.current().Text == kwOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalOr{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == TokenLogical && p.current().Text == kwAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &LogicalAnd{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.current().Kind == TokenLogical && p.current().Text == kwNot {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &LogicalNot{Inner: inner}, nil
	}
	return p.parsePrimary()
}

// parsePrimary handles a parenthesized subexpression or a single comparison.
// Operands are never parenthesized, so '(' always opens a subexpression.
func (p *parser) parsePrimary() (Expr, error) {
	if p.current().Kind == TokenLParen {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.current().Kind != TokenRParen {
			return nil, syntaxErr("')'", p.current())
		}
		p.advance()
		return expr, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	op := p.current()
	if op.Kind != TokenOperator {
		return nil, syntaxErr("comparison operator", op)
	}
	p.advance()

	var expr Expr
	switch op.Text {
	case kwIn:
		expr, err = p.parseInList(left)
	case kwBetween:
		expr, err = p.parseBetween(left)
	default:
		var right Operand
		right, err = p.parseOperand()
		if err == nil {
			expr = &Comparison{Left: left, Op: CompareOp(op.Text), Right: right}
		}
	}
	if err != nil {
		return nil, err
	}

	// A>B>C is a syntax error, never decomposed into (A>B) AND (B>C).
	if p.current().Kind == TokenOperator {
		return nil, syntaxErr("AND, OR or end of expression (chained comparisons are not allowed)", p.current())
	}
	return expr, nil
}

// parseInList desugars `x in (a, b, c)` into x=a OR x=b OR x=c.
func (p *parser) parseInList(left Operand) (Expr, error) {
	if p.current().Kind != TokenLParen {
		return nil, syntaxErr("'(' after in", p.current())
	}
	p.advance()

	var expr Expr
	for {
		item, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		cmp := &Comparison{Left: left, Op: OpEqual, Right: item}
		if expr == nil {
			expr = cmp
		} else {
			expr = &LogicalOr{Left: expr, Right: cmp}
		}

		switch p.current().Kind {
		case TokenComma:
			p.advance()
		case TokenRParen:
			p.advance()
			return expr, nil
		default:
			return nil, syntaxErr("',' or ')'", p.current())
		}
	}
}

// parseBetween desugars `x between lo AND hi` into x>=lo AND x<=hi. The
// bounds are inclusive.
func (p *parser) parseBetween(left Operand) (Expr, error) {
	lo, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != TokenLogical || p.current().Text != kwAnd {
		return nil, syntaxErr("AND between range bounds", p.current())
	}
	p.advance()
	hi, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &LogicalAnd{
		Left:  &Comparison{Left: left, Op: OpGreaterEqual, Right: lo},
		Right: &Comparison{Left: left, Op: OpLessEqual, Right: hi},
	}, nil
}

// parseOperand classifies by syntax alone: a quoted token or numeric token is
// a literal, any other identifier is a column reference. The decision is
// never revisited; an unknown column surfaces at evaluation time, not here.
func (p *parser) parseOperand() (Operand, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenNumber:
		val, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, syntaxErr("numeric literal", tok)
		}
		p.advance()
		return &Literal{Value: table.Number(val)}, nil
	case TokenString:
		p.advance()
		return &Literal{Value: table.String(tok.Text)}, nil
	case TokenIdent:
		p.advance()
		return &ColumnRef{Name: tok.Text}, nil
	default:
		return nil, syntaxErr("operand (literal or column name)", tok)
	}
}
