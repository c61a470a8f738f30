package regex

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/relex/internal/automaton"
)

// ErrInvalidExpression is wrapped by every error caused by a pattern that
// cannot be parsed into a complete syntax tree.
var ErrInvalidExpression = errors.New("invalid expression")

// Parse parses pattern over alphabet into a syntax tree.
//
// Parsing is an operator-precedence (shunting-yard) pass over the token
// stream with implicit concatenation made explicit. Precedence from low to
// high is union, concatenation, star.
func Parse(pattern string, alphabet *automaton.Alphabet) (Node, error) {
	if err := ValidateAlphabet(alphabet); err != nil {
		return nil, err
	}
	tokens, err := tokenize(pattern, alphabet)
	if err != nil {
		return nil, err
	}
	return parseTokens(insertConcat(tokens))
}

type parser struct {
	operators []token
	operands  []Node
}

func (p *parser) popOperator() token {
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]
	return top
}

func (p *parser) popOperand() Node {
	top := p.operands[len(p.operands)-1]
	p.operands = p.operands[:len(p.operands)-1]
	return top
}

// reduce applies op to the operands on top of the stack. The first operand
// popped is the rightmost child.
func (p *parser) reduce(op token) error {
	if len(p.operands) < op.kind.arity() {
		return fmt.Errorf("%w: %s at offset %d is missing an operand", ErrInvalidExpression, op.kind, op.pos)
	}
	switch op.kind {
	case tokStar:
		p.operands = append(p.operands, Star{Sub: p.popOperand()})
	case tokUnion:
		right := p.popOperand()
		left := p.popOperand()
		p.operands = append(p.operands, Union{Left: left, Right: right})
	case tokConcat:
		right := p.popOperand()
		left := p.popOperand()
		p.operands = append(p.operands, Concat{Left: left, Right: right})
	default:
		return fmt.Errorf("%w: unexpected %s at offset %d", ErrInvalidExpression, op.kind, op.pos)
	}
	return nil
}

func parseTokens(tokens []token) (Node, error) {
	p := &parser{}

	for i, tok := range tokens {
		switch tok.kind {
		case tokSymbol:
			p.operands = append(p.operands, Symbol{Value: tok.sym})
		case tokEpsilon:
			p.operands = append(p.operands, Epsilon{})
		case tokEmpty:
			p.operands = append(p.operands, Empty{})
		case tokLParen:
			p.operators = append(p.operators, tok)
		case tokRParen:
			for {
				if len(p.operators) == 0 {
					return nil, fmt.Errorf("%w: unmatched ')' at offset %d", ErrInvalidExpression, tok.pos)
				}
				top := p.popOperator()
				if top.kind == tokLParen {
					break
				}
				if err := p.reduce(top); err != nil {
					return nil, err
				}
			}
		default:
			// A star only applies to something that has just ended.
			if tok.kind == tokStar && (i == 0 || !tokens[i-1].kind.endsOperand()) {
				return nil, fmt.Errorf("%w: * at offset %d is missing an operand", ErrInvalidExpression, tok.pos)
			}
			for len(p.operators) > 0 {
				top := p.operators[len(p.operators)-1]
				if top.kind == tokLParen || top.kind.precedence() < tok.kind.precedence() {
					break
				}
				p.popOperator()
				if err := p.reduce(top); err != nil {
					return nil, err
				}
			}
			p.operators = append(p.operators, tok)
		}
	}

	for len(p.operators) > 0 {
		top := p.popOperator()
		if top.kind == tokLParen {
			return nil, fmt.Errorf("%w: unmatched '(' at offset %d", ErrInvalidExpression, top.pos)
		}
		if err := p.reduce(top); err != nil {
			return nil, err
		}
	}

	switch len(p.operands) {
	case 0:
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	case 1:
		return p.operands[0], nil
	default:
		return nil, fmt.Errorf("%w: %d operands left without an operator", ErrInvalidExpression, len(p.operands))
	}
}
