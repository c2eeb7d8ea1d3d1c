package parser

import (
	"fmt"
	"strings"
)

// Parser converts Lexer output into a flat list of Nodes, one per
// non-comment, non-blank source line.
type Parser struct {
	filename string
	errors   *ErrorList
}

// NewParser returns a Parser for the given source filename (used in error
// positions only).
func NewParser(filename string) *Parser {
	return &Parser{filename: filename, errors: &ErrorList{}}
}

// Errors returns accumulated parse diagnostics.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

// Parse tokenizes and parses source into a Node list, continuing past
// individual line errors so a single assemble call can report every
// problem in the source at once.
func (p *Parser) Parse(source string) []Node {
	lexer := NewLexer(source, p.filename)
	var nodes []Node

	for _, line := range lexer.Lines() {
		if line.IsComment {
			continue
		}
		if line.Op == "" {
			if line.Label != "" {
				p.errors.AddError(NewError(line.Pos, ErrorSyntax, "label with no operation: "+line.Label))
			}
			continue
		}

		op := strings.ToUpper(line.Op)
		node, err := p.parseLine(line, op)
		if err != nil {
			p.errors.AddError(err.(*Error))
			continue
		}
		nodes = append(nodes, node)
	}

	return nodes
}

func (p *Parser) parseLine(line Line, op string) (Node, error) {
	node := Node{Pos: line.Pos, Label: line.Label, Op: op}

	if IsPseudoOp(op) {
		node.Kind = NodePseudo
		switch op {
		case "ALF":
			node.AlfText = parseAlfText(line.Operand)
			return node, nil
		case "ORIG", "EQU", "CON", "END":
			if line.Operand == "" {
				if op == "END" {
					return node, nil
				}
				return Node{}, NewError(line.Pos, ErrorInvalidOperand, op+" requires a value expression")
			}
			toks, err := TokenizeExpression(line.Operand, line.Pos)
			if err != nil {
				return Node{}, err
			}
			expr, consumed, err := ParseExpr(toks, line.Pos)
			if err != nil {
				return Node{}, err
			}
			if err := checkFullyConsumed(toks, consumed, line.Pos); err != nil {
				return Node{}, err
			}
			node.ValueExpr = expr
			return node, nil
		}
	}

	node.Kind = NodeInstruction
	addr, err := parseAddressOperand(line.Operand, line.Pos)
	if err != nil {
		return Node{}, err
	}
	node.Address = addr
	return node, nil
}

// checkFullyConsumed reports an ErrorInvalidExpression if ParseExpr stopped
// short of TokenEOF, catching the restricted grammar's two-operand limit
// being exceeded (e.g. "1+2+3") rather than silently dropping the rest.
func checkFullyConsumed(toks []Token, consumed int, pos Position) error {
	if toks[consumed].Type != TokenEOF {
		return NewError(pos, ErrorInvalidExpression, fmt.Sprintf("unexpected token %q after expression", toks[consumed].Literal))
	}
	return nil
}

// parseAlfText extracts ALF's raw 1..5-character operand, right-padding
// with spaces; leading whitespace before the text is already stripped by
// field splitting.
func parseAlfText(operand string) string {
	if len(operand) > 5 {
		operand = operand[:5]
	}
	for len(operand) < 5 {
		operand += " "
	}
	return operand
}

// parseAddressOperand splits an instruction's operand field into
// [ADDRESS][,INDEX][(FIELD)] and parses each present part.
func parseAddressOperand(operand string, pos Position) (AddressOperand, error) {
	var result AddressOperand
	if operand == "" {
		return result, nil
	}

	addrPart := operand
	var fieldPart string
	if lp := strings.IndexByte(operand, '('); lp >= 0 {
		rp := strings.IndexByte(operand, ')')
		if rp < lp {
			return result, NewError(pos, ErrorSyntax, "unbalanced parentheses in field specification")
		}
		fieldPart = operand[lp+1 : rp]
		addrPart = operand[:lp] + operand[rp+1:]
		result.HasField = true
	}

	var indexPart string
	if cp := strings.IndexByte(addrPart, ','); cp >= 0 {
		indexPart = addrPart[cp+1:]
		addrPart = addrPart[:cp]
		result.HasIndex = true
	}

	if addrPart != "" {
		if strings.HasPrefix(addrPart, "=") && strings.HasSuffix(addrPart, "=") && len(addrPart) >= 2 {
			inner := addrPart[1 : len(addrPart)-1]
			toks, err := TokenizeExpression(inner, pos)
			if err != nil {
				return result, err
			}
			expr, consumed, err := ParseExpr(toks, pos)
			if err != nil {
				return result, err
			}
			if err := checkFullyConsumed(toks, consumed, pos); err != nil {
				return result, err
			}
			result.LiteralText = inner
			result.LiteralExpr = expr
		} else {
			toks, err := TokenizeExpression(addrPart, pos)
			if err != nil {
				return result, err
			}
			expr, consumed, err := ParseExpr(toks, pos)
			if err != nil {
				return result, err
			}
			if err := checkFullyConsumed(toks, consumed, pos); err != nil {
				return result, err
			}
			result.Expr = expr
		}
	}

	if result.HasIndex {
		n, err := parseSignedInt(indexPart)
		if err != nil {
			return result, NewError(pos, ErrorInvalidOperand, "invalid index register "+indexPart)
		}
		result.Index = int(n)
	}

	if result.HasField {
		if colon := strings.IndexByte(fieldPart, ':'); colon >= 0 {
			l, err := parseSignedInt(fieldPart[:colon])
			if err != nil {
				return result, NewError(pos, ErrorInvalidOperand, "invalid field "+fieldPart)
			}
			r, err := parseSignedInt(fieldPart[colon+1:])
			if err != nil {
				return result, NewError(pos, ErrorInvalidOperand, "invalid field "+fieldPart)
			}
			result.FieldIsColon = true
			result.FieldL = int(l)
			result.FieldR = int(r)
		} else {
			toks, err := TokenizeExpression(fieldPart, pos)
			if err != nil {
				return result, err
			}
			expr, consumed, err := ParseExpr(toks, pos)
			if err != nil {
				return result, err
			}
			if err := checkFullyConsumed(toks, consumed, pos); err != nil {
				return result, err
			}
			result.FieldExpr = expr
		}
	}

	return result, nil
}
