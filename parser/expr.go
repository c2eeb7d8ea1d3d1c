package parser

import "fmt"

// Evaluate resolves expr to an integer, given the current location for `*`.
// Undefined symbols produce an error naming the symbol.
func Evaluate(expr *Expr, location int64, symbols *SymbolTable) (int64, error) {
	if expr == nil {
		return 0, fmt.Errorf("nil expression")
	}
	switch expr.Kind {
	case ExprInt:
		return expr.IntValue, nil
	case ExprStar:
		return location, nil
	case ExprSymbol:
		return symbols.Lookup(expr.Symbol)
	case ExprBinary:
		left, err := Evaluate(expr.Left, location, symbols)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(expr.Right, location, symbols)
		if err != nil {
			return 0, err
		}
		if expr.Op == '-' {
			return left - right, nil
		}
		return left + right, nil
	default:
		return 0, fmt.Errorf("unrecognized expression kind %d", expr.Kind)
	}
}

// ParseExpr parses the restricted expression grammar from a token stream:
// a single operand (int, symbol, or `*`), optionally followed by one `+`
// or `-` and a second operand. No further nesting or precedence exists.
func ParseExpr(toks []Token, pos Position) (*Expr, int, error) {
	if len(toks) == 0 || toks[0].Type == TokenEOF {
		return nil, 0, NewError(pos, ErrorInvalidExpression, "expected expression, found end of input")
	}

	left, consumed, err := parseOperand(toks, pos)
	if err != nil {
		return nil, 0, err
	}
	toks = toks[consumed:]
	total := consumed

	if len(toks) > 0 && (toks[0].Type == TokenPlus || toks[0].Type == TokenMinus) {
		op := byte('+')
		if toks[0].Type == TokenMinus {
			op = '-'
		}
		toks = toks[1:]
		total++

		right, rConsumed, err := parseOperand(toks, pos)
		if err != nil {
			return nil, 0, err
		}
		total += rConsumed

		return &Expr{Kind: ExprBinary, Op: op, Left: left, Right: right}, total, nil
	}

	return left, total, nil
}

func parseOperand(toks []Token, pos Position) (*Expr, int, error) {
	if len(toks) == 0 {
		return nil, 0, NewError(pos, ErrorInvalidExpression, "expected operand, found end of input")
	}

	negate := false
	consumed := 0
	if toks[0].Type == TokenMinus {
		negate = true
		toks = toks[1:]
		consumed++
		if len(toks) == 0 {
			return nil, 0, NewError(pos, ErrorInvalidExpression, "expected operand after unary '-'")
		}
	}

	tok := toks[0]
	switch tok.Type {
	case TokenStar:
		if negate {
			return nil, 0, NewError(pos, ErrorInvalidExpression, "unary '-' is not valid before '*'")
		}
		return &Expr{Kind: ExprStar}, consumed + 1, nil
	case TokenNumber:
		n, err := parseSignedInt(tok.Literal)
		if err != nil {
			return nil, 0, NewError(pos, ErrorInvalidExpression, err.Error())
		}
		if negate {
			n = -n
		}
		return &Expr{Kind: ExprInt, IntValue: n}, consumed + 1, nil
	case TokenIdentifier:
		if negate {
			return nil, 0, NewError(pos, ErrorInvalidExpression, "unary '-' is not valid before a symbol")
		}
		return &Expr{Kind: ExprSymbol, Symbol: tok.Literal}, consumed + 1, nil
	default:
		return nil, 0, NewError(pos, ErrorInvalidExpression, fmt.Sprintf("unexpected token %q in expression", tok.Literal))
	}
}

func parseSignedInt(s string) (int64, error) {
	var n int64
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid integer literal %q", s)
		}
		n = n*10 + int64(ch-'0')
	}
	return n, nil
}
