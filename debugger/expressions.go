package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knuth-mix/mix-emulator/parser"
	"github.com/knuth-mix/mix-emulator/vm"
)

// ExpressionEvaluator evaluates the small expression language accepted by
// debugger commands (breakpoint conditions, print/x arguments). Arithmetic
// is any number of operands joined by + or -, evaluated left to right; an
// operand is a number, a symbol, a register name, an [addr] memory
// dereference, or a $n reference into this evaluator's own value history.
type ExpressionEvaluator struct {
	valueHistory []int64
}

// NewExpressionEvaluator creates an ExpressionEvaluator with empty history.
func NewExpressionEvaluator() *ExpressionEvaluator {
	return &ExpressionEvaluator{}
}

// EvaluateExpression evaluates expr and records the result in the value
// history (so a later expression can refer to it as $N).
func (e *ExpressionEvaluator) EvaluateExpression(expr string, machine *vm.Machine, symbols *parser.SymbolTable) (int64, error) {
	result, err := e.evaluate(expr, machine, symbols)
	if err != nil {
		return 0, err
	}
	e.valueHistory = append(e.valueHistory, result)
	return result, nil
}

// Evaluate evaluates expr as a boolean condition: nonzero is true.
func (e *ExpressionEvaluator) Evaluate(expr string, machine *vm.Machine, symbols *parser.SymbolTable) (bool, error) {
	result, err := e.evaluate(expr, machine, symbols)
	if err != nil {
		return false, err
	}
	return result != 0, nil
}

// GetValueNumber returns how many values have been recorded so far.
func (e *ExpressionEvaluator) GetValueNumber() int {
	return len(e.valueHistory)
}

// GetValue returns the n'th recorded value (1-indexed, as in $1, $2, ...).
func (e *ExpressionEvaluator) GetValue(n int) (int64, error) {
	if n < 1 || n > len(e.valueHistory) {
		return 0, fmt.Errorf("value $%d not in history", n)
	}
	return e.valueHistory[n-1], nil
}

func (e *ExpressionEvaluator) evaluate(expr string, machine *vm.Machine, symbols *parser.SymbolTable) (int64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("empty expression")
	}

	if idx := topLevelOperator(expr, '+'); idx > 0 {
		return e.evalBinary(expr, idx, '+', machine, symbols)
	}
	if idx := topLevelOperator(expr, '-'); idx > 0 {
		return e.evalBinary(expr, idx, '-', machine, symbols)
	}

	return e.evalAtom(expr, machine, symbols)
}

func (e *ExpressionEvaluator) evalBinary(expr string, idx int, op byte, machine *vm.Machine, symbols *parser.SymbolTable) (int64, error) {
	left := strings.TrimSpace(expr[:idx])
	right := strings.TrimSpace(expr[idx+1:])
	if left == "" || right == "" {
		return e.evalAtom(expr, machine, symbols)
	}

	lv, err := e.evaluate(left, machine, symbols)
	if err != nil {
		return 0, err
	}
	rv, err := e.evaluate(right, machine, symbols)
	if err != nil {
		return 0, err
	}
	if op == '+' {
		return lv + rv, nil
	}
	return lv - rv, nil
}

// topLevelOperator finds the rightmost occurrence of op, ignoring position
// 0 (a leading sign, not a binary operator) and anything inside brackets.
func topLevelOperator(expr string, op byte) int {
	depth := 0
	found := -1
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '[':
			depth++
		case ']':
			depth--
		case op:
			if depth == 0 && i > 0 {
				found = i
			}
		}
	}
	return found
}

func (e *ExpressionEvaluator) evalAtom(expr string, machine *vm.Machine, symbols *parser.SymbolTable) (int64, error) {
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		inner := strings.TrimSpace(expr[1 : len(expr)-1])
		addr, err := e.evaluate(inner, machine, symbols)
		if err != nil {
			return 0, err
		}
		word, err := machine.Memory.Read(int(addr))
		if err != nil {
			return 0, fmt.Errorf("reading memory at %d: %w", addr, err)
		}
		return word.ToInt(), nil
	}

	if strings.HasPrefix(expr, "$") {
		n, err := strconv.Atoi(expr[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid value reference: %s", expr)
		}
		return e.GetValue(n)
	}

	if v, ok := tryRegister(expr, machine); ok {
		return v, nil
	}

	upper := strings.ToUpper(expr)
	if symbols != nil && symbols.Defined(upper) {
		return symbols.Lookup(upper)
	}

	if v, err := strconv.ParseInt(expr, 10, 64); err == nil {
		return v, nil
	}

	return 0, fmt.Errorf("unknown identifier: %s", expr)
}

func tryRegister(expr string, machine *vm.Machine) (int64, bool) {
	switch strings.ToUpper(expr) {
	case "A", "RA":
		return machine.CPU.A.ToInt(), true
	case "X", "RX":
		return machine.CPU.X.ToInt(), true
	case "J", "RJ":
		return int64(machine.CPU.JValue()), true
	case "PC":
		return int64(machine.CPU.PC), true
	}
	upper := strings.ToUpper(expr)
	if len(upper) == 2 && upper[0] == 'I' && upper[1] >= '1' && upper[1] <= '6' {
		return machine.CPU.IndexValue(int(upper[1] - '0')), true
	}
	return 0, false
}

// Reset clears the value history.
func (e *ExpressionEvaluator) Reset() {
	e.valueHistory = e.valueHistory[:0]
}
