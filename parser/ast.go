package parser

// ExprKind distinguishes the handful of forms the restricted expression
// grammar produces.
type ExprKind int

const (
	ExprInt ExprKind = iota
	ExprSymbol
	ExprStar
	ExprBinary
)

// Expr is an address/value expression: an integer, a symbol reference, the
// current-location symbol `*`, or a single left-associative binary +/- of
// two such operands. No richer precedence or nesting is supported.
type Expr struct {
	Kind     ExprKind
	IntValue int64
	Symbol   string
	Op       byte // '+' or '-', only set when Kind == ExprBinary
	Left     *Expr
	Right    *Expr
}

// AddressOperand is the parsed third field of an instruction line:
// [ADDRESS][,INDEX][(FIELD)].
type AddressOperand struct {
	Expr         *Expr  // nil when Literal is set
	LiteralText  string // raw text inside =...= ; "" when Expr is set
	LiteralExpr  *Expr  // the parsed inner expression of a literal

	HasIndex bool
	Index    int

	HasField     bool
	FieldIsColon bool
	FieldL       int
	FieldR       int
	FieldExpr    *Expr // explicit single-number field, evaluated verbatim
}

// IsLiteral reports whether this operand is a =expr= literal reference.
func (a AddressOperand) IsLiteral() bool {
	return a.LiteralExpr != nil
}

// NodeKind distinguishes instruction lines from pseudo-op lines.
type NodeKind int

const (
	NodeInstruction NodeKind = iota
	NodePseudo
)

// Node is one parsed, non-comment, non-blank MIXAL source line.
type Node struct {
	Kind NodeKind
	Pos  Position

	Label string
	Op    string // mnemonic or pseudo-op keyword, upper-cased

	// Instruction fields.
	Address AddressOperand

	// Pseudo-op fields: ValueExpr for ORIG/EQU/CON/END, AlfText for ALF.
	ValueExpr *Expr
	AlfText   string
}

var pseudoOps = map[string]bool{
	"ORIG": true,
	"EQU":  true,
	"CON":  true,
	"ALF":  true,
	"END":  true,
}

// IsPseudoOp reports whether op names one of the five pseudo-operations.
func IsPseudoOp(op string) bool {
	return pseudoOps[op]
}
