package assembler

import (
	"fmt"

	"github.com/knuth-mix/mix-emulator/parser"
	"github.com/knuth-mix/mix-emulator/vm"
)

// Program is the result of a successful assembly: the populated memory
// image, the resolved start address, and the final symbol table (kept for
// -dump-symbols and the debugger's symbol lookups).
type Program struct {
	Image        map[int]vm.Word
	StartAddress int
	Symbols      *parser.SymbolTable
	LiteralAddrs map[string]int
}

type emissionKind int

const (
	emitInstruction emissionKind = iota
	emitCon
	emitAlf
	emitLiteral
)

type emission struct {
	kind     emissionKind
	node     parser.Node
	literal  *parser.Expr
	location int
}

// Assembler runs the two-pass translation: pass 1 resolves the location
// counter, symbol table, and literal pool; pass 2 emits Words into the
// memory image.
type Assembler struct {
	filename string
}

// NewAssembler returns an Assembler that attributes errors to filename.
func NewAssembler(filename string) *Assembler {
	return &Assembler{filename: filename}
}

// Assemble parses and assembles source, returning the populated Program or
// the accumulated parser.ErrorList if any stage failed.
func (a *Assembler) Assemble(source string) (*Program, error) {
	p := parser.NewParser(a.filename)
	nodes := p.Parse(source)
	if p.Errors().HasErrors() {
		return nil, p.Errors()
	}

	symbols := parser.NewSymbolTable()
	errs := &parser.ErrorList{}

	emissions, literalOrder, endExpr, endPos := a.pass1(nodes, symbols, errs)
	if errs.HasErrors() {
		return nil, errs
	}

	literalAddrs := make(map[string]int, len(literalOrder))
	loc := nextLocation(emissions)
	for _, text := range literalOrder {
		literalAddrs[text] = loc
		loc++
	}
	for _, text := range literalOrder {
		emissions = append(emissions, emission{
			kind:     emitLiteral,
			literal:  literalExprFor(nodes, text),
			location: literalAddrs[text],
		})
	}

	image := make(map[int]vm.Word, len(emissions))
	a.pass2(emissions, literalAddrs, symbols, image, errs)
	if errs.HasErrors() {
		return nil, errs
	}

	startAddr := 0
	if endExpr != nil {
		v, err := parser.Evaluate(endExpr, 0, symbols)
		if err != nil {
			errs.AddError(parser.NewError(endPos, parser.ErrorInvalidExpression, err.Error()))
			return nil, errs
		}
		startAddr = int(v)
	}

	return &Program{
		Image:        image,
		StartAddress: startAddr,
		Symbols:      symbols,
		LiteralAddrs: literalAddrs,
	}, nil
}

func nextLocation(emissions []emission) int {
	max := -1
	for _, e := range emissions {
		if e.location > max {
			max = e.location
		}
	}
	return max + 1
}

// literalExprFor finds the first node whose address operand carries the
// given literal text, returning its parsed inner expression.
func literalExprFor(nodes []parser.Node, text string) *parser.Expr {
	for _, n := range nodes {
		if n.Kind == parser.NodeInstruction && n.Address.IsLiteral() && n.Address.LiteralText == text {
			return n.Address.LiteralExpr
		}
	}
	return nil
}

// pass1 walks the node list in order, building the symbol table, the
// emission list in source order, and the insertion-ordered list of
// distinct literal texts encountered.
func (a *Assembler) pass1(nodes []parser.Node, symbols *parser.SymbolTable, errs *parser.ErrorList) ([]emission, []string, *parser.Expr, parser.Position) {
	var emissions []emission
	var literalOrder []string
	seenLiteral := make(map[string]bool)
	var endExpr *parser.Expr
	var endPos parser.Position

	loc := int64(0)
	for _, node := range nodes {
		switch {
		case node.Kind == parser.NodePseudo && node.Op == "ORIG":
			v, err := parser.Evaluate(node.ValueExpr, loc, symbols)
			if err != nil {
				errs.AddError(parser.NewError(node.Pos, parser.ErrorInvalidExpression, err.Error()))
				continue
			}
			loc = v

		case node.Kind == parser.NodePseudo && node.Op == "EQU":
			if node.Label == "" {
				errs.AddError(parser.NewError(node.Pos, parser.ErrorSyntax, "EQU requires a label"))
				continue
			}
			v, err := parser.Evaluate(node.ValueExpr, loc, symbols)
			if err != nil {
				errs.AddError(parser.NewError(node.Pos, parser.ErrorInvalidExpression, err.Error()))
				continue
			}
			if err := symbols.Define(node.Label, v); err != nil {
				errs.AddError(parser.NewError(node.Pos, parser.ErrorDuplicateSymbol, err.Error()))
				continue
			}

		case node.Kind == parser.NodePseudo && (node.Op == "CON" || node.Op == "ALF"):
			if node.Label != "" {
				if err := symbols.Define(node.Label, loc); err != nil {
					errs.AddError(parser.NewError(node.Pos, parser.ErrorDuplicateSymbol, err.Error()))
					continue
				}
			}
			kind := emitCon
			if node.Op == "ALF" {
				kind = emitAlf
			}
			emissions = append(emissions, emission{kind: kind, node: node, location: int(loc)})
			loc++

		case node.Kind == parser.NodePseudo && node.Op == "END":
			if node.ValueExpr != nil {
				endExpr = node.ValueExpr
				endPos = node.Pos
			}

		case node.Kind == parser.NodeInstruction:
			if node.Label != "" {
				if err := symbols.Define(node.Label, loc); err != nil {
					errs.AddError(parser.NewError(node.Pos, parser.ErrorDuplicateSymbol, err.Error()))
					continue
				}
			}
			if node.Address.IsLiteral() {
				if !seenLiteral[node.Address.LiteralText] {
					seenLiteral[node.Address.LiteralText] = true
					literalOrder = append(literalOrder, node.Address.LiteralText)
				}
			}
			emissions = append(emissions, emission{kind: emitInstruction, node: node, location: int(loc)})
			loc++
		}
	}

	return emissions, literalOrder, endExpr, endPos
}

// pass2 evaluates every emission against the now-complete symbol table and
// literal pool, writing each resulting Word into image.
func (a *Assembler) pass2(emissions []emission, literalAddrs map[string]int, symbols *parser.SymbolTable, image map[int]vm.Word, errs *parser.ErrorList) {
	for _, e := range emissions {
		switch e.kind {
		case emitCon:
			v, err := parser.Evaluate(e.node.ValueExpr, int64(e.location), symbols)
			if err != nil {
				errs.AddError(parser.NewError(e.node.Pos, parser.ErrorInvalidExpression, err.Error()))
				continue
			}
			w, err := vm.FromInt(v)
			if err != nil {
				errs.AddError(parser.NewError(e.node.Pos, parser.ErrorInvalidOperand, err.Error()))
				continue
			}
			image[e.location] = w

		case emitAlf:
			w, err := vm.FromAlf(e.node.AlfText)
			if err != nil {
				errs.AddError(parser.NewError(e.node.Pos, parser.ErrorInvalidOperand, err.Error()))
				continue
			}
			image[e.location] = w

		case emitLiteral:
			v, err := parser.Evaluate(e.literal, int64(e.location), symbols)
			if err != nil {
				errs.AddError(parser.NewError(parser.Position{}, parser.ErrorInvalidExpression, err.Error()))
				continue
			}
			w, err := vm.FromInt(v)
			if err != nil {
				errs.AddError(parser.NewError(parser.Position{}, parser.ErrorInvalidOperand, err.Error()))
				continue
			}
			image[e.location] = w

		case emitInstruction:
			w, err := a.assembleInstruction(e.node, e.location, literalAddrs, symbols)
			if err != nil {
				errs.AddError(parser.NewError(e.node.Pos, parser.ErrorInvalidOperand, err.Error()))
				continue
			}
			image[e.location] = w
		}
	}
}

func (a *Assembler) assembleInstruction(node parser.Node, location int, literalAddrs map[string]int, symbols *parser.SymbolTable) (vm.Word, error) {
	entry, err := LookupOpcode(node.Op)
	if err != nil {
		return vm.Word{}, err
	}

	var magnitude int64
	switch {
	case node.Address.IsLiteral():
		addr, ok := literalAddrs[node.Address.LiteralText]
		if !ok {
			return vm.Word{}, fmt.Errorf("internal error: literal %q has no allocated address", node.Address.LiteralText)
		}
		magnitude = int64(addr)
	case node.Address.Expr != nil:
		v, err := parser.Evaluate(node.Address.Expr, int64(location), symbols)
		if err != nil {
			return vm.Word{}, err
		}
		magnitude = v
	default:
		magnitude = 0
	}

	sign := vm.Positive
	if magnitude < 0 {
		sign = vm.Negative
		magnitude = -magnitude
	}
	if magnitude > 4095 {
		return vm.Word{}, fmt.Errorf("address %d does not fit in 12 bits", magnitude)
	}

	field := entry.F
	if node.Address.HasField {
		if node.Address.FieldIsColon {
			field = vm.EncodeField(node.Address.FieldL, node.Address.FieldR)
		} else if node.Address.FieldExpr != nil {
			v, err := parser.Evaluate(node.Address.FieldExpr, int64(location), symbols)
			if err != nil {
				return vm.Word{}, err
			}
			field = int(v)
		}
	}

	index := 0
	if node.Address.HasIndex {
		index = node.Address.Index
	}

	inst := vm.Instruction{
		Sign: sign,
		AA:   int(magnitude),
		I:    index,
		F:    field,
		C:    entry.C,
	}
	return vm.EncodeInstruction(inst), nil
}
