package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knuth-mix/mix-emulator/parser"
)

// Symbol is one symbol's definition line and every line that references it.
type Symbol struct {
	Name       string
	Defined    int // 0 if never defined
	References []int
}

// XRefGenerator builds a cross-reference table from MIXAL source.
type XRefGenerator struct {
	symbols map[string]*Symbol
}

// NewXRefGenerator returns an empty XRefGenerator.
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{symbols: make(map[string]*Symbol)}
}

// Generate parses source and returns its symbol table, keyed by name.
func (x *XRefGenerator) Generate(source, filename string) (map[string]*Symbol, error) {
	p := parser.NewParser(filename)
	nodes := p.Parse(source)
	if p.Errors().HasErrors() {
		return nil, p.Errors()
	}

	for _, node := range nodes {
		if node.Label != "" {
			x.get(node.Label).Defined = node.Pos.Line
		}
		x.walkExpr(node.ValueExpr, node.Pos.Line)
		x.walkExpr(node.Address.Expr, node.Pos.Line)
		x.walkExpr(node.Address.FieldExpr, node.Pos.Line)
		x.walkExpr(node.Address.LiteralExpr, node.Pos.Line)
	}

	return x.symbols, nil
}

func (x *XRefGenerator) get(name string) *Symbol {
	sym, ok := x.symbols[name]
	if !ok {
		sym = &Symbol{Name: name}
		x.symbols[name] = sym
	}
	return sym
}

func (x *XRefGenerator) walkExpr(e *parser.Expr, line int) {
	if e == nil {
		return
	}
	switch e.Kind {
	case parser.ExprSymbol:
		sym := x.get(e.Symbol)
		sym.References = append(sym.References, line)
	case parser.ExprBinary:
		x.walkExpr(e.Left, line)
		x.walkExpr(e.Right, line)
	}
}

// Report renders symbols as a name-sorted cross-reference listing.
func Report(symbols map[string]*Symbol) string {
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		sym := symbols[name]
		refs := make([]string, len(sym.References))
		for i, line := range sym.References {
			refs[i] = fmt.Sprintf("%d", line)
		}
		defined := "-"
		if sym.Defined != 0 {
			defined = fmt.Sprintf("%d", sym.Defined)
		}
		fmt.Fprintf(&b, "%-16s defined=%-4s used=%s\n", name, defined, strings.Join(refs, ","))
	}
	return b.String()
}
