package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knuth-mix/mix-emulator/parser"
)

// LintLevel is the severity of a single lint finding.
type LintLevel int

const (
	LintError LintLevel = iota
	LintWarning
	LintInfo
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is one finding reported by Linter.Lint.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// Linter walks a parsed MIXAL program looking for unused symbols,
// duplicate literals, and references that never resolved.
type Linter struct {
	issues        []*LintIssue
	definedLabels map[string]int
	referenced    map[string][]int
	literalCounts map[string]int
	literalLines  map[string][]int
}

// NewLinter returns an empty Linter.
func NewLinter() *Linter {
	return &Linter{
		definedLabels: make(map[string]int),
		referenced:    make(map[string][]int),
		literalCounts: make(map[string]int),
		literalLines:  make(map[string][]int),
	}
}

// Lint parses source and returns every finding, sorted by source line.
func (l *Linter) Lint(source, filename string) []*LintIssue {
	p := parser.NewParser(filename)
	nodes := p.Parse(source)

	for _, perr := range p.Errors().Errors {
		l.issues = append(l.issues, &LintIssue{
			Level: LintError, Line: perr.Pos.Line,
			Message: perr.Message, Code: "PARSE_ERROR",
		})
	}

	for _, node := range nodes {
		if node.Label != "" {
			l.definedLabels[node.Label] = node.Pos.Line
		}
		l.walkExpr(node.ValueExpr, node.Pos.Line)
		l.walkExpr(node.Address.Expr, node.Pos.Line)
		l.walkExpr(node.Address.FieldExpr, node.Pos.Line)
		if node.Address.IsLiteral() {
			l.literalCounts[node.Address.LiteralText]++
			l.literalLines[node.Address.LiteralText] = append(l.literalLines[node.Address.LiteralText], node.Pos.Line)
			l.walkExpr(node.Address.LiteralExpr, node.Pos.Line)
		}
	}

	l.checkUndefined()
	l.checkUnused()
	l.checkDuplicateLiterals()

	sort.Slice(l.issues, func(i, j int) bool { return l.issues[i].Line < l.issues[j].Line })
	return l.issues
}

func (l *Linter) walkExpr(e *parser.Expr, line int) {
	if e == nil {
		return
	}
	switch e.Kind {
	case parser.ExprSymbol:
		l.referenced[e.Symbol] = append(l.referenced[e.Symbol], line)
	case parser.ExprBinary:
		l.walkExpr(e.Left, line)
		l.walkExpr(e.Right, line)
	}
}

func (l *Linter) checkUndefined() {
	for name, lines := range l.referenced {
		if _, ok := l.definedLabels[name]; ok {
			continue
		}
		for _, line := range lines {
			l.issues = append(l.issues, &LintIssue{
				Level: LintError, Line: line,
				Message: fmt.Sprintf("undefined symbol %q", name),
				Code:    "UNDEF_SYMBOL",
			})
		}
	}
}

func (l *Linter) checkUnused() {
	for name, line := range l.definedLabels {
		if _, ok := l.referenced[name]; !ok {
			l.issues = append(l.issues, &LintIssue{
				Level: LintWarning, Line: line,
				Message: fmt.Sprintf("label %q is never referenced", name),
				Code:    "UNUSED_LABEL",
			})
		}
	}
}

func (l *Linter) checkDuplicateLiterals() {
	for text, count := range l.literalCounts {
		if count <= 1 {
			continue
		}
		lines := l.literalLines[text]
		l.issues = append(l.issues, &LintIssue{
			Level: LintInfo, Line: lines[0],
			Message: fmt.Sprintf("literal =%s= used %d times, collapsed to one pool slot", text, count),
			Code:    "DUPLICATE_LITERAL",
		})
	}
}

// FormatIssues renders issues one per line, in the order given.
func FormatIssues(issues []*LintIssue) string {
	var b strings.Builder
	for _, issue := range issues {
		b.WriteString(issue.String())
		b.WriteString("\n")
	}
	return b.String()
}
