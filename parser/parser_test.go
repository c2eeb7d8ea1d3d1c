package parser

import "testing"

func TestParse_TooManyOperandsIsAnError(t *testing.T) {
	p := NewParser("t.mixal")
	nodes := p.Parse("DATA CON 1+2+3\n")
	if !p.Errors().HasErrors() {
		t.Fatal("expected an error for an expression with more than two operands")
	}
	if len(nodes) != 0 {
		t.Errorf("Parse() returned %d nodes, want 0 on error", len(nodes))
	}
}

func TestParse_TwoOperandExpressionIsAccepted(t *testing.T) {
	p := NewParser("t.mixal")
	nodes := p.Parse("DATA CON 1+2\n")
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected errors: %v", p.Errors().Error())
	}
	if len(nodes) != 1 {
		t.Fatalf("Parse() returned %d nodes, want 1", len(nodes))
	}
}

func TestParse_AddressWithTooManyOperandsIsAnError(t *testing.T) {
	p := NewParser("t.mixal")
	nodes := p.Parse("START LDA 1+2+3\n")
	if !p.Errors().HasErrors() {
		t.Fatal("expected an error for an address expression with more than two operands")
	}
	if len(nodes) != 0 {
		t.Errorf("Parse() returned %d nodes, want 0 on error", len(nodes))
	}
}

func TestParse_FieldExpressionWithTooManyOperandsIsAnError(t *testing.T) {
	p := NewParser("t.mixal")
	nodes := p.Parse("START LDA 1000(1+2+3)\n")
	if !p.Errors().HasErrors() {
		t.Fatal("expected an error for a field expression with more than two operands")
	}
	if len(nodes) != 0 {
		t.Errorf("Parse() returned %d nodes, want 0 on error", len(nodes))
	}
}

func TestParse_LiteralWithTooManyOperandsIsAnError(t *testing.T) {
	p := NewParser("t.mixal")
	nodes := p.Parse("START LDA =1+2+3=\n")
	if !p.Errors().HasErrors() {
		t.Fatal("expected an error for a literal expression with more than two operands")
	}
	if len(nodes) != 0 {
		t.Errorf("Parse() returned %d nodes, want 0 on error", len(nodes))
	}
}

func TestParse_BareStarCommentDoesNotSetAddress(t *testing.T) {
	p := NewParser("t.mixal")
	nodes := p.Parse("     HLT * all done\n")
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected errors: %v", p.Errors().Error())
	}
	if len(nodes) != 1 {
		t.Fatalf("Parse() returned %d nodes, want 1", len(nodes))
	}
	if nodes[0].Address.Expr != nil {
		t.Error("expected no address expression; a trailing '*' comment should not set the current-location address")
	}
}
