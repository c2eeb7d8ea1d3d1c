package tools

import (
	"strings"
	"testing"
)

func TestFormat_BasicInstruction(t *testing.T) {
	source := "START LDA 1000"

	result := NewFormatter(DefaultFormatOptions()).Format(source)

	if !strings.Contains(result, "LDA") {
		t.Error("Expected LDA instruction in output")
	}
	if !strings.HasPrefix(result, "START") {
		t.Errorf("Expected line to start with label, got: %q", result)
	}
}

func TestFormat_WithComment(t *testing.T) {
	source := "      LDA 1000   INITIAL LOAD"

	result := NewFormatter(DefaultFormatOptions()).Format(source)

	if !strings.Contains(result, "INITIAL LOAD") {
		t.Errorf("Expected comment text preserved, got: %q", result)
	}
}

func TestFormat_CommentLinePassesThrough(t *testing.T) {
	source := "* THIS IS A WHOLE-LINE COMMENT"

	result := NewFormatter(DefaultFormatOptions()).Format(source)

	if strings.TrimRight(result, "\n") != source {
		t.Errorf("Expected comment line unchanged, got: %q", result)
	}
}

func TestFormat_BlankLinePreserved(t *testing.T) {
	source := "LABEL LDA 1000\n\nSTJ 2000"

	result := NewFormatter(DefaultFormatOptions()).Format(source)
	lines := strings.Split(result, "\n")

	if len(lines) < 3 || lines[1] != "" {
		t.Errorf("Expected blank line preserved between instructions, got: %q", result)
	}
}

func TestFormat_AlignsInstructionColumn(t *testing.T) {
	opts := DefaultFormatOptions()
	source := "      LDA 1000"

	result := NewFormatter(opts).Format(source)
	idx := strings.Index(result, "LDA")

	if idx != opts.InstructionColumn {
		t.Errorf("Expected LDA at column %d, got column %d in %q", opts.InstructionColumn, idx, result)
	}
}

func TestFormatString(t *testing.T) {
	result := FormatString("START LDA 1000")
	if !strings.Contains(result, "LDA") {
		t.Errorf("Expected default formatting to include LDA, got: %q", result)
	}
}
