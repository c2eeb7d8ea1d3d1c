package parser

import (
	"fmt"
	"strings"
)

// SymbolTable maps case-insensitive MIXAL identifiers to integer values, as
// produced by pass 1 (label definitions) and EQU. Definitions are
// write-once; redefining a symbol is an error.
type SymbolTable struct {
	values map[string]int64
	order  []string
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{values: make(map[string]int64)}
}

// Define binds name to value, failing if name is already defined.
func (s *SymbolTable) Define(name string, value int64) error {
	key := strings.ToUpper(name)
	if _, exists := s.values[key]; exists {
		return fmt.Errorf("duplicate symbol %q", key)
	}
	s.values[key] = value
	s.order = append(s.order, key)
	return nil
}

// Lookup returns the value bound to name, or an error if it is undefined.
func (s *SymbolTable) Lookup(name string) (int64, error) {
	key := strings.ToUpper(name)
	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("undefined symbol %q", key)
	}
	return v, nil
}

// Defined reports whether name has been bound.
func (s *SymbolTable) Defined(name string) bool {
	_, ok := s.values[strings.ToUpper(name)]
	return ok
}

// Names returns every defined symbol name in definition order.
func (s *SymbolTable) Names() []string {
	return s.order
}

// Value is a convenience pairing of a symbol and its resolved value, used
// by symbol-table dump and cross-reference tooling.
type Value struct {
	Name  string
	Value int64
}

// All returns every symbol and its value in definition order.
func (s *SymbolTable) All() []Value {
	result := make([]Value, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, Value{Name: name, Value: s.values[name]})
	}
	return result
}
