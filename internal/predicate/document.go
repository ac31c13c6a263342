package predicate

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a predicate over one list.
type Document struct {
	// List is the record name in the schema registry.
	List string `yaml:"list"`

	// Where is the root condition.
	Where Node `yaml:"where"`
}

// Node is one condition. Exactly one of All, Some or Field is set.
type Node struct {
	// All joins child conditions with and.
	All *[]Node `yaml:"all,omitempty"`

	// Some joins child conditions with or.
	Some *[]Node `yaml:"some,omitempty"`

	// Field is the compared field of the document's list.
	Field string `yaml:"field,omitempty"`

	// Lookup names a text or number field of the record Field references.
	Lookup string `yaml:"lookup,omitempty"`

	// LookupID compares the raw identifier column of lookup Field.
	LookupID bool `yaml:"lookup_id,omitempty"`

	// Op is the comparison operator (eq, ne, gt, ge, lt, le, is_null,
	// is_not_null, starts_with, contains, in, is_true, is_false,
	// is_false_or_null, between, today).
	Op string `yaml:"op,omitempty"`

	// Value is the single operand.
	Value interface{} `yaml:"value,omitempty"`

	// Values are the operands of in.
	Values []interface{} `yaml:"values,omitempty"`

	// From and To bound between, inclusive.
	From interface{} `yaml:"from,omitempty"`
	To   interface{} `yaml:"to,omitempty"`
}

// Operator names.
const (
	OpEq            = "eq"
	OpNe            = "ne"
	OpGt            = "gt"
	OpGe            = "ge"
	OpLt            = "lt"
	OpLe            = "le"
	OpIsNull        = "is_null"
	OpIsNotNull     = "is_not_null"
	OpStartsWith    = "starts_with"
	OpContains      = "contains"
	OpIn            = "in"
	OpIsTrue        = "is_true"
	OpIsFalse       = "is_false"
	OpIsFalseOrNull = "is_false_or_null"
	OpBetween       = "between"
	OpToday         = "today"
)

// Parse decodes a predicate document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.List == "" {
		return nil, &PredicateError{Path: "list", Message: "list is required"}
	}
	if err := checkShape("where", &doc.Where); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a predicate document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read predicate file: %w", err)
	}
	return Parse(data)
}

// checkShape verifies that every node is exactly one of a group or a
// comparison. Operand checks need the schema and happen at compile time.
func checkShape(path string, n *Node) error {
	set := 0
	if n.All != nil {
		set++
	}
	if n.Some != nil {
		set++
	}
	if n.Field != "" {
		set++
	}

	switch {
	case set == 0:
		return &PredicateError{Path: path, Message: "node needs one of all, some or field"}
	case set > 1:
		return &PredicateError{Path: path, Message: "node must have exactly one of all, some or field"}
	}

	var children []Node
	var key string
	switch {
	case n.All != nil:
		children, key = *n.All, "all"
	case n.Some != nil:
		children, key = *n.Some, "some"
	default:
		if n.Op == "" {
			return &PredicateError{Path: path, Message: "op is required"}
		}
		return nil
	}

	for i := range children {
		if err := checkShape(fmt.Sprintf("%s.%s[%d]", path, key, i), &children[i]); err != nil {
			return err
		}
	}
	return nil
}
