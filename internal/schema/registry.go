package schema

import (
	"fmt"
	"sort"

	"cuelang.org/go/cue/token"
)

// Field describes one field of a record.
type Field struct {
	Name   string
	Kind   Kind
	Target string    // Referenced record for lookup kinds
	Pos    token.Pos // CUE position if loaded from a file
}

// Record describes one list schema.
type Record struct {
	Name   string
	Fields []Field // declaration order
	Pos    token.Pos

	byName map[string]int
}

// Field returns the named field.
func (r *Record) Field(name string) (Field, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Field{}, false
	}
	return r.Fields[i], true
}

// Registry holds validated record schemas. It is not safe for concurrent
// registration; once populated it is safe for concurrent reads.
type Registry struct {
	records map[string]*Record
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// Register validates r and adds it. Lookup targets are checked by Validate,
// since records may reference each other in any order.
func (reg *Registry) Register(r *Record) error {
	if r.Name == "" {
		return &SchemaError{Code: ErrCodeGeneric, Message: "record name is required", Pos: r.Pos}
	}
	if _, exists := reg.records[r.Name]; exists {
		return &SchemaError{Code: ErrCodeDuplicateRecord, Record: r.Name, Message: "record already registered", Pos: r.Pos}
	}

	byName := make(map[string]int, len(r.Fields))
	for i, f := range r.Fields {
		if err := checkField(r.Name, f); err != nil {
			return err
		}
		if _, dup := byName[f.Name]; dup {
			return &SchemaError{Code: ErrCodeFieldName, Record: r.Name, Field: f.Name, Message: "duplicate field name", Pos: f.Pos}
		}
		byName[f.Name] = i
	}

	r.byName = byName
	reg.records[r.Name] = r
	reg.order = append(reg.order, r.Name)
	return nil
}

func checkField(record string, f Field) error {
	if f.Name == "" {
		return &SchemaError{Code: ErrCodeFieldName, Record: record, Message: "field name is required", Pos: f.Pos}
	}
	if _, ok := kindNames[f.Kind]; !ok {
		return &SchemaError{Code: ErrCodeUnknownKind, Record: record, Field: f.Name, Message: fmt.Sprintf("unknown kind %d", int(f.Kind)), Pos: f.Pos}
	}
	if f.Kind.IsLookup() && f.Target == "" {
		return &SchemaError{Code: ErrCodeMissingTarget, Record: record, Field: f.Name, Message: "lookup field requires a target record", Pos: f.Pos}
	}
	if !f.Kind.IsLookup() && f.Target != "" {
		return &SchemaError{Code: ErrCodeUnexpectedTarget, Record: record, Field: f.Name, Message: fmt.Sprintf("%s field cannot have a target", f.Kind), Pos: f.Pos}
	}
	return nil
}

// Validate checks that every lookup target is registered.
func (reg *Registry) Validate() error {
	for _, name := range reg.order {
		r := reg.records[name]
		for _, f := range r.Fields {
			if !f.Kind.IsLookup() {
				continue
			}
			if _, ok := reg.records[f.Target]; !ok {
				return &SchemaError{
					Code:    ErrCodeUnknownTarget,
					Record:  r.Name,
					Field:   f.Name,
					Message: fmt.Sprintf("lookup target %q is not a registered record", f.Target),
					Pos:     f.Pos,
				}
			}
		}
	}
	return nil
}

// Record returns the named record, or nil if not found.
func (reg *Registry) Record(name string) *Record {
	return reg.records[name]
}

// Names returns record names in registration order.
func (reg *Registry) Names() []string {
	return append([]string(nil), reg.order...)
}

// SortedNames returns record names in lexical order.
func (reg *Registry) SortedNames() []string {
	names := reg.Names()
	sort.Strings(names)
	return names
}

// Len returns the number of records.
func (reg *Registry) Len() int {
	return len(reg.order)
}
