package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
)

// LoadCUE loads every record declared under list: in the CUE package in
// dir, registers them and validates the result.
func LoadCUE(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &SchemaError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &SchemaError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &SchemaError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, &SchemaError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &SchemaError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &SchemaError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, cueError(inst.Err)
	}

	value := cuecontext.New().BuildInstance(inst)
	return FromCUE(value)
}

// LoadCUEString is LoadCUE for an in-memory CUE source.
func LoadCUEString(src string) (*Registry, error) {
	return FromCUE(cuecontext.New().CompileString(src))
}

// FromCUE builds a registry from a CUE value holding a list: struct.
func FromCUE(v cue.Value) (*Registry, error) {
	if err := v.Err(); err != nil {
		return nil, cueError(err)
	}

	reg := NewRegistry()
	lists := v.LookupPath(cue.ParsePath("list"))
	if !lists.Exists() {
		return reg, nil
	}

	iter, err := lists.Fields()
	if err != nil {
		return nil, cueError(err)
	}
	for iter.Next() {
		rec, err := parseRecord(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		if err := reg.Register(rec); err != nil {
			return nil, err
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func parseRecord(name string, v cue.Value) (*Record, error) {
	rec := &Record{Name: name, Pos: v.Pos()}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return rec, nil
	}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, cueError(err)
	}
	for iter.Next() {
		f, err := parseField(name, iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec, nil
}

func parseField(record, name string, v cue.Value) (Field, error) {
	f := Field{Name: name, Pos: v.Pos()}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return f, &SchemaError{Code: ErrCodeUnknownKind, Record: record, Field: name, Message: "kind is required", Pos: f.Pos}
	}
	kindName, err := kindVal.String()
	if err != nil {
		return f, cueError(err)
	}
	kind, err := ParseKind(kindName)
	if err != nil {
		return f, &SchemaError{Code: ErrCodeUnknownKind, Record: record, Field: name, Message: err.Error(), Pos: kindVal.Pos()}
	}
	f.Kind = kind

	if targetVal := v.LookupPath(cue.ParsePath("target")); targetVal.Exists() {
		target, err := targetVal.String()
		if err != nil {
			return f, cueError(err)
		}
		f.Target = target
	}
	return f, nil
}

// cueError keeps the first CUE error and its position.
func cueError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}
	first := errs[0]
	se := &SchemaError{Code: ErrCodeLoadFailed, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		se.Pos = positions[0]
	}
	return se
}
