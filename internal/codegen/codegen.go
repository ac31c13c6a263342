// Package codegen writes typed odata accessors for a schema registry.
//
// Each record becomes an empty marker type and each filterable field a
// package-level key, so filters over generated lists are checked by the
// compiler:
//
//	type Employee struct{}
//
//	var (
//		EmployeeTitle      = odata.Text[Employee]("Title")
//		EmployeeDepartment = odata.Lookup[Employee, Department]("Department")
//	)
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/spquery/internal/schema"
)

// ImportPath is the package generated code refers to.
const ImportPath = "github.com/roach88/spquery/odata"

// Options controls generation.
type Options struct {
	// Package is the generated package clause. Defaults to "lists".
	Package string

	// Source is recorded in the header comment, for example the schema
	// directory.
	Source string
}

// Generate renders gofmt'ed Go source for every record in reg.
func Generate(reg *schema.Registry, opts Options) ([]byte, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "lists"
	}
	if !token.IsIdentifier(pkg) || token.IsKeyword(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	g := &generator{reg: reg, names: make(map[string]string)}
	for _, name := range reg.Names() {
		if _, err := g.declare(Identifier(name), name); err != nil {
			return nil, err
		}
	}

	g.printf("// Code generated by spquery gen; DO NOT EDIT.\n")
	if opts.Source != "" {
		g.printf("// Source: %s\n", opts.Source)
	}
	g.printf("\npackage %s\n\nimport %q\n", pkg, ImportPath)

	for _, name := range reg.Names() {
		if err := g.record(reg.Record(name)); err != nil {
			return nil, err
		}
	}

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

type generator struct {
	reg   *schema.Registry
	buf   bytes.Buffer
	names map[string]string // identifier -> what declared it
}

func (g *generator) printf(format string, args ...interface{}) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *generator) declare(ident, origin string) (string, error) {
	if prev, taken := g.names[ident]; taken {
		return "", fmt.Errorf("identifier %s for %s collides with %s", ident, origin, prev)
	}
	g.names[ident] = origin
	return ident, nil
}

func (g *generator) record(r *schema.Record) error {
	typ := Identifier(r.Name)

	g.printf("\n// %s is the schema type of the %s list.\n", typ, r.Name)
	g.printf("type %s struct{}\n", typ)
	if len(r.Fields) == 0 {
		return nil
	}

	g.printf("\n// %s fields.\nvar (\n", typ)
	for _, f := range r.Fields {
		if err := g.field(typ, r.Name, f); err != nil {
			return err
		}
	}
	g.printf(")\n")
	return nil
}

func (g *generator) field(typ, record string, f schema.Field) error {
	if !f.Kind.Filterable() && !f.Kind.IsLookup() {
		g.printf("\t// %s (%s) cannot be filtered.\n", f.Name, f.Kind)
		return nil
	}

	ident, err := g.declare(typ+Identifier(f.Name), record+"."+f.Name)
	if err != nil {
		return err
	}

	switch f.Kind {
	case schema.KindText:
		g.printf("\t%s = odata.Text[%s](%q)\n", ident, typ, f.Name)
	case schema.KindNumber:
		g.printf("\t%s = odata.Number[%s](%q)\n", ident, typ, f.Name)
	case schema.KindBoolean:
		g.printf("\t%s = odata.Boolean[%s](%q)\n", ident, typ, f.Name)
	case schema.KindDate:
		g.printf("\t%s = odata.Date[%s](%q)\n", ident, typ, f.Name)
	case schema.KindLookup, schema.KindLookupCollection:
		if g.reg.Record(f.Target) == nil {
			return fmt.Errorf("%s.%s: lookup target %q is not registered", record, f.Name, f.Target)
		}
		g.printf("\t%s = odata.Lookup[%s, %s](%q)\n", ident, typ, Identifier(f.Target), f.Name)
	}
	return nil
}

// Identifier turns an internal field or list name into an exported Go
// identifier. Runs of characters that cannot appear in an identifier split
// words, and each word is title-cased: "first_name" becomes FirstName and
// "Title" stays Title.
func Identifier(name string) string {
	// Decomposed accents would otherwise split a word at the combining mark.
	words := strings.FieldsFunc(norm.NFC.String(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	// Casers carry state, so each call gets its own.
	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}

	ident := b.String()
	if ident == "" {
		return "X"
	}
	if first := []rune(ident)[0]; !unicode.IsLetter(first) || !unicode.IsUpper(first) {
		ident = "X" + ident
	}
	return ident
}
