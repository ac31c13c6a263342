package odata

import "strings"

// TextRef is a text field reachable from schema S: a declared TextKey or a
// TextPath through one lookup.
type TextRef[S any] interface {
	fieldPath() string
	text(S)
}

// NumberRef is a number field reachable from schema S.
type NumberRef[S any] interface {
	fieldPath() string
	number(S)
}

// LookupRef is a lookup field declared on schema S.
type LookupRef[S any] interface {
	lookupName() string
	lookup(S)
}

// TextKey declares a text field of schema S.
type TextKey[S any] struct{ name string }

// Text declares the text field name on schema S.
func Text[S any](name string) TextKey[S] { return TextKey[S]{name: name} }

// Name returns the field's internal name.
func (k TextKey[S]) Name() string { return k.name }

func (k TextKey[S]) fieldPath() string { return k.name }
func (TextKey[S]) text(S)              {}

// NumberKey declares a number field of schema S.
type NumberKey[S any] struct{ name string }

// Number declares the number field name on schema S.
func Number[S any](name string) NumberKey[S] { return NumberKey[S]{name: name} }

// Name returns the field's internal name.
func (k NumberKey[S]) Name() string { return k.name }

func (k NumberKey[S]) fieldPath() string { return k.name }
func (NumberKey[S]) number(S)            {}

// BooleanKey declares a boolean (yes/no) field of schema S.
type BooleanKey[S any] struct{ name string }

// Boolean declares the boolean field name on schema S.
func Boolean[S any](name string) BooleanKey[S] { return BooleanKey[S]{name: name} }

// Name returns the field's internal name.
func (k BooleanKey[S]) Name() string { return k.name }

// DateKey declares a date/time field of schema S.
type DateKey[S any] struct{ name string }

// Date declares the date field name on schema S.
func Date[S any](name string) DateKey[S] { return DateKey[S]{name: name} }

// Name returns the field's internal name.
func (k DateKey[S]) Name() string { return k.name }

// LookupKey declares a lookup field of schema S that references records of
// schema R. It is also the lookup navigator: Text and Number project a field
// of R into a path usable from S.
//
// Only one hop is expressible. Text and Number accept declared keys of R
// only, and the paths they return cannot be navigated further. Boolean and
// date sub-fields are not exposed because the list service rejects them in
// expanded filters.
type LookupKey[S, R any] struct{ name string }

// Lookup declares the lookup field name on schema S referencing schema R.
func Lookup[S, R any](name string) LookupKey[S, R] { return LookupKey[S, R]{name: name} }

// Name returns the field's internal name.
func (k LookupKey[S, R]) Name() string { return k.name }

// Text returns the path name/child.
func (k LookupKey[S, R]) Text(child TextKey[R]) TextPath[S] {
	return TextPath[S]{path: k.name + "/" + child.name}
}

// Number returns the path name/child.
func (k LookupKey[S, R]) Number(child NumberKey[R]) NumberPath[S] {
	return NumberPath[S]{path: k.name + "/" + child.name}
}

func (k LookupKey[S, R]) lookupName() string { return k.name }
func (LookupKey[S, R]) lookup(S)             {}

// TextPath is a text field of a related record, seen from schema S.
type TextPath[S any] struct{ path string }

// Path returns the navigation path, for example "Department/Alias".
func (p TextPath[S]) Path() string { return p.path }

func (p TextPath[S]) fieldPath() string { return p.path }
func (TextPath[S]) text(S)              {}

// NumberPath is a number field of a related record, seen from schema S.
type NumberPath[S any] struct{ path string }

// Path returns the navigation path.
func (p NumberPath[S]) Path() string { return p.path }

func (p NumberPath[S]) fieldPath() string { return p.path }
func (NumberPath[S]) number(S)            {}

const lookupIDSuffix = "Id"

// LookupID declares the raw identifier column of lookup name on schema S.
// "Department" and "DepartmentId" both yield DepartmentId.
func LookupID[S any](name string) NumberKey[S] {
	return NumberKey[S]{name: lookupIDColumn(name)}
}

func lookupIDColumn(name string) string {
	if strings.HasSuffix(name, lookupIDSuffix) {
		return name
	}
	return name + lookupIDSuffix
}
