package schema

import "fmt"

// Kind is the declared value kind of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBoolean
	KindDate
	KindTextCollection
	KindLookup
	KindLookupCollection
)

var kindNames = map[Kind]string{
	KindText:             "text",
	KindNumber:           "number",
	KindBoolean:          "boolean",
	KindDate:             "date",
	KindTextCollection:   "text_collection",
	KindLookup:           "lookup",
	KindLookupCollection: "lookup_collection",
}

// String returns the schema-file name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a schema-file kind name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown field kind %q", name)
}

// IsLookup reports whether the field references another record.
func (k Kind) IsLookup() bool {
	return k == KindLookup || k == KindLookupCollection
}

// Filterable reports whether a filter can compare the field directly.
// Multi-value text fields cannot be filtered; lookups are filtered through
// their sub-fields or identifier column.
func (k Kind) Filterable() bool {
	switch k {
	case KindText, KindNumber, KindBoolean, KindDate:
		return true
	default:
		return false
	}
}

// Navigable reports whether the kind may be the target of a lookup hop.
func (k Kind) Navigable() bool {
	return k == KindText || k == KindNumber
}
