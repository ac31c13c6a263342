package odata

import (
	"strconv"
	"strings"
	"time"
)

// Operator is a binary comparison operator of the filter grammar.
type Operator string

// Comparison operators.
const (
	OpEqual              Operator = "eq"
	OpNotEqual           Operator = "ne"
	OpGreaterThan        Operator = "gt"
	OpGreaterThanOrEqual Operator = "ge"
	OpLessThan           Operator = "lt"
	OpLessThanOrEqual    Operator = "le"
)

// Function names of the filter grammar.
const (
	funcStartsWith  = "startswith"
	funcSubstringOf = "substringof"
)

// Joiners. The bare forms are chain tokens, the spaced forms join groups.
const (
	joinAnd      = "and"
	joinOr       = "or"
	joinAndGroup = " and "
	joinOrGroup  = " or "
)

const nullLiteral = "null"

// isoLayout matches ECMAScript Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// textLiteral quotes s. Embedded quotes are not escaped.
func textLiteral(s string) string {
	return "'" + s + "'"
}

// numberLiteral renders v in its shortest unquoted decimal form.
func numberLiteral(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// booleanLiteral renders v as 1 or 0. The grammar has no boolean literal.
func booleanLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// nullableBooleanLiteral renders nil as null.
func nullableBooleanLiteral(v *bool) string {
	if v == nil {
		return nullLiteral
	}
	return booleanLiteral(*v)
}

// dateLiteral renders the instant in UTC. Naive local times shift by the
// zone offset of their Location.
func dateLiteral(v time.Time) string {
	return "'" + v.UTC().Format(isoLayout) + "'"
}

func clauseText(path string, op Operator, value string) string {
	return path + " " + string(op) + " " + value
}

// group wraps parts in one pair of parentheses, even when parts is empty.
func group(parts []string, joiner string) string {
	return "(" + strings.Join(parts, joiner) + ")"
}
