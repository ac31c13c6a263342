package odata

import "time"

// Query is the entry state returned by Where. Besides selecting a first
// field it can group already built results.
type Query[S any] struct {
	FieldSelector[S]
}

// Where starts a filter over schema S.
func Where[S any]() Query[S] {
	return Query[S]{}
}

// All joins results with and inside one pair of parentheses. An empty call
// yields "()".
func (Query[S]) All(results ...Result[S]) Result[S] {
	return Result[S]{seq: tokens{group(serialize(results), joinAndGroup)}}
}

// Some joins results with or inside one pair of parentheses. An empty call
// yields "()".
func (Query[S]) Some(results ...Result[S]) Result[S] {
	return Result[S]{seq: tokens{group(serialize(results), joinOrGroup)}}
}

func serialize[S any](results []Result[S]) []string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.String()
	}
	return parts
}

// FieldSelector selects the field the next comparison applies to.
type FieldSelector[S any] struct {
	prefix tokens
}

// TextField selects a text field or a text path through a lookup.
func (q FieldSelector[S]) TextField(f TextRef[S]) TextField[S] {
	return TextField[S]{baseField[S, string]{q.at(f.fieldPath()), textLiteral}}
}

// NumberField selects a number field or a number path through a lookup.
func (q FieldSelector[S]) NumberField(f NumberRef[S]) NumberField[S] {
	return NumberField[S]{orderedField[S, float64]{baseField[S, float64]{q.at(f.fieldPath()), numberLiteral}}}
}

// BooleanField selects a boolean field.
func (q FieldSelector[S]) BooleanField(f BooleanKey[S]) BooleanField[S] {
	return BooleanField[S]{baseField[S, bool]{q.at(f.name), booleanLiteral}}
}

// DateField selects a date field.
func (q FieldSelector[S]) DateField(f DateKey[S]) DateField[S] {
	return DateField[S]{orderedField[S, time.Time]{baseField[S, time.Time]{q.at(f.name), dateLiteral}}}
}

// LookupIdField selects the raw identifier column of a lookup, so the
// lookup can be filtered without expanding it.
func (q FieldSelector[S]) LookupIdField(f LookupRef[S]) NumberField[S] {
	return q.NumberField(LookupID[S](f.lookupName()))
}

func (q FieldSelector[S]) at(path string) field {
	return field{prefix: q.prefix, path: path}
}

// Result is the state after a comparison. It can only be combined with
// another comparison or serialized.
type Result[S any] struct {
	seq tokens
}

// And continues the expression with a conjunction.
func (r Result[S]) And() FieldSelector[S] {
	return FieldSelector[S]{prefix: r.seq.with(joinAnd)}
}

// Or continues the expression with a disjunction.
func (r Result[S]) Or() FieldSelector[S] {
	return FieldSelector[S]{prefix: r.seq.with(joinOr)}
}

// String returns the filter text. It can be called any number of times.
func (r Result[S]) String() string {
	return r.seq.String()
}

// Tokens returns a copy of the token sequence.
func (r Result[S]) Tokens() []string {
	return r.seq.with()
}
