package odata

import "time"

// field is a selected path together with everything emitted before it.
type field struct {
	prefix tokens
	path   string
}

func (f field) compare(op Operator, value string) tokens {
	return f.prefix.with(f.path, string(op), value)
}

// compound emits a single pre-rendered clause, such as a function call or a
// parenthesized group, after the prefix.
func (f field) compound(clause string) tokens {
	return f.prefix.with(clause)
}

// baseField carries the operators every kind supports.
type baseField[S, V any] struct {
	f      field
	encode func(V) string
}

// EqualTo emits "field eq value".
func (b baseField[S, V]) EqualTo(v V) Result[S] {
	return b.result(OpEqual, b.encode(v))
}

// NotEqualTo emits "field ne value".
func (b baseField[S, V]) NotEqualTo(v V) Result[S] {
	return b.result(OpNotEqual, b.encode(v))
}

// IsNull emits "field eq null".
func (b baseField[S, V]) IsNull() Result[S] {
	return b.result(OpEqual, nullLiteral)
}

// IsNotNull emits "field ne null".
func (b baseField[S, V]) IsNotNull() Result[S] {
	return b.result(OpNotEqual, nullLiteral)
}

func (b baseField[S, V]) result(op Operator, literal string) Result[S] {
	return Result[S]{seq: b.f.compare(op, literal)}
}

// in renders one equality clause per value, in order, as an or-group.
func (b baseField[S, V]) in(values []V) Result[S] {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = clauseText(b.f.path, OpEqual, b.encode(v))
	}
	return Result[S]{seq: b.f.compound(group(parts, joinOrGroup))}
}

// orderedField adds ordering and set membership.
type orderedField[S, V any] struct {
	baseField[S, V]
}

// GreaterThan emits "field gt value".
func (o orderedField[S, V]) GreaterThan(v V) Result[S] {
	return o.result(OpGreaterThan, o.encode(v))
}

// GreaterThanOrEqualTo emits "field ge value".
func (o orderedField[S, V]) GreaterThanOrEqualTo(v V) Result[S] {
	return o.result(OpGreaterThanOrEqual, o.encode(v))
}

// LessThan emits "field lt value".
func (o orderedField[S, V]) LessThan(v V) Result[S] {
	return o.result(OpLessThan, o.encode(v))
}

// LessThanOrEqualTo emits "field le value".
func (o orderedField[S, V]) LessThanOrEqualTo(v V) Result[S] {
	return o.result(OpLessThanOrEqual, o.encode(v))
}

// In matches any of values. The group is parenthesized even for a single
// value.
func (o orderedField[S, V]) In(values ...V) Result[S] {
	return o.in(values)
}

// TextField compares a text field.
type TextField[S any] struct {
	baseField[S, string]
}

// StartsWith emits "startswith(field, 'v')".
func (t TextField[S]) StartsWith(v string) Result[S] {
	return Result[S]{seq: t.f.compound(funcStartsWith + "(" + t.f.path + ", " + textLiteral(v) + ")")}
}

// Contains emits "substringof('v', field)". The value comes first, unlike
// StartsWith; that is the grammar's argument order.
func (t TextField[S]) Contains(v string) Result[S] {
	return Result[S]{seq: t.f.compound(funcSubstringOf + "(" + textLiteral(v) + ", " + t.f.path + ")")}
}

// In matches any of values.
func (t TextField[S]) In(values ...string) Result[S] {
	return t.in(values)
}

// NumberField compares a number field.
type NumberField[S any] struct {
	orderedField[S, float64]
}

// BooleanField compares a yes/no field.
type BooleanField[S any] struct {
	baseField[S, bool]
}

// IsTrue emits "field eq 1".
func (b BooleanField[S]) IsTrue() Result[S] {
	return b.EqualTo(true)
}

// IsFalse emits "field eq 0".
func (b BooleanField[S]) IsFalse() Result[S] {
	return b.EqualTo(false)
}

// IsFalseOrNull emits "(field eq 0 or field eq null)". Yes/no columns added
// to a list after items exist hold null for those items.
func (b BooleanField[S]) IsFalseOrNull() Result[S] {
	return Result[S]{seq: b.f.compound(group([]string{
		clauseText(b.f.path, OpEqual, booleanLiteral(false)),
		clauseText(b.f.path, OpEqual, nullLiteral),
	}, joinOrGroup))}
}

// EqualToNullable is EqualTo for an optional value; nil compares with null.
func (b BooleanField[S]) EqualToNullable(v *bool) Result[S] {
	return b.result(OpEqual, nullableBooleanLiteral(v))
}

// NotEqualToNullable is NotEqualTo for an optional value.
func (b BooleanField[S]) NotEqualToNullable(v *bool) Result[S] {
	return b.result(OpNotEqual, nullableBooleanLiteral(v))
}

// DateField compares a date/time field.
type DateField[S any] struct {
	orderedField[S, time.Time]
}

// IsBetween emits "(field ge 'start' and field le 'end')". Both ends are
// inclusive.
func (d DateField[S]) IsBetween(start, end time.Time) Result[S] {
	return Result[S]{seq: d.f.compound(group([]string{
		clauseText(d.f.path, OpGreaterThanOrEqual, dateLiteral(start)),
		clauseText(d.f.path, OpLessThanOrEqual, dateLiteral(end)),
	}, joinAndGroup))}
}

// IsOnDay matches the calendar day of day in day's Location, from
// 00:00:00.000 to 23:59:59.999.
func (d DateField[S]) IsOnDay(day time.Time) Result[S] {
	y, m, dd := day.Date()
	loc := day.Location()
	start := time.Date(y, m, dd, 0, 0, 0, 0, loc)
	end := time.Date(y, m, dd, 23, 59, 59, int(999*time.Millisecond), loc)
	return d.IsBetween(start, end)
}

// IsToday matches today in the process's local time zone, evaluated at call
// time. The UTC window therefore moves with the zone the process runs in.
func (d DateField[S]) IsToday() Result[S] {
	return d.IsOnDay(time.Now())
}
