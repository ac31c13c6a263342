package predicate

import (
	"fmt"
	"math"
	"time"

	"github.com/roach88/spquery/internal/schema"
	"github.com/roach88/spquery/odata"
)

// record is the schema type of every runtime-built key. The registry, not
// the type system, guarantees that a key belongs to its list.
type record struct{}

// Clock supplies the current time for the today operator.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the process clock in the local time zone.
var SystemClock Clock = ClockFunc(time.Now)

// Compiler turns documents into filter text using a schema registry.
type Compiler struct {
	reg   *schema.Registry
	clock Clock
}

// NewCompiler creates a compiler over reg. A nil clock means SystemClock.
func NewCompiler(reg *schema.Registry, clock Clock) *Compiler {
	if clock == nil {
		clock = SystemClock
	}
	return &Compiler{reg: reg, clock: clock}
}

// Compile validates doc against the registry and returns its filter.
func (c *Compiler) Compile(doc *Document) (string, error) {
	rec := c.reg.Record(doc.List)
	if rec == nil {
		return "", errorf("list", "unknown list %q", doc.List)
	}

	res, err := c.node(rec, "where", &doc.Where)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// CompileBytes parses and compiles a YAML document.
func (c *Compiler) CompileBytes(data []byte) (string, error) {
	doc, err := Parse(data)
	if err != nil {
		return "", err
	}
	return c.Compile(doc)
}

func (c *Compiler) node(rec *schema.Record, path string, n *Node) (odata.Result[record], error) {
	q := odata.Where[record]()
	switch {
	case n.All != nil:
		children, err := c.children(rec, path+".all", *n.All)
		if err != nil {
			return odata.Result[record]{}, err
		}
		return q.All(children...), nil
	case n.Some != nil:
		children, err := c.children(rec, path+".some", *n.Some)
		if err != nil {
			return odata.Result[record]{}, err
		}
		return q.Some(children...), nil
	case n.Field != "":
		return c.comparison(rec, path, q.FieldSelector, n)
	default:
		return odata.Result[record]{}, errorf(path, "node needs one of all, some or field")
	}
}

func (c *Compiler) children(rec *schema.Record, path string, nodes []Node) ([]odata.Result[record], error) {
	results := make([]odata.Result[record], len(nodes))
	for i := range nodes {
		res, err := c.node(rec, fmt.Sprintf("%s[%d]", path, i), &nodes[i])
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

func (c *Compiler) comparison(rec *schema.Record, path string, sel odata.FieldSelector[record], n *Node) (odata.Result[record], error) {
	var zero odata.Result[record]

	f, ok := rec.Field(n.Field)
	if !ok {
		return zero, errorf(path, "list %s has no field %q", rec.Name, n.Field)
	}

	switch {
	case n.LookupID && n.Lookup != "":
		return zero, errorf(path, "lookup and lookup_id are mutually exclusive")
	case n.LookupID:
		if !f.Kind.IsLookup() {
			return zero, errorf(path, "lookup_id requires a lookup field, %s is %s", f.Name, f.Kind)
		}
		return c.number(path, sel.LookupIdField(odata.Lookup[record, record](f.Name)), n)
	case n.Lookup != "":
		return c.navigate(path, sel, f, n)
	}

	switch f.Kind {
	case schema.KindText:
		return c.text(path, sel.TextField(odata.Text[record](f.Name)), n)
	case schema.KindNumber:
		return c.number(path, sel.NumberField(odata.Number[record](f.Name)), n)
	case schema.KindBoolean:
		return c.boolean(path, sel.BooleanField(odata.Boolean[record](f.Name)), n)
	case schema.KindDate:
		return c.date(path, sel.DateField(odata.Date[record](f.Name)), n)
	case schema.KindLookup, schema.KindLookupCollection:
		return zero, errorf(path, "lookup field %s needs lookup or lookup_id", f.Name)
	default:
		return zero, errorf(path, "%s fields cannot be filtered", f.Kind)
	}
}

// navigate resolves a one-hop path into the lookup's target record.
func (c *Compiler) navigate(path string, sel odata.FieldSelector[record], f schema.Field, n *Node) (odata.Result[record], error) {
	var zero odata.Result[record]

	if !f.Kind.IsLookup() {
		return zero, errorf(path, "lookup requires a lookup field, %s is %s", f.Name, f.Kind)
	}
	target := c.reg.Record(f.Target)
	if target == nil {
		return zero, errorf(path, "lookup target %q is not registered", f.Target)
	}
	child, ok := target.Field(n.Lookup)
	if !ok {
		return zero, errorf(path, "list %s has no field %q", target.Name, n.Lookup)
	}

	lk := odata.Lookup[record, record](f.Name)
	switch child.Kind {
	case schema.KindText:
		return c.text(path, sel.TextField(lk.Text(odata.Text[record](child.Name))), n)
	case schema.KindNumber:
		return c.number(path, sel.NumberField(lk.Number(odata.Number[record](child.Name))), n)
	default:
		return zero, errorf(path, "only text and number fields can be reached through a lookup, %s.%s is %s", target.Name, child.Name, child.Kind)
	}
}

func (c *Compiler) text(path string, f odata.TextField[record], n *Node) (odata.Result[record], error) {
	var zero odata.Result[record]

	switch n.Op {
	case OpIsNull, OpIsNotNull:
		if err := noOperands(path, n); err != nil {
			return zero, err
		}
		if n.Op == OpIsNull {
			return f.IsNull(), nil
		}
		return f.IsNotNull(), nil
	case OpIn:
		values, err := listOf(path, n, asText)
		if err != nil {
			return zero, err
		}
		return f.In(values...), nil
	case OpEq, OpNe, OpStartsWith, OpContains:
		v, err := single(path, n, asText)
		if err != nil {
			return zero, err
		}
		switch n.Op {
		case OpEq:
			return f.EqualTo(v), nil
		case OpNe:
			return f.NotEqualTo(v), nil
		case OpStartsWith:
			return f.StartsWith(v), nil
		default:
			return f.Contains(v), nil
		}
	default:
		return zero, unsupported(path, n.Op, schema.KindText)
	}
}

func (c *Compiler) number(path string, f odata.NumberField[record], n *Node) (odata.Result[record], error) {
	var zero odata.Result[record]

	switch n.Op {
	case OpIsNull, OpIsNotNull:
		if err := noOperands(path, n); err != nil {
			return zero, err
		}
		if n.Op == OpIsNull {
			return f.IsNull(), nil
		}
		return f.IsNotNull(), nil
	case OpIn:
		values, err := listOf(path, n, asNumber)
		if err != nil {
			return zero, err
		}
		return f.In(values...), nil
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		v, err := single(path, n, asNumber)
		if err != nil {
			return zero, err
		}
		return ordered(n.Op, f.EqualTo, f.NotEqualTo, f.GreaterThan, f.GreaterThanOrEqualTo, f.LessThan, f.LessThanOrEqualTo)(v), nil
	default:
		return zero, unsupported(path, n.Op, schema.KindNumber)
	}
}

func (c *Compiler) boolean(path string, f odata.BooleanField[record], n *Node) (odata.Result[record], error) {
	var zero odata.Result[record]

	switch n.Op {
	case OpIsNull, OpIsNotNull, OpIsTrue, OpIsFalse, OpIsFalseOrNull:
		if err := noOperands(path, n); err != nil {
			return zero, err
		}
		switch n.Op {
		case OpIsNull:
			return f.IsNull(), nil
		case OpIsNotNull:
			return f.IsNotNull(), nil
		case OpIsTrue:
			return f.IsTrue(), nil
		case OpIsFalse:
			return f.IsFalse(), nil
		default:
			return f.IsFalseOrNull(), nil
		}
	case OpEq, OpNe:
		v, err := single(path, n, asBool)
		if err != nil {
			return zero, err
		}
		if n.Op == OpEq {
			return f.EqualTo(v), nil
		}
		return f.NotEqualTo(v), nil
	default:
		return zero, unsupported(path, n.Op, schema.KindBoolean)
	}
}

func (c *Compiler) date(path string, f odata.DateField[record], n *Node) (odata.Result[record], error) {
	var zero odata.Result[record]

	switch n.Op {
	case OpIsNull, OpIsNotNull, OpToday:
		if err := noOperands(path, n); err != nil {
			return zero, err
		}
		switch n.Op {
		case OpIsNull:
			return f.IsNull(), nil
		case OpIsNotNull:
			return f.IsNotNull(), nil
		default:
			return f.IsOnDay(c.clock.Now()), nil
		}
	case OpBetween:
		if n.Value != nil || n.Values != nil {
			return zero, errorf(path, "between takes from and to, not value or values")
		}
		if n.From == nil || n.To == nil {
			return zero, errorf(path, "between requires from and to")
		}
		from, err := asDate(n.From)
		if err != nil {
			return zero, errorf(path+".from", "%v", err)
		}
		to, err := asDate(n.To)
		if err != nil {
			return zero, errorf(path+".to", "%v", err)
		}
		return f.IsBetween(from, to), nil
	case OpIn:
		values, err := listOf(path, n, asDate)
		if err != nil {
			return zero, err
		}
		return f.In(values...), nil
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		v, err := single(path, n, asDate)
		if err != nil {
			return zero, err
		}
		return ordered(n.Op, f.EqualTo, f.NotEqualTo, f.GreaterThan, f.GreaterThanOrEqualTo, f.LessThan, f.LessThanOrEqualTo)(v), nil
	default:
		return zero, unsupported(path, n.Op, schema.KindDate)
	}
}

// ordered picks the builder method for a comparison operator.
func ordered[V any](op string, eq, ne, gt, ge, lt, le func(V) odata.Result[record]) func(V) odata.Result[record] {
	switch op {
	case OpNe:
		return ne
	case OpGt:
		return gt
	case OpGe:
		return ge
	case OpLt:
		return lt
	case OpLe:
		return le
	default:
		return eq
	}
}

func unsupported(path, op string, kind schema.Kind) error {
	if op == "" {
		return errorf(path, "op is required")
	}
	return errorf(path, "operator %q is not supported for %s fields", op, kind)
}

func noOperands(path string, n *Node) error {
	if n.Value != nil || n.Values != nil || n.From != nil || n.To != nil {
		return errorf(path, "%s takes no operands", n.Op)
	}
	return nil
}

func single[V any](path string, n *Node, conv func(interface{}) (V, error)) (V, error) {
	var zero V
	if n.Values != nil || n.From != nil || n.To != nil {
		return zero, errorf(path, "%s takes a single value", n.Op)
	}
	if n.Value == nil {
		return zero, errorf(path, "%s requires a value", n.Op)
	}
	v, err := conv(n.Value)
	if err != nil {
		return zero, errorf(path+".value", "%v", err)
	}
	return v, nil
}

func listOf[V any](path string, n *Node, conv func(interface{}) (V, error)) ([]V, error) {
	if n.Value != nil || n.From != nil || n.To != nil {
		return nil, errorf(path, "in takes values, not value")
	}
	if len(n.Values) == 0 {
		return nil, errorf(path, "in requires at least one value")
	}
	out := make([]V, len(n.Values))
	for i, raw := range n.Values {
		v, err := conv(raw)
		if err != nil {
			return nil, errorf(fmt.Sprintf("%s.values[%d]", path, i), "%v", err)
		}
		out[i] = v
	}
	return out, nil
}

func asText(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

func asNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("number must be finite")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func asBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected true or false, got %T", v)
	}
	return b, nil
}

const dayLayout = "2006-01-02"

// asDate accepts RFC 3339 timestamps and bare days, which are local
// midnight. YAML leaves unquoted timestamps as strings when decoding into
// interface{}.
func asDate(v interface{}) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, d); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation(dayLayout, d, time.Local); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid date %q, want RFC 3339 or YYYY-MM-DD", d)
	default:
		return time.Time{}, fmt.Errorf("expected a date, got %T", v)
	}
}
