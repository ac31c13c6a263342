package odata

import "strings"

// tokens is the append-only token sequence behind every builder state.
// with never writes to the receiver's backing array, so a sequence can be
// extended from several places without the extensions seeing each other.
type tokens []string

func (t tokens) with(extra ...string) tokens {
	out := make(tokens, 0, len(t)+len(extra))
	out = append(out, t...)
	return append(out, extra...)
}

func (t tokens) String() string {
	return strings.Join(t, " ")
}
