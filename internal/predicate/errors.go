package predicate

import "fmt"

// PredicateError reports an invalid condition. Path locates the node, for
// example "where.all[1].some[0]".
type PredicateError struct {
	Path    string
	Message string
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func errorf(path, format string, args ...interface{}) error {
	return &PredicateError{Path: path, Message: fmt.Sprintf(format, args...)}
}
