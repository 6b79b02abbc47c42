package filter

import "fmt"

// InvalidFilterError reports a filter specification the engine refuses to
// evaluate. The boundary layer maps it to a client error.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s: %s", e.Field, e.Reason)
}

// InvalidPageSpecError reports a malformed page/sort specification.
type InvalidPageSpecError struct {
	Field  string
	Reason string
}

func (e *InvalidPageSpecError) Error() string {
	return fmt.Sprintf("invalid page spec: %s: %s", e.Field, e.Reason)
}
