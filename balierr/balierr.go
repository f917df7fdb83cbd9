// Package balierr provides the validation engine's typed error kinds, one
// constructor per kind the driver can raise: an unexpected start tag, an
// unexpected end tag, and unexpected text. Each error carries both a
// technical message and a human-facing summary, mirroring the dual-message
// convention used throughout the interpreter errors this package is modeled
// on.
package balierr

import "fmt"

// Kind identifies which of the three fatal validation failures occurred.
type Kind int

const (
	// UnexpectedStartTagKind means a start-element event had no matching
	// Element transition from the current state.
	UnexpectedStartTagKind Kind = iota
	// UnexpectedEndTagKind means an end-element event found the current
	// state not final.
	UnexpectedEndTagKind
	// UnexpectedTextKind means a characters event matched no Data or List
	// transition (and was not all-whitespace).
	UnexpectedTextKind
)

func (k Kind) String() string {
	switch k {
	case UnexpectedStartTagKind:
		return "unexpected start tag"
	case UnexpectedEndTagKind:
		return "unexpected end tag"
	case UnexpectedTextKind:
		return "unexpected text"
	default:
		return "unknown validation error"
	}
}

// ValidationError is a fatal, document-terminal validation failure. It
// carries the path of element names open at the point of failure, since the
// core has no line/column information of its own — that comes from whatever
// parser feeds events through the Events interface.
type ValidationError struct {
	kind    Kind
	path    []string
	msg     string
	summary string
	wrap    error
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Summary gives the caller-facing description of the failure, suitable for
// display without the element path Error() includes.
func (e *ValidationError) Summary() string {
	return e.summary
}

// Kind reports which of the three validation failure kinds this is.
func (e *ValidationError) Kind() Kind {
	return e.kind
}

// Path returns the sequence of element names open (innermost last) at the
// point of failure.
func (e *ValidationError) Path() []string {
	return e.path
}

func (e *ValidationError) Unwrap() error {
	return e.wrap
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "(document root)"
	}
	s := ""
	for _, p := range path {
		s += "/" + p
	}
	return s
}

// UnexpectedStartTag reports that name could not begin any production
// reachable from the current state.
func UnexpectedStartTag(path []string, name string) error {
	return &ValidationError{
		kind:    UnexpectedStartTagKind,
		path:    path,
		msg:     fmt.Sprintf("unexpected start tag %q at %s: no matching production", name, pathString(path)),
		summary: fmt.Sprintf("element %q is not allowed here", name),
	}
}

// UnexpectedEndTag reports that the element at path closed while its
// content model had not yet reached a final state.
func UnexpectedEndTag(path []string, name string) error {
	return &ValidationError{
		kind:    UnexpectedEndTagKind,
		path:    path,
		msg:     fmt.Sprintf("unexpected end tag %q at %s: content model not satisfied", name, pathString(path)),
		summary: fmt.Sprintf("element %q ended before its required content was complete", name),
	}
}

// UnexpectedText reports that value matched no Data or List transition (and
// was not itself all-whitespace) at path.
func UnexpectedText(path []string, value string) error {
	return &ValidationError{
		kind:    UnexpectedTextKind,
		path:    path,
		msg:     fmt.Sprintf("unexpected text %q at %s: no matching datatype", value, pathString(path)),
		summary: fmt.Sprintf("text %q is not allowed here", value),
	}
}

// WrapUnexpectedText is like UnexpectedText but additionally wraps cause,
// for when the failure was detected via a datatype parse error rather than
// a plain no-match.
func WrapUnexpectedText(cause error, path []string, value string) error {
	err := UnexpectedText(path, value).(*ValidationError)
	err.wrap = cause
	return err
}
