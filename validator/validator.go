// Package validator implements the driver (spec.md §4.F): the thing that
// actually walks a document's events against a schema's state-expression
// algebra, accumulating an attribute-set stack and a growing text buffer,
// and reporting the first fatal mismatch it finds.
package validator

import (
	"github.com/dekarrin/bali/balierr"
	"github.com/dekarrin/bali/internal/attrs"
	"github.com/dekarrin/bali/internal/schema"
	"github.com/dekarrin/bali/internal/state"
)

// Attributes is the attribute provider an Events caller hands the driver
// alongside a start-element call. It mirrors spec.md §6's (length, name,
// value) triple; namespace-declaration attributes (xmlns, xmlns:*) must
// already be filtered out by the adapter before this is built.
type Attributes interface {
	Len() int
	Name(i int) (uri, local string)
	Value(i int) string
}

// Events is the event consumer interface a document parser drives, one call
// per tree event. Driver implements it.
type Events interface {
	StartDocument()
	StartElement(uri, local string, raw Attributes) error
	Characters(chunk string) error
	IgnorableWhitespace(chunk string) error
	EndElement(uri, local string) error
	EndDocument() error
}

var _ Events = (*Driver)(nil)

// Driver drives one document's worth of events against a Schema. It is not
// safe for concurrent use by multiple goroutines, but independent Drivers
// sharing one Schema are (spec.md §5).
//
// Errors halt the driver: the first failing event records its error, and
// every later event call returns that same error without rewriting the
// state further. There is no error-sink hook; failures are reported only by
// the event methods' return values and by Err.
type Driver struct {
	schema *schema.Schema

	current state.Expr
	attrs   *attrs.Set
	path    []string

	textBuf string

	err error
}

// NewDriver starts a fresh document match against sch.
func NewDriver(sch *schema.Schema) *Driver {
	d := &Driver{schema: sch}
	d.StartDocument()
	return d
}

// Err returns the first fatal validation error encountered, or nil if none
// has occurred yet.
func (d *Driver) Err() error {
	return d.err
}

// StartDocument resets the driver to the schema's initial state with an
// empty attribute stack. It is called automatically by NewDriver; callers
// reusing a Driver across documents may call it again explicitly.
func (d *Driver) StartDocument() {
	d.current = d.schema.Initial()
	d.attrs = attrs.Empty()
	d.path = nil
	d.textBuf = ""
	d.err = nil
}

// StartElement advances the driver by a start-element event. raw supplies
// the element's attributes (already filtered of namespace declarations);
// uri/local name the element itself.
func (d *Driver) StartElement(uri, local string, raw Attributes) error {
	if d.err != nil {
		return d.err
	}
	if err := d.processText(); err != nil {
		return err
	}

	entries := make([]attrs.Entry, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		auri, alocal := raw.Name(i)
		entries[i] = attrs.Entry{Name: d.schema.NameCode(auri, alocal), Value: raw.Value(i)}
	}
	d.attrs = attrs.New(entries, d.attrs)
	d.path = append(d.path, local)

	code := d.schema.NameCode(uri, local)
	newState := d.current.StartElement(code, d.attrs, state.Empty)
	if newState == state.Empty {
		d.err = balierr.UnexpectedStartTag(d.path, local)
		return d.err
	}
	d.current = newState
	return nil
}

// Characters appends a chunk of character data to the driver's text
// accumulator; it is not rewritten against the schema until the next
// StartElement, EndElement, or EndDocument call forces processText.
func (d *Driver) Characters(chunk string) error {
	if d.err != nil {
		return d.err
	}
	d.textBuf += chunk
	return nil
}

// IgnorableWhitespace is treated identically to Characters (spec.md §6).
func (d *Driver) IgnorableWhitespace(chunk string) error {
	return d.Characters(chunk)
}

// EndElement advances the driver by an end-element event.
func (d *Driver) EndElement(uri, local string) error {
	if d.err != nil {
		return d.err
	}
	if err := d.processText(); err != nil {
		return err
	}

	newState := d.current.EndElement(d.attrs, state.Empty)
	d.attrs = attrs.Pop(d.attrs)
	if len(d.path) > 0 {
		d.path = d.path[:len(d.path)-1]
	}

	if newState == state.Empty {
		d.err = balierr.UnexpectedEndTag(d.path, local)
		return d.err
	}
	d.current = newState
	return nil
}

// EndDocument finalizes the match. A document is valid iff no error has
// been recorded; the current state's own finality was already checked on
// the enclosing root element's EndElement.
func (d *Driver) EndDocument() error {
	if d.err != nil {
		return d.err
	}
	return d.processText()
}

// Valid reports whether the document matched so far, with no fatal error
// recorded yet.
func (d *Driver) Valid() bool {
	return d.err == nil
}

// processText rewrites the accumulated text buffer against the current
// state, if any text has accumulated, then clears the buffer.
func (d *Driver) processText() error {
	if d.textBuf == "" {
		return nil
	}
	value := d.textBuf
	d.textBuf = ""

	newState := d.current.Text(value, d.attrs, state.Empty)
	if newState == state.Empty {
		d.err = balierr.UnexpectedText(d.path, value)
		return d.err
	}
	d.current = newState
	return nil
}
