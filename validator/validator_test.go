package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/bali/internal/schema"
)

const testSchemaTOML = `
initial_state = "root-wrap"
default_name_code = 0

[[names]]
uri = ""
local = "root"
code = 1

[[names]]
uri = ""
local = "id"
code = 2

[[states]]
id = "root-wrap"
final = false
persistent = false

[[states]]
id = "root-attrs"
final = false
persistent = false

[[states]]
id = "root-content"
final = true
persistent = true

[[datatypes]]
id = "str"
builtin = "string"

[[elements]]
state = "root-wrap"
left = "root-attrs"
right = "root-content"
[elements.name]
mask = 4294967295
test = 1

[[attributes]]
state = "root-attrs"
datatype = "str"
repeated = false
left = "root-accept-any"
right = "root-content"
[attributes.name]
mask = 4294967295
test = 2

[[states]]
id = "root-accept-any"
final = true
persistent = true

[[data]]
state = "root-accept-any"
datatype = "str"
left = ""
right = "root-accept-any"

[[data]]
state = "root-content"
datatype = "str"
left = ""
right = "root-content"

[[no_attributes]]
state = "root-attrs"
right = "root-content"
neg_tests = []
pos_tests = []
`

type fakeAttrs struct {
	names  [][2]string
	values []string
}

func (f fakeAttrs) Len() int { return len(f.values) }
func (f fakeAttrs) Name(i int) (string, string) {
	return f.names[i][0], f.names[i][1]
}
func (f fakeAttrs) Value(i int) string { return f.values[i] }

func noAttrs() fakeAttrs { return fakeAttrs{} }

func loadTestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.LoadBytes([]byte(testSchemaTOML))
	assert.NoError(t, err)
	return s
}

func Test_Driver_acceptsMinimalDocument(t *testing.T) {
	s := loadTestSchema(t)
	d := NewDriver(s)

	assert.NoError(t, d.StartElement("", "root", noAttrs()))
	assert.NoError(t, d.EndElement("", "root"))
	assert.NoError(t, d.EndDocument())
	assert.True(t, d.Valid())
}

func Test_Driver_acceptsAttributeAndText(t *testing.T) {
	s := loadTestSchema(t)
	d := NewDriver(s)

	a := fakeAttrs{names: [][2]string{{"", "id"}}, values: []string{"42"}}
	assert.NoError(t, d.StartElement("", "root", a))
	assert.NoError(t, d.Characters("hello"))
	assert.NoError(t, d.EndElement("", "root"))
	assert.NoError(t, d.EndDocument())
	assert.True(t, d.Valid())
}

func Test_Driver_rejectsUnexpectedStartTag(t *testing.T) {
	s := loadTestSchema(t)
	d := NewDriver(s)

	err := d.StartElement("", "unknownroot", noAttrs())
	assert.Error(t, err)
	assert.False(t, d.Valid())
}

func Test_Driver_haltsAfterFirstError(t *testing.T) {
	s := loadTestSchema(t)
	d := NewDriver(s)

	firstErr := d.StartElement("", "unknownroot", noAttrs())
	assert.Error(t, firstErr)

	secondErr := d.StartElement("", "root", noAttrs())
	assert.Same(t, firstErr, secondErr)
	assert.ErrorIs(t, secondErr, d.Err())
}

func Test_Driver_rejectsUnexpectedNestedElement(t *testing.T) {
	s := loadTestSchema(t)
	d := NewDriver(s)

	assert.NoError(t, d.StartElement("", "root", noAttrs()))
	// the fixture grammar has no element transitions inside root's content,
	// so any nested start tag is unexpected.
	err := d.StartElement("", "root", noAttrs())
	assert.Error(t, err)
}
