package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rosed"
	"github.com/google/uuid"

	"github.com/dekarrin/bali/internal/schema"
	"github.com/dekarrin/bali/validator"
)

// fixtureFile is a literal event sequence in place of a parsed document: one
// TOML file per fixture, a name for reporting, and an ordered list of
// events.
type fixtureFile struct {
	Name   string         `toml:"name"`
	Events []fixtureEvent `toml:"events"`
}

// fixtureEvent is a single event. Kind selects which of the driver's event
// methods fires; the remaining fields are interpreted according to Kind.
type fixtureEvent struct {
	Kind       string            `toml:"kind"` // "start-element", "characters", "end-element"
	URI        string            `toml:"uri"`
	Local      string            `toml:"local"`
	Attributes map[string]string `toml:"attributes"`
	Text       string            `toml:"text"`
}

// fixtureAttrs adapts a fixtureEvent's attribute map to validator.Attributes.
type fixtureAttrs struct {
	names  []string
	values []string
}

func newFixtureAttrs(m map[string]string) fixtureAttrs {
	fa := fixtureAttrs{names: make([]string, 0, len(m)), values: make([]string, 0, len(m))}
	for k, v := range m {
		fa.names = append(fa.names, k)
		fa.values = append(fa.values, v)
	}
	return fa
}

func (fa fixtureAttrs) Len() int                      { return len(fa.names) }
func (fa fixtureAttrs) Name(i int) (uri, local string) { return "", fa.names[i] }
func (fa fixtureAttrs) Value(i int) string             { return fa.values[i] }

// runFixture loads the fixture at path and drives its events through a
// fresh validator.Driver against sch, printing a pass/fail report. It
// returns whether the fixture passed.
func runFixture(sch *schema.Schema, path string, wrapWidth int) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read fixture: %w", err)
	}

	var fx fixtureFile
	if err := toml.Unmarshal(data, &fx); err != nil {
		return false, fmt.Errorf("parse fixture TOML: %w", err)
	}

	label := fx.Name
	if label == "" {
		label = path
	}

	d := validator.NewDriver(sch)
	var evErr error
	for _, ev := range fx.Events {
		switch ev.Kind {
		case "start-element":
			evErr = d.StartElement(ev.URI, ev.Local, newFixtureAttrs(ev.Attributes))
		case "characters":
			evErr = d.Characters(ev.Text)
		case "end-element":
			evErr = d.EndElement(ev.URI, ev.Local)
		default:
			return false, fmt.Errorf("fixture %q: unknown event kind %q", label, ev.Kind)
		}
		if evErr != nil {
			break
		}
	}
	if evErr == nil {
		evErr = d.EndDocument()
	}

	if d.Valid() {
		fmt.Printf("PASS: %s\n", label)
		return true, nil
	}

	diagnostic := rosed.Edit(fmt.Sprintf("FAIL: %s: %s", label, evErr.Error())).
		Wrap(wrapWidth).
		String()
	fmt.Println(diagnostic)
	return false, nil
}

// cacheKeyFor derives a stable cache key for a schema file's path, so a
// given schema file always lands in the same cache row regardless of
// process lifetime.
func cacheKeyFor(schemaPath string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(schemaPath))
}
