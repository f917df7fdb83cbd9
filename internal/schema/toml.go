package schema

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/bali/internal/datatype"
	"github.com/dekarrin/bali/internal/name"
	"github.com/dekarrin/bali/internal/state"
	"github.com/dekarrin/bali/internal/transition"
)

// tomlFile is the root of the schema description format (spec.md §4.I): an
// already-resolved grammar, not anything the loader infers or compiles.
// Every state and transition is fully specified; textual ids are resolved
// to array indices exactly once, here.
type tomlFile struct {
	InitialState     string           `toml:"initial_state"`
	DefaultNameCode  uint32           `toml:"default_name_code"`
	Names            []tomlName       `toml:"names"`
	Datatypes        []tomlDatatype   `toml:"datatypes"`
	States           []tomlState      `toml:"states"`
	Elements         []tomlElement    `toml:"elements"`
	Attributes       []tomlAttribute  `toml:"attributes"`
	Data             []tomlData       `toml:"data"`
	Lists            []tomlList       `toml:"lists"`
	Interleaves      []tomlInterleave `toml:"interleaves"`
	NoAttributes     []tomlNoAtt      `toml:"no_attributes"`
}

type tomlName struct {
	URI   string `toml:"uri"`
	Local string `toml:"local"`
	Code  uint32 `toml:"code"`
}

type tomlDatatype struct {
	ID                string `toml:"id"`
	Builtin           string `toml:"builtin"` // "string" or "token"
	RestrictionTarget string `toml:"restriction_target"`
}

type tomlState struct {
	ID         string `toml:"id"`
	Final      bool   `toml:"final"`
	Persistent bool   `toml:"persistent"`
}

type tomlSignature struct {
	Mask uint32 `toml:"mask"`
	Test uint32 `toml:"test"`
}

type tomlElement struct {
	State string        `toml:"state"`
	Name  tomlSignature `toml:"name"`
	Left  string        `toml:"left"`
	Right string        `toml:"right"`
}

type tomlAttribute struct {
	State    string        `toml:"state"`
	Name     tomlSignature `toml:"name"`
	Repeated bool          `toml:"repeated"`
	Left     string        `toml:"left"`
	Right    string        `toml:"right"`
}

type tomlData struct {
	State    string `toml:"state"`
	Datatype string `toml:"datatype"`
	Left     string `toml:"left"` // "" means no negative-lookahead state
	Right    string `toml:"right"`
}

type tomlList struct {
	State string `toml:"state"`
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

type tomlInterleave struct {
	State      string `toml:"state"`
	Left       string `toml:"left"`
	Right      string `toml:"right"`
	Join       string `toml:"join"`
	TextToLeft bool   `toml:"text_to_left"`
}

type tomlNoAtt struct {
	State    string          `toml:"state"`
	Right    string          `toml:"right"`
	NegTests []tomlSignature `toml:"neg_tests"`
	PosTests []tomlSignature `toml:"pos_tests"`
}

func (s tomlSignature) resolve() name.Signature {
	return name.Signature{Mask: name.Code(s.Mask), Test: name.Code(s.Test)}
}

// Load reads a schema description from the TOML file at path and resolves
// it into a sealed Schema. It performs exactly one resolution pass (textual
// state/datatype ids to slice indices); it does not compile, infer, or
// validate the grammar's own well-formedness beyond catching dangling
// references.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes is Load, but reading the schema description from an in-memory
// buffer rather than a path.
func LoadBytes(data []byte) (*Schema, error) {
	var f tomlFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schema TOML: %w", err)
	}
	return buildSchema(&f)
}

func buildSchema(f *tomlFile) (*Schema, error) {
	names := make([]name.Literal, 0, len(f.Names))
	for _, n := range f.Names {
		names = append(names, name.Literal{URI: n.URI, Local: n.Local, Code: name.Code(n.Code)})
	}
	nameTable := name.NewTable(names, name.Code(f.DefaultNameCode))

	datatypes := make(map[string]datatype.Datatype, len(f.Datatypes))
	for _, d := range f.Datatypes {
		var base datatype.Datatype
		switch d.Builtin {
		case "string":
			base = datatype.String
		case "token":
			base = datatype.Token
		default:
			return nil, fmt.Errorf("datatype %q: unknown builtin %q", d.ID, d.Builtin)
		}
		if d.RestrictionTarget != "" {
			vr := datatype.NewValueRestriction(base, d.RestrictionTarget)
			vr.Prime()
			datatypes[d.ID] = vr
		} else {
			datatypes[d.ID] = base
		}
	}

	stateIndex := make(map[string]int, len(f.States))
	infos := make([]*state.StateInfo, len(f.States))
	for i, st := range f.States {
		if _, dup := stateIndex[st.ID]; dup {
			return nil, fmt.Errorf("state %q: defined more than once", st.ID)
		}
		stateIndex[st.ID] = i
		infos[i] = &state.StateInfo{ID: i, Final: st.Final, Persistent: st.Persistent}
	}

	resolveState := func(id string) (transition.StateRef, error) {
		if id == "" {
			return transition.NoStateRef, nil
		}
		idx, ok := stateIndex[id]
		if !ok {
			return 0, fmt.Errorf("undefined state id %q", id)
		}
		return transition.StateRef(idx), nil
	}

	for _, e := range f.Elements {
		src, ok := stateIndex[e.State]
		if !ok {
			return nil, fmt.Errorf("element transition: undefined source state %q", e.State)
		}
		left, err := resolveState(e.Left)
		if err != nil {
			return nil, fmt.Errorf("element transition on %q: %w", e.State, err)
		}
		right, err := resolveState(e.Right)
		if err != nil {
			return nil, fmt.Errorf("element transition on %q: %w", e.State, err)
		}
		infos[src].ElemTr = append(infos[src].ElemTr, transition.Element{
			Name: e.Name.resolve(), Left: left, Right: right,
		})
	}

	for _, a := range f.Attributes {
		src, ok := stateIndex[a.State]
		if !ok {
			return nil, fmt.Errorf("attribute transition: undefined source state %q", a.State)
		}
		left, err := resolveState(a.Left)
		if err != nil {
			return nil, fmt.Errorf("attribute transition on %q: %w", a.State, err)
		}
		right, err := resolveState(a.Right)
		if err != nil {
			return nil, fmt.Errorf("attribute transition on %q: %w", a.State, err)
		}
		infos[src].AttTr = append(infos[src].AttTr, transition.Att{
			Name: a.Name.resolve(), Repeated: a.Repeated, Left: left, Right: right,
		})
	}

	for _, d := range f.Data {
		src, ok := stateIndex[d.State]
		if !ok {
			return nil, fmt.Errorf("data transition: undefined source state %q", d.State)
		}
		dt, ok := datatypes[d.Datatype]
		if !ok {
			return nil, fmt.Errorf("data transition on %q: undefined datatype %q", d.State, d.Datatype)
		}
		left, err := resolveState(d.Left)
		if err != nil {
			return nil, fmt.Errorf("data transition on %q: %w", d.State, err)
		}
		right, err := resolveState(d.Right)
		if err != nil {
			return nil, fmt.Errorf("data transition on %q: %w", d.State, err)
		}
		infos[src].DataTr = append(infos[src].DataTr, transition.Data{Left: left, Right: right, Datatype: dt})
	}

	for _, l := range f.Lists {
		src, ok := stateIndex[l.State]
		if !ok {
			return nil, fmt.Errorf("list transition: undefined source state %q", l.State)
		}
		left, err := resolveState(l.Left)
		if err != nil {
			return nil, fmt.Errorf("list transition on %q: %w", l.State, err)
		}
		right, err := resolveState(l.Right)
		if err != nil {
			return nil, fmt.Errorf("list transition on %q: %w", l.State, err)
		}
		infos[src].ListTr = append(infos[src].ListTr, transition.List{Left: left, Right: right})
	}

	for _, it := range f.Interleaves {
		src, ok := stateIndex[it.State]
		if !ok {
			return nil, fmt.Errorf("interleave transition: undefined source state %q", it.State)
		}
		left, err := resolveState(it.Left)
		if err != nil {
			return nil, fmt.Errorf("interleave transition on %q: %w", it.State, err)
		}
		right, err := resolveState(it.Right)
		if err != nil {
			return nil, fmt.Errorf("interleave transition on %q: %w", it.State, err)
		}
		join, err := resolveState(it.Join)
		if err != nil {
			return nil, fmt.Errorf("interleave transition on %q: %w", it.State, err)
		}
		infos[src].InterTr = append(infos[src].InterTr, transition.Interleave{
			Left: left, Right: right, Join: join, TextToLeft: it.TextToLeft,
		})
	}

	for _, n := range f.NoAttributes {
		src, ok := stateIndex[n.State]
		if !ok {
			return nil, fmt.Errorf("no-attribute transition: undefined source state %q", n.State)
		}
		right, err := resolveState(n.Right)
		if err != nil {
			return nil, fmt.Errorf("no-attribute transition on %q: %w", n.State, err)
		}
		neg := make([]name.Signature, len(n.NegTests))
		for i, t := range n.NegTests {
			neg[i] = t.resolve()
		}
		pos := make([]name.Signature, len(n.PosTests))
		for i, t := range n.PosTests {
			pos[i] = t.resolve()
		}
		infos[src].NoAttTr = append(infos[src].NoAttTr, transition.NoAtt{Right: right, NegTests: neg, PosTests: pos})
	}

	registry := state.NewRegistry(infos)

	initIdx, ok := stateIndex[f.InitialState]
	if !ok {
		return nil, fmt.Errorf("initial_state %q: undefined", f.InitialState)
	}

	return &Schema{
		names:    nameTable,
		registry: registry,
		initial:  registry.Resolve(transition.StateRef(initIdx)),
	}, nil
}
