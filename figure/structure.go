package figure

import (
	"errors"
	"fmt"

	"github.com/vk/figkit/internal/convert"
)

// Kwargs holds keyword options. The engine passes them through to the
// backend without looking inside, except for the control keys documented on
// each instruction kind.
type Kwargs map[string]any

// Clone returns a shallow copy of kw. A nil map clones to an empty one.
func (kw Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(kw))
	for k, v := range kw {
		out[k] = v
	}
	return out
}

// AxesStructure declares one panel: its instructions in execution order,
// its placement, and the style overrides active while it is built.
type AxesStructure struct {
	Data   []Instruction
	Layout Layout
	Style  StyleSpec
}

// Layout is the [position, kwargs] pair used to create the primary panel.
// Position is validated with ParsePosition when the structure is built.
type Layout struct {
	Position any
	Options  Kwargs
}

// Clone returns a copy of s that shares no slices or maps with s at the top
// level. Instruction values and the data they carry are shared.
func (s AxesStructure) Clone() AxesStructure {
	out := AxesStructure{
		Data:   append([]Instruction(nil), s.Data...),
		Layout: Layout{Position: s.Layout.Position, Options: s.Layout.Options.Clone()},
		Style:  append(StyleSpec(nil), s.Style...),
	}
	return out
}

// Control verbs. Every other verb is a backend drawing primitive.
const (
	VerbTwinX  = "twinx"
	VerbTwinY  = "twiny"
	VerbRevise = "revise"
)

// TwinAxis selects which axis a twin panel shares with the primary panel.
type TwinAxis string

const (
	// TwinX shares the x axis and gets an independent y axis.
	TwinX TwinAxis = "x"
	// TwinY shares the y axis and gets an independent x axis.
	TwinY TwinAxis = "y"
)

// Instruction is one step of an AxesStructure. It is one of Invoke, Twin or
// Revise.
type Instruction interface {
	// Order is the caller-chosen key the result is registered under. It is
	// not a sort key.
	Order() int
	// Verb reports the verb the instruction was authored with.
	Verb() string
	isInstruction()
}

// Invoke calls a named drawing primitive on the current panel.
type Invoke struct {
	Key    int
	Name   string
	Args   []any
	Kwargs Kwargs
}

func (i Invoke) Order() int     { return i.Key }
func (i Invoke) Verb() string   { return i.Name }
func (i Invoke) isInstruction() {}

// Twin creates a twin panel off the primary panel and makes it current.
// NextColor advances the twin's color cycle so its series do not reuse
// colors already drawn on the primary panel.
type Twin struct {
	Key       int
	Axis      TwinAxis
	NextColor int
}

func (t Twin) Order() int { return t.Key }

func (t Twin) Verb() string {
	if t.Axis == TwinY {
		return VerbTwinY
	}
	return VerbTwinX
}

func (t Twin) isInstruction() {}

// ReviseFunc is the callback carried by a Revise instruction. It sees the
// figure and the registries built so far for the enclosing structure.
type ReviseFunc func(fig Figure, axes AxesRegistry, artifacts ArtifactRegistry, kw Kwargs) error

// Revise runs a caller-supplied callback in place of a drawing verb.
type Revise struct {
	Key    int
	Fn     ReviseFunc
	Kwargs Kwargs
}

func (r Revise) Order() int     { return r.Key }
func (r Revise) Verb() string   { return VerbRevise }
func (r Revise) isInstruction() {}

// AxesRegistry maps order keys to panels. Key 0 is always the primary panel.
type AxesRegistry map[int]Panel

// ArtifactRegistry maps order keys to the artifacts drawn by Invoke
// instructions.
type ArtifactRegistry map[int]Artifact

// ErrNotReviseFunc is returned by NewInstruction when a revise verb does not
// carry a ReviseFunc.
var ErrNotReviseFunc = errors.New("revise instruction requires a ReviseFunc")

// Raw is the untyped (order, verb, args, kwargs) form of an instruction.
type Raw struct {
	Order  int
	Verb   string
	Args   any
	Kwargs Kwargs
}

// NewInstruction builds the typed instruction for the untyped form.
//
// twinx and twiny read the optional "nextcolor" keyword. revise requires args
// to be a ReviseFunc (or a func literal with the same signature). Any other
// verb becomes an Invoke; args may be nil, a []any or a single value.
func NewInstruction(order int, verb string, args any, kwargs Kwargs) (Instruction, error) {
	switch verb {
	case VerbTwinX, VerbTwinY:
		axis := TwinX
		if verb == VerbTwinY {
			axis = TwinY
		}
		n := 0
		if v, ok := kwargs["nextcolor"]; ok {
			var err error
			if n, err = convert.Int(v); err != nil {
				return nil, fmt.Errorf("instruction %d: nextcolor: %w", order, err)
			}
		}
		return Twin{Key: order, Axis: axis, NextColor: n}, nil
	case VerbRevise:
		var fn ReviseFunc
		switch f := args.(type) {
		case ReviseFunc:
			fn = f
		case func(Figure, AxesRegistry, ArtifactRegistry, Kwargs) error:
			fn = f
		}
		if fn == nil {
			return nil, fmt.Errorf("instruction %d: %w, got %T", order, ErrNotReviseFunc, args)
		}
		return Revise{Key: order, Fn: fn, Kwargs: kwargs.Clone()}, nil
	}
	return Invoke{Key: order, Name: verb, Args: toArgs(args), Kwargs: kwargs.Clone()}, nil
}

// Instructions converts raw instructions in order, stopping at the first
// error.
func Instructions(raws ...Raw) ([]Instruction, error) {
	out := make([]Instruction, 0, len(raws))
	for _, r := range raws {
		ins, err := NewInstruction(r.Order, r.Verb, r.Args, r.Kwargs)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, nil
}

// MustInstructions is like Instructions but panics on error. It is meant
// for literal structures in code and tests.
func MustInstructions(raws ...Raw) []Instruction {
	out, err := Instructions(raws...)
	if err != nil {
		panic(err)
	}
	return out
}

func toArgs(args any) []any {
	switch a := args.(type) {
	case nil:
		return nil
	case []any:
		return a
	default:
		return []any{a}
	}
}
