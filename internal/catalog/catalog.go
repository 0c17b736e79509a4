// Package catalog is the static registry of every operation the engine can
// dispatch: name, parameter schema and result shape. It is pure data, used by
// the plan validator and by the interpreter's prompt construction; nothing in
// here touches the bridge.
package catalog

import "sort"

// Kind is the JSON type expected for a parameter value.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	StringList
	// ClipList accepts either plain clip names or objects with
	// name/in_point/out_point, as append_to_timeline does.
	ClipList
	// Selector is the clip selector sub-structure; selector shape rules are
	// enforced by the validator, not per-op.
	Selector
	// Map is a free-form string-keyed object (metadata, style, settings).
	Map
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case StringList:
		return "string[]"
	case ClipList:
		return "clip[]"
	case Selector:
		return "selector"
	case Map:
		return "object"
	default:
		return "unknown"
	}
}

// Param declares one parameter field of an operation.
type Param struct {
	Name     string
	Kind     Kind
	Required bool
	// Enum restricts string values to a fixed set when non-empty.
	Enum []string
	// Min/Max bound numeric values inclusively when both are set.
	Min, Max *float64
}

// Spec describes one operation.
type Spec struct {
	Name     string
	Category string
	Params   []Param
	// Result is a short human description of the success payload, surfaced
	// by `ops schema` and in the interpreter prompt.
	Result string
}

// Param returns the declared parameter by name.
func (s Spec) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// HasSelector reports whether the operation takes a clip selector.
func (s Spec) HasSelector() bool {
	for _, p := range s.Params {
		if p.Kind == Selector {
			return true
		}
	}
	return false
}

// Lookup resolves an operation name. The second result is false for names
// outside the catalog; callers must reject those before dispatch.
func Lookup(name string) (Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns all operation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the catalog size.
func Len() int { return len(registry) }

func ptr(f float64) *float64 { return &f }

func bounded(name string, kind Kind, required bool, min, max float64) Param {
	return Param{Name: name, Kind: kind, Required: required, Min: ptr(min), Max: ptr(max)}
}

func enum(name string, required bool, values ...string) Param {
	return Param{Name: name, Kind: String, Required: required, Enum: values}
}
