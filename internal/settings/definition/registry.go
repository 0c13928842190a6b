package definition

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrEmptyKey is returned for a definition without key.
	ErrEmptyKey = errors.New("definition key can not be empty")
	// ErrDuplicateKey is returned when two definitions share a key.
	ErrDuplicateKey = errors.New("duplicate definition key")
	// ErrUnknownDataType is returned for an unsupported data type.
	ErrUnknownDataType = errors.New("unknown data type")
	// ErrUnknownInputType is returned for an unsupported input type.
	ErrUnknownInputType = errors.New("unknown input type")
)

// Registry is the ordered, read-only set of definitions.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry validates and normalizes defs. Declaration order is kept.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		if def.Key == "" {
			return nil, pkgerrors.Wrapf(ErrEmptyKey, "definition #%d", i)
		}

		if _, ok := r.index[def.Key]; ok {
			return nil, pkgerrors.Wrap(ErrDuplicateKey, def.Key)
		}

		dataType, ok := def.DataType.Normalize()
		if !ok {
			return nil, pkgerrors.Wrapf(ErrUnknownDataType, "%s: %q", def.Key, def.DataType)
		}

		inputType, ok := def.InputType.Normalize()
		if !ok {
			return nil, pkgerrors.Wrapf(ErrUnknownInputType, "%s: %q", def.Key, def.InputType)
		}

		def.DataType = dataType
		def.InputType = inputType

		if def.Label == "" {
			def.Label = def.Key
		}

		def.Options = append([]Option(nil), def.Options...)
		def.Rules = append([]string(nil), def.Rules...)

		r.index[def.Key] = len(r.defs)
		r.defs = append(r.defs, def)
	}

	return r, nil
}

// Lookup returns the definition of key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	i, ok := r.index[key]
	if !ok {
		return Definition{}, false
	}

	return r.defs[i], true
}

// Definitions returns all definitions, delimiters included, in declaration order.
func (r *Registry) Definitions() []Definition {
	return append([]Definition(nil), r.defs...)
}

// Values returns the definitions that carry a value, in declaration order.
func (r *Registry) Values() []Definition {
	out := make([]Definition, 0, len(r.defs))

	for _, def := range r.defs {
		if !def.IsDelimiter() {
			out = append(out, def)
		}
	}

	return out
}

// Len returns the number of definitions, delimiters included.
func (r *Registry) Len() int {
	return len(r.defs)
}
