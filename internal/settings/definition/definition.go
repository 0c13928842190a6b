// Package definition holds the static setting definitions: the registry,
// data type coercion, option sources and validation rule derivation.
package definition

// Option is one entry of a select input.
type Option struct {
	Value string `toml:"value" yaml:"value" json:"value"`
	Label string `toml:"label" yaml:"label" json:"label"`
}

// Definition describes one setting key. Definitions are immutable once the
// registry has been built.
type Definition struct {
	Key       string    `toml:"key"       yaml:"key"       json:"key"`
	Label     string    `toml:"label"     yaml:"label"     json:"label"`
	DataType  DataType  `toml:"dataType"  yaml:"dataType"  json:"dataType"`
	InputType InputType `toml:"inputType" yaml:"inputType" json:"inputType"`

	// DefaultValue is used while no override is stored. nil means no default.
	DefaultValue any `toml:"defaultValue" yaml:"defaultValue" json:"defaultValue"`

	// EmptyMeansDefault turns an empty submission into a reset.
	EmptyMeansDefault bool `toml:"emptyMeansDefault" yaml:"emptyMeansDefault" json:"emptyMeansDefault"`

	// Options are the static select options. OptionsFrom names a dynamic
	// provider instead and wins when both are set.
	Options     []Option `toml:"options"     yaml:"options"     json:"options"`
	OptionsFrom string   `toml:"optionsFrom" yaml:"optionsFrom" json:"optionsFrom"`

	// Rules are go-playground/validator tags.
	Rules []string `toml:"rules" yaml:"rules" json:"rules"`

	Hint        string `toml:"hint"        yaml:"hint"        json:"hint"`
	Placeholder string `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

// IsDelimiter reports whether d is a section header without a value.
func (d Definition) IsDelimiter() bool {
	return d.InputType == Delimiter
}

// HasDefault reports whether d declares a default value.
func (d Definition) HasDefault() bool {
	return d.DefaultValue != nil
}

// Default returns the coerced default value, nil without one.
func (d Definition) Default() any {
	if !d.HasDefault() {
		return nil
	}

	return d.DataType.Coerce(d.DefaultValue)
}

// Coerce converts v to the data type of d.
func (d Definition) Coerce(v any) any {
	return d.DataType.Coerce(v)
}
