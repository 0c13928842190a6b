package definition

import (
	"strings"
)

// DataType governs how raw values are coerced.
type DataType string

// Supported data types.
const (
	String  DataType = "string"
	Integer DataType = "integer"
	Float   DataType = "float"
	Boolean DataType = "boolean"
	Array   DataType = "array"
	JSON    DataType = "json"
)

// Normalize maps aliases (int, bool) and the empty type onto the canonical
// names. Unknown types are returned unchanged with ok false.
func (t DataType) Normalize() (DataType, bool) {
	switch DataType(strings.ToLower(string(t))) {
	case "", String:
		return String, true
	case Integer, "int":
		return Integer, true
	case Float:
		return Float, true
	case Boolean, "bool":
		return Boolean, true
	case Array:
		return Array, true
	case JSON:
		return JSON, true
	default:
		return t, false
	}
}

// IsStructured reports whether values of t are decoded json.
func (t DataType) IsStructured() bool {
	return t == Array || t == JSON
}

// InputType is the rendering hint of a definition.
type InputType string

// Supported input types.
const (
	Text      InputType = "text"
	Textarea  InputType = "textarea"
	Number    InputType = "number"
	Password  InputType = "password"
	Email     InputType = "email"
	URL       InputType = "url"
	Select    InputType = "select"
	Checkbox  InputType = "checkbox"
	Delimiter InputType = "delimiter"
)

// Normalize lower-cases t and maps the empty type onto text.
func (t InputType) Normalize() (InputType, bool) {
	n := InputType(strings.ToLower(string(t)))

	switch n {
	case "":
		return Text, true
	case Text, Textarea, Number, Password, Email, URL, Select, Checkbox, Delimiter:
		return n, true
	default:
		return t, false
	}
}
