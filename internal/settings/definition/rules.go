package definition

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
)

// Derived rules.
const (
	RuleInteger = "integer"
	RuleBoolean = "boolean"
	RuleString  = "string"
)

// ErrInvalidRule is returned when a rule is not a known validator tag.
var ErrInvalidRule = errors.New("invalid validation rule")

var integerRegex = regexp.MustCompile(`^\s*[+-]?\d+\s*$`)

// DeriveRules returns the explicit rules of def, or exactly one rule derived
// from its data type.
func DeriveRules(def Definition) []string {
	if len(def.Rules) > 0 {
		return append([]string(nil), def.Rules...)
	}

	dataType, _ := def.DataType.Normalize()

	switch dataType {
	case Integer:
		return []string{RuleInteger}
	case Boolean:
		return []string{RuleBoolean}
	default:
		return []string{RuleString}
	}
}

// Schema holds one validator tag per value definition, compiled once.
type Schema struct {
	validate *validator.Validate
	tags     map[string]string
	labels   map[string]string
	order    []string
}

// NewValidator returns a validator with the integer and string rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation(RuleInteger, func(fl validator.FieldLevel) bool {
		return integerRegex.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation(RuleString, func(validator.FieldLevel) bool {
		return true
	})

	return v
}

// NewSchema compiles the rules of every value definition of reg.
func NewSchema(reg *Registry) (*Schema, error) {
	s := &Schema{
		validate: NewValidator(),
		tags:     make(map[string]string),
		labels:   make(map[string]string),
	}

	for _, def := range reg.Values() {
		tag := buildTag(DeriveRules(def))

		if err := s.check(tag); err != nil {
			return nil, pkgerrors.Wrapf(err, "%s: %q", def.Key, tag)
		}

		s.tags[def.Key] = tag
		s.labels[def.Key] = def.Label
		s.order = append(s.order, def.Key)
	}

	return s, nil
}

// buildTag joins rules into a validator tag. Empty input skips the rules
// unless one of them is required.
func buildTag(rules []string) string {
	for _, r := range rules {
		if strings.HasPrefix(r, "required") {
			return strings.Join(rules, ",")
		}
	}

	return "omitempty," + strings.Join(rules, ",")
}

// check parses tag once. The validator panics on undefined tags.
func (s *Schema) check(tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pkgerrors.Wrapf(ErrInvalidRule, "%v", r)
		}
	}()

	_ = s.validate.Var("", tag)

	return nil
}

// Tag returns the compiled validator tag of key.
func (s *Schema) Tag(key string) (string, bool) {
	tag, ok := s.tags[key]

	return tag, ok
}

// Validate checks the submitted values and returns one message per failing
// key. Keys without a definition are ignored. A missing key validates as "".
func (s *Schema) Validate(values map[string]string) map[string]string {
	failures := make(map[string]string)

	for _, key := range s.order {
		if msg := s.ValidateKey(key, values[key]); msg != "" {
			failures[key] = msg
		}
	}

	return failures
}

// ValidateKey checks a single value. It returns "" when value passes or key
// has no rules.
func (s *Schema) ValidateKey(key, value string) string {
	tag, ok := s.tags[key]
	if !ok {
		return ""
	}

	err := s.validate.Var(value, tag)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return message(s.labels[key], verrs[0])
	}

	return fmt.Sprintf("The %s field is invalid.", s.labels[key])
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case RuleInteger:
		return fmt.Sprintf("The %s field must be an integer.", label)
	case RuleBoolean:
		return fmt.Sprintf("The %s field must be true or false.", label)
	case "numeric", "number":
		return fmt.Sprintf("The %s field must be a number.", label)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", label)
	case "url", "http_url":
		return fmt.Sprintf("The %s field must be a valid URL.", label)
	case "json":
		return fmt.Sprintf("The %s field must be a valid JSON string.", label)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	default:
		return fmt.Sprintf("The %s field is invalid (%s).", label, fe.Tag())
	}
}
