package settings

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/settings-admin/settings-admin/internal/settings"
	"github.com/settings-admin/settings-admin/internal/settings/definition"
	"github.com/settings-admin/settings-admin/internal/web/navigation"
)

const (
	resetPrefix = "settings-reset["
	resetSuffix = "]"
)

// Field is one rendered input.
type Field struct {
	Key         string
	Label       string
	InputType   string
	Hint        string
	Description string
	Placeholder string
	Value       string
	Checked     bool
	Options     []definition.Option
	DefaultNote string
	DefaultShow string
	Resettable  bool
	Error       string
}

// Section groups the fields following a delimiter. The first section has no
// label when the definitions do not start with a delimiter.
type Section struct {
	Key      string
	Label    string
	AnchorID string
	Fields   []Field
}

// Result counts the outcome of a submission.
type Result struct {
	Saved  int
	Reset  int
	Failed int
}

// Message is the flash text of r.
func (r Result) Message() string {
	parts := make([]string, 0, 3) //nolint:mnd

	if r.Saved > 0 {
		parts = append(parts, fmt.Sprintf("%d setting(s) saved", r.Saved))
	}

	if r.Reset > 0 {
		parts = append(parts, fmt.Sprintf("%d reset to default", r.Reset))
	}

	if r.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Failed))
	}

	if len(parts) == 0 {
		return "No changes."
	}

	return strings.Join(parts, ", ")
}

// buildForm lays out every definition in declaration order. submitted and
// failures are set when a rejected submission is rendered again.
func buildForm(
	ctx context.Context,
	store *settings.Store,
	providers *definition.Providers,
	stored map[string]*string,
	submitted map[string]string,
	failures map[string]string,
	nav *navigation.Context,
) []Section {
	sections := []Section{{}}

	for _, def := range store.Definitions() {
		if def.IsDelimiter() {
			nav.AddAnchor(def.Key, def.Label)
			sections = append(sections, Section{
				Key:      def.Key,
				Label:    def.Label,
				AnchorID: navigation.AnchorID(def.Key),
			})

			continue
		}

		_, overridden := stored[def.Key]

		field := Field{
			Key:         def.Key,
			Label:       def.Label,
			InputType:   string(def.InputType),
			Hint:        def.Hint,
			Description: def.Description,
			Placeholder: def.Placeholder,
			DefaultShow: defaultShow(def),
			Resettable:  def.HasDefault() && overridden,
			Error:       failures[def.Key],
		}

		if field.Placeholder == "" && def.EmptyMeansDefault && def.HasDefault() {
			field.Placeholder = "Default: " + field.DefaultShow
		}

		if def.HasDefault() {
			if def.EmptyMeansDefault {
				field.DefaultNote = "Empty value will use default: " + field.DefaultShow
			} else {
				field.DefaultNote = "Default value: " + field.DefaultShow
			}
		}

		if v, ok := submitted[def.Key]; ok {
			field.Value = v
		} else {
			field.Value = formText(def, store.Get(def.Key))
		}

		if def.InputType == definition.Checkbox {
			field.Checked = definition.Boolean.Coerce(field.Value).(bool)
		}

		if def.InputType == definition.Select {
			opts, err := providers.Resolve(ctx, def)
			if err != nil {
				log.Warn().Err(err).Str("key", def.Key).Msg("failed to resolve select options")
			}

			field.Options = opts
		}

		last := &sections[len(sections)-1]
		last.Fields = append(last.Fields, field)
	}

	if len(sections[0].Fields) == 0 {
		sections = sections[1:]
	}

	return sections
}

// formText renders v the way it is submitted back.
func formText(def definition.Definition, v any) string {
	if v == nil {
		return ""
	}

	text, err := def.DataType.Encode(v)
	if err != nil {
		return ""
	}

	return text
}

func defaultShow(def definition.Definition) string {
	if !def.HasDefault() {
		return ""
	}

	if def.InputType == definition.Checkbox {
		if definition.Boolean.Coerce(def.DefaultValue).(bool) {
			return "YES"
		}

		return "NO"
	}

	return formText(def, def.Default())
}

// parseForm returns the submitted values and the keys marked for reset. The
// last value of a repeated name wins, so a checked checkbox overrides its
// hidden "0" companion.
func parseForm(c *fiber.Ctx) (map[string]string, map[string]bool) {
	values := make(map[string]string)
	resets := make(map[string]bool)

	add := func(name, value string) {
		if strings.HasPrefix(name, resetPrefix) && strings.HasSuffix(name, resetSuffix) {
			key := strings.TrimSuffix(strings.TrimPrefix(name, resetPrefix), resetSuffix)
			resets[key] = definition.Boolean.Coerce(value).(bool)

			return
		}

		values[name] = value
	}

	if form, err := c.MultipartForm(); err == nil {
		for name, vs := range form.Value {
			if len(vs) > 0 {
				add(name, vs[len(vs)-1])
			}
		}
	} else {
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			add(string(k), string(v))
		})
	}

	return values, resets
}

// apply reconciles a submission with the store, key by key in declaration
// order. A key is written only when its coerced value differs from the
// current effective value.
func apply(
	ctx context.Context,
	store *settings.Store,
	submitted map[string]string,
	resets map[string]bool,
	stored map[string]*string,
) Result {
	var res Result

	for _, def := range store.Registry().Values() {
		key := def.Key
		_, overridden := stored[key]

		if resets[key] {
			if overridden {
				res.count(store.Delete(ctx, key), &res.Reset, key)
			}

			continue
		}

		value, ok := submitted[key]
		if !ok {
			if def.InputType != definition.Checkbox {
				continue
			}

			value = "0"
		}

		if value == "" && def.EmptyMeansDefault {
			if overridden {
				res.count(store.Delete(ctx, key), &res.Reset, key)
			}

			continue
		}

		current := store.Get(key)
		if current == nil {
			current = def.DataType.Zero()
		}

		if reflect.DeepEqual(def.Coerce(value), current) {
			continue
		}

		res.count(store.Set(ctx, key, value), &res.Saved, key)
	}

	return res
}

func (r *Result) count(err error, counter *int, key string) {
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to update setting")

		r.Failed++

		return
	}

	*counter++
}
