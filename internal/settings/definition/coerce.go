package definition

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Coerce converts v to the Go type of t. It is total and idempotent:
//
//	integer -> int, non numeric -> 0
//	float   -> float64, non numeric or non finite -> 0
//	boolean -> bool, "", "0", "false", "off", "no" -> false
//	array   -> decoded json, invalid json or a bare json string -> nil
//	json    -> decoded json, invalid json or a bare json string -> nil
//	string  -> string
func (t DataType) Coerce(v any) any {
	n, _ := t.Normalize()

	switch n {
	case Integer:
		return toInt(v)
	case Float:
		return toFloat(v)
	case Boolean:
		return toBool(v)
	case Array, JSON:
		return toStructured(v)
	default:
		return toString(v)
	}
}

// Encode returns the text persisted for v. v is coerced first, so Encode
// followed by Coerce yields Coerce(v).
func (t DataType) Encode(v any) (string, error) {
	n, _ := t.Normalize()
	c := n.Coerce(v)

	switch n {
	case Integer:
		return strconv.Itoa(c.(int)), nil
	case Float:
		return strconv.FormatFloat(c.(float64), 'f', -1, 64), nil
	case Boolean:
		if c.(bool) {
			return "1", nil
		}

		return "0", nil
	case Array, JSON:
		out, err := json.Marshal(c)
		if err != nil {
			return "", err //nolint:wrapcheck
		}

		return string(out), nil
	default:
		return c.(string), nil
	}
}

// Zero is the coerced form of an absent value.
func (t DataType) Zero() any {
	return t.Coerce(nil)
}

func toInt(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		return val
	case string:
		return parseInt(val)
	case []byte:
		return parseInt(string(val))
	case float64:
		return truncate(val)
	case float32:
		return truncate(float64(val))
	default:
		return cast.ToInt(val)
	}
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)

	if i, err := strconv.ParseInt(s, 10, 0); err == nil {
		return int(i)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncate(f)
	}

	return 0
}

func truncate(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}

func toFloat(v any) float64 {
	var f float64

	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case string:
		f = parseFloat(val)
	case []byte:
		f = parseFloat(string(val))
	default:
		f = cast.ToFloat64(val)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}

	return f
}

func toBool(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return parseBool(val)
	case []byte:
		return parseBool(string(val))
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return cast.ToBool(val)
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

func toStructured(v any) any {
	switch val := v.(type) {
	case string:
		return decodeJSON([]byte(val))
	case []byte:
		return decodeJSON(val)
	case nil:
		return nil
	default:
		// normalize go values to their decoded json shape
		raw, err := json.Marshal(val)
		if err != nil {
			return nil
		}

		return decodeJSON(raw)
	}
}

func decodeJSON(raw []byte) any {
	var out any

	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}

	// a bare json string would be re-parsed on the next pass
	if _, ok := out.(string); ok {
		return nil
	}

	return out
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case []any, map[string]any:
		out, err := json.Marshal(val)
		if err != nil {
			return ""
		}

		return string(out)
	default:
		return cast.ToString(val)
	}
}
