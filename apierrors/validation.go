package apierrors

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/panel-console/internal/utils"
)

// Validation error kinds produced by the backend.
const (
	KindStringTooShort  = "string_too_short"
	KindStringTooLong   = "string_too_long"
	KindMissing         = "missing"
	KindValueError      = "value_error"
	KindTypeError       = "type_error"
	KindDatetimeParsing = "datetime_parsing"
	KindIntParsing      = "int_parsing"
	KindBoolParsing     = "bool_parsing"
	KindJSONInvalid     = "json_invalid"
)

const (
	locationSeparator = " -> "
	defaultFieldLabel = "Field"
)

// ValidationError is one structured per-field error from a failed request.
type ValidationError struct {
	Type  string         `json:"type"`
	Loc   []any          `json:"loc"`
	Msg   string         `json:"msg"`
	Ctx   map[string]any `json:"ctx,omitempty"`
	Input any            `json:"input,omitempty"`
}

// Field renders the location without its first segment (the request part,
// usually "body"), joined with " -> ". An empty remainder is "Field".
func (ve ValidationError) Field() string {
	if len(ve.Loc) <= 1 {
		return defaultFieldLabel
	}
	segments := make([]string, 0, len(ve.Loc)-1)
	for _, segment := range ve.Loc[1:] {
		segments = append(segments, renderScalar(segment))
	}
	field := strings.Join(segments, locationSeparator)
	if field == "" {
		return defaultFieldLabel
	}
	return field
}

// String renders the human-readable line for the error.
func (ve ValidationError) String() string {
	field := ve.Field()

	switch ve.Type {
	case KindStringTooShort:
		return fmt.Sprintf("%s: Must be at least %s characters (got %d)", field, ve.ctxValue("min_length"), inputLength(ve.Input))
	case KindStringTooLong:
		return fmt.Sprintf("%s: Must be at most %s characters", field, ve.ctxValue("max_length"))
	case KindMissing:
		return field + ": This field is required"
	case KindValueError:
		return field + ": " + ve.Msg
	case KindTypeError:
		return field + ": Invalid type - " + ve.Msg
	case KindDatetimeParsing:
		return field + ": Invalid date format. Please use date picker or format: YYYY-MM-DD HH:MM:SS"
	case KindIntParsing:
		return field + ": Must be a valid number"
	case KindBoolParsing:
		return field + ": Must be true or false"
	case KindJSONInvalid:
		return field + ": Invalid JSON format"
	default:
		return field + ": " + ve.Msg
	}
}

// ctxValue returns ctx[key], or "0" when it is absent or falsy.
func (ve ValidationError) ctxValue(key string) string {
	v, ok := ve.Ctx[key]
	if !ok || !truthy(v) {
		return "0"
	}
	return renderScalar(v)
}

func inputLength(input any) int {
	s, ok := input.(string)
	if !ok {
		return 0
	}
	return utf8.RuneCountInString(s)
}

// decodeValidationError converts a list element into a ValidationError.
// Elements that are not JSON objects do not decode.
func decodeValidationError(element any) (ValidationError, bool) {
	switch v := element.(type) {
	case ValidationError:
		return v, true
	case *ValidationError:
		if v == nil {
			return ValidationError{}, false
		}
		return *v, true
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return ValidationError{}, false
		}
		var ve ValidationError
		if err := json.Unmarshal(raw, &ve); err != nil {
			return ValidationError{}, false
		}
		return ve, true
	}
	return ValidationError{}, false
}

// renderScalar renders a JSON value for display. null is empty and
// objects or arrays are serialized.
func renderScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if n, ok := utils.FormatNumber(v); ok {
		return n
	}
	return serialize(v)
}

// truthy follows JavaScript truthiness for JSON values.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}
