package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultFallbackMessage is used when an error carries nothing displayable.
const DefaultFallbackMessage = "Operation failed"

// MaxUnwrapDepth bounds how many {"detail": ...} envelopes are unwrapped before
// the remaining value is serialized as is.
const MaxUnwrapDepth = 10

// FormatValidationErrors converts a backend error detail into one display
// string. detail may be a string, a list of validation errors (typed or decoded
// JSON), an envelope object with a "detail" key, or raw JSON bytes.
func FormatValidationErrors(detail any) string {
	return formatDetail(detail, 0)
}

func formatDetail(detail any, depth int) string {
	switch d := detail.(type) {
	case string:
		return d
	case json.RawMessage:
		return formatRaw(d, depth)
	case []byte:
		return formatRaw(d, depth)
	case []ValidationError:
		lines := make([]string, 0, len(d))
		for _, ve := range d {
			lines = append(lines, ve.String())
		}
		return strings.Join(lines, "\n")
	case []any:
		lines := make([]string, 0, len(d))
		for _, element := range d {
			lines = append(lines, formatElement(element))
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		if inner, ok := d["detail"]; ok && depth < MaxUnwrapDepth {
			return formatDetail(inner, depth+1)
		}
	}
	return serialize(detail)
}

func formatRaw(raw []byte, depth int) string {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return formatDetail(decoded, depth)
}

func formatElement(element any) string {
	if ve, ok := decodeValidationError(element); ok {
		return ve.String()
	}
	return defaultFieldLabel + ": " + serialize(element)
}

// serialize is the fallback of last resort. Values encoding/json rejects
// (cycles, channels, funcs) render as their Go type.
func serialize(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(raw)
}

// HandleAPIError picks the best message for err, checking in order the
// response body "detail", the response body "message", the error's own
// message and finally fallback.
func HandleAPIError(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if detail, ok := httpErr.field("detail"); ok && truthy(detail) {
			return FormatValidationErrors(detail)
		}
		if message, ok := httpErr.field("message"); ok && truthy(message) {
			return renderScalar(message)
		}
		if httpErr.Message != "" {
			return httpErr.Message
		}
		return fallback
	}

	if message := err.Error(); message != "" {
		return message
	}
	return fallback
}
