package ui

import "fmt"

const (
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	ResetColor = "\033[0m" // Reset to default color
)

var MethodColors = map[string]string{
	"GET":    Green,
	"POST":   Blue,
	"PUT":    Cyan,
	"DELETE": Yellow,
	"PATCH":  Magenta,
}

// ColourMethod pads the HTTP method and wraps it in its terminal colour.
func ColourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := MethodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// ColourStatus colours an HTTP status code: red for errors, green otherwise.
func ColourStatus(status int) string {
	if status >= 400 {
		return fmt.Sprintf("%s%d%s", Red, status, ResetColor)
	}
	return fmt.Sprintf("%s%d%s", Green, status, ResetColor)
}
