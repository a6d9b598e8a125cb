package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output is the writer used for user-facing output. Replaced in tests.
var Output io.Writer = os.Stdout

// Header prints a section header with a separator line.
func Header(title string) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(Output, headerStyle.Render(line))
	fmt.Fprintln(Output, headerStyle.Render(title))
	fmt.Fprintln(Output, headerStyle.Render(line))
}

// OK prints a success line.
func OK(format string, args ...any) {
	fmt.Fprintf(Output, "%s %s\n", okStyle.Render(checkMark), fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	fmt.Fprintf(Output, "%s %s\n", warnStyle.Render(warnMark), fmt.Sprintf(format, args...))
}

// Fail prints an error line.
func Fail(format string, args ...any) {
	fmt.Fprintf(Output, "%s %s\n", failStyle.Render(crossMark), fmt.Sprintf(format, args...))
}

// Info prints a plain line.
func Info(format string, args ...any) {
	fmt.Fprintf(Output, "%s\n", fmt.Sprintf(format, args...))
}

// Detail prints a dimmed key/value line, indented.
func Detail(key, value string) {
	fmt.Fprintf(Output, "  %s %s\n", dimStyle.Render(key+":"), value)
}
