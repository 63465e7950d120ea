// This file turns definition load failures into position-annotated console
// errors, so a malformed YAML or JSON file reports the offending line with
// surrounding context instead of a bare parser message.

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/flowforge/flowc/pkg/console"
	"github.com/flowforge/flowc/pkg/logger"
)

var definitionErrorLog = logger.New("cli:definition_error")

// extractYAMLErrorPosition extracts line and column information from
// goccy/go-yaml's "[line:column] message" error format. Returns zero
// positions when the error carries no location.
func extractYAMLErrorPosition(err error) (line int, column int, message string) {
	errStr := err.Error()

	start := strings.Index(errStr, "[")
	end := strings.Index(errStr, "]")
	if start < 0 || end <= start {
		return 0, 0, errStr
	}

	location := errStr[start+1 : end]
	rest := strings.TrimSpace(errStr[end+1:])

	parts := strings.Split(location, ":")
	if len(parts) != 2 {
		return 0, 0, errStr
	}
	line, lineErr := strconv.Atoi(strings.TrimSpace(parts[0]))
	column, colErr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if lineErr != nil || colErr != nil || line <= 0 {
		return 0, 0, errStr
	}

	definitionErrorLog.Printf("Extracted error location: line=%d, column=%d", line, column)
	return line, column, rest
}

// formatDefinitionLoadError renders a load failure, attaching the source line
// and its neighbors when the underlying parser reported a position. The
// result is newline-terminated.
func formatDefinitionLoadError(file string, err error) string {
	line, column, message := extractYAMLErrorPosition(err)
	if line == 0 {
		return console.FormatErrorMessage(fmt.Sprintf("%s: %v", console.ToRelativePath(file), err)) + "\n"
	}

	compilerErr := console.CompilerError{
		Position: console.ErrorPosition{
			File:   console.ToRelativePath(file),
			Line:   line,
			Column: column,
		},
		Type:    "error",
		Message: message,
		Context: contextLines(file, line),
	}
	return console.FormatError(compilerErr)
}

// contextLines returns the reported line with its neighbors when both exist,
// or the line alone, keeping the reported line centered in the rendering.
func contextLines(file string, line int) []string {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if line < 1 || line > len(lines) {
		return nil
	}

	if line > 1 && line < len(lines) {
		return lines[line-2 : line+1]
	}
	return lines[line-1 : line]
}
