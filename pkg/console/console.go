// Package console provides formatted terminal output for the flowc CLI.
//
// It renders compiler diagnostics in a compiler-style "file:line:col" format
// with source context, plus status messages (success, info, warning, error)
// and simple tables. Styling uses lipgloss and degrades to plain text when
// stderr is not a terminal or when NO_COLOR is set.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/term"
)

// ErrorPosition identifies where in a source file an error occurred.
type ErrorPosition struct {
	File   string
	Line   int
	Column int
}

// CompilerError is a diagnostic with position, severity, and optional
// surrounding source context.
type CompilerError struct {
	Position ErrorPosition
	Type     string // "error" or "warning"
	Message  string
	Context  []string // Source lines surrounding the error position
	Hint     string
}

// TableConfig describes a table for RenderTable.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// isTerminal reports whether stderr is attached to a terminal. Styled output
// and cursor movement are suppressed otherwise.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal()
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// ToRelativePath converts an absolute path to a path relative to the current
// working directory when possible. Relative paths are returned unchanged.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// FormatError renders a CompilerError in compiler style:
//
//	file.json:5:10: error: message
//	   4 | previous line
//	   5 | offending line
//	   6 | next line
func FormatError(err CompilerError) string {
	var b strings.Builder

	file := ToRelativePath(err.Position.File)
	location := fmt.Sprintf("%s:%d:%d:", file, err.Position.Line, err.Position.Column)

	severity := err.Type
	if severity == "" {
		severity = "error"
	}
	style := errorStyle
	if severity == "warning" {
		style = warningStyle
	}

	fmt.Fprintf(&b, "%s %s %s\n", location, render(style, severity+":"), err.Message)

	if len(err.Context) > 0 {
		// Context lines are numbered around the error position
		start := err.Position.Line - len(err.Context)/2
		if start < 1 {
			start = 1
		}
		for i, line := range err.Context {
			fmt.Fprintf(&b, "  %3d | %s\n", start+i, line)
		}
	}

	return b.String()
}

// FormatErrorWithSuggestions renders an error message followed by a bulleted
// suggestion list.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", render(errorStyle, "✗"), message)
	if len(suggestions) > 0 {
		b.WriteString("Suggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "  • %s\n", s)
		}
	}
	return b.String()
}

// FormatErrorMessage formats an error status line.
func FormatErrorMessage(message string) string {
	return fmt.Sprintf("%s %s", render(errorStyle, "✗"), message)
}

// FormatWarningMessage formats a warning status line.
func FormatWarningMessage(message string) string {
	return fmt.Sprintf("%s %s", render(warningStyle, "⚠"), message)
}

// FormatSuccessMessage formats a success status line.
func FormatSuccessMessage(message string) string {
	return fmt.Sprintf("%s %s", render(successStyle, "✓"), message)
}

// FormatInfoMessage formats an informational status line.
func FormatInfoMessage(message string) string {
	return fmt.Sprintf("%s %s", render(infoStyle, "ℹ"), message)
}

// FormatVerboseMessage formats a low-priority detail line shown only in
// verbose mode.
func FormatVerboseMessage(message string) string {
	return render(verboseStyle, "  "+message)
}

// RenderTable renders a fixed-width text table. Returns the empty string when
// the config has no headers and no rows.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 && len(config.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(config.Headers))
	for i, h := range config.Headers {
		widths[i] = len(h)
	}
	rows := config.Rows
	if config.ShowTotal && len(config.TotalRow) > 0 {
		rows = append(append([][]string{}, rows...), config.TotalRow)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if config.Title != "" {
		b.WriteString(render(headerStyle, config.Title))
		b.WriteString("\n")
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(widths) {
				fmt.Fprintf(&b, "%-*s", widths[i], cell)
			} else {
				b.WriteString(cell)
			}
		}
		b.WriteString("\n")
	}

	writeRow(config.Headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range config.Rows {
		writeRow(row)
	}
	if config.ShowTotal && len(config.TotalRow) > 0 {
		writeRow(config.TotalRow)
	}

	return b.String()
}

// RenderTableAsJSON renders the table rows as a JSON array of objects keyed
// by header name. Header names are lowercased with spaces replaced by
// underscores.
func RenderTableAsJSON(config TableConfig) (string, error) {
	keys := make([]string, len(config.Headers))
	for i, h := range config.Headers {
		keys[i] = strings.ReplaceAll(strings.ToLower(h), " ", "_")
	}

	items := make([]map[string]string, 0, len(config.Rows))
	for _, row := range config.Rows {
		item := make(map[string]string, len(keys))
		for i, key := range keys {
			if i < len(row) {
				item[key] = row[i]
			}
		}
		items = append(items, item)
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal table: %w", err)
	}
	return string(out), nil
}

// FormatFileSize renders a byte count in a compact human-readable form.
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGT"[exp])
}

// MoveCursorUp moves the cursor up n lines. No-op outside a terminal.
func MoveCursorUp(lines int) {
	if lines <= 0 || !isTerminal() {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[%dA", lines)
}

// MoveCursorDown moves the cursor down n lines. No-op outside a terminal.
func MoveCursorDown(lines int) {
	if lines <= 0 || !isTerminal() {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[%dB", lines)
}

// ClearLine clears the current line. No-op outside a terminal.
func ClearLine() {
	if !isTerminal() {
		return
	}
	fmt.Fprint(os.Stderr, "\033[2K\r")
}
