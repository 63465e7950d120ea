// This file provides output formatting functions for workflow compilation.
//
// It formats compilation and validation results for display, keeping the
// command orchestrators focused on coordination.

package cli

import (
	"fmt"

	"github.com/flowforge/flowc/pkg/logger"
	"github.com/goccy/go-json"
)

var compileOutputFormatterLog = logger.New("cli:compile_output_formatter")

// formatValidationOutput formats validation results as JSON.
func formatValidationOutput(results []ValidationResult) (string, error) {
	compileOutputFormatterLog.Printf("Formatting validation output for %d workflow(s)", len(results))

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(jsonBytes), nil
}
