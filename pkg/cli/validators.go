package cli

import (
	"errors"
	"regexp"

	"github.com/flowforge/flowc/pkg/logger"
)

var validatorsLog = logger.New("cli:validators")

// workflowIDRegex validates workflow ids contain only characters that are
// safe as generated directory names.
var workflowIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateWorkflowID checks whether an id is usable as an artifact directory
// name: non-empty, alphanumerics plus hyphens and underscores.
func ValidateWorkflowID(s string) error {
	validatorsLog.Printf("Validating workflow id: %s", s)
	if s == "" {
		validatorsLog.Print("Workflow id validation failed: empty id")
		return errors.New("workflow id cannot be empty")
	}
	if !workflowIDRegex.MatchString(s) {
		validatorsLog.Printf("Workflow id validation failed: invalid characters in %s", s)
		return errors.New("workflow id must contain only alphanumeric characters, hyphens, and underscores")
	}
	return nil
}
