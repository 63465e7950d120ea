package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flowforge/flowc/pkg/logger"
)

var errorsLog = logger.New("compiler:errors")

// ErrInvalidDefinition marks a contract violation by the integrating caller:
// a nil or structurally malformed WorkflowDefinition. It is returned as a Go
// error from Compile rather than collected as a validation entry, because it
// represents a programmer error, not user input.
var ErrInvalidDefinition = errors.New("invalid workflow definition")

// CompileErrorKind distinguishes user-facing error categories.
type CompileErrorKind string

const (
	// ErrorKindValidation covers structural graph violations: missing or
	// duplicate trigger, cycles, disconnected nodes, dangling edges, unknown
	// node types or component references.
	ErrorKindValidation CompileErrorKind = "validation"
	// ErrorKindConfiguration covers malformed node configuration: bad
	// duration strings, inconsistent retry-policy fields.
	ErrorKindConfiguration CompileErrorKind = "configuration"
)

// CompileError is one independent user-facing violation. Every error the
// Validating phase can detect is collected and returned together so a
// consuming editor can surface all problems at once.
type CompileError struct {
	Kind CompileErrorKind `json:"kind"`
	// NodeID attributes the error to a node where applicable. Empty for
	// workflow-level errors such as a missing trigger.
	NodeID string `json:"nodeId,omitempty"`
	// EdgeID attributes the error to an edge where applicable, such as the
	// edge closing a cycle or an edge with a dangling endpoint.
	EdgeID     string `json:"edgeId,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s error", e.Kind)
	if e.NodeID != "" {
		fmt.Fprintf(&b, " at node '%s'", e.NodeID)
	}
	if e.EdgeID != "" {
		fmt.Fprintf(&b, " at edge '%s'", e.EdgeID)
	}
	fmt.Fprintf(&b, ": %s", e.Message)

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\nSuggestion: %s", e.Suggestion)
	}

	return b.String()
}

// NewValidationError creates a structural validation error attributed to a
// node (nodeID may be empty for workflow-level violations).
func NewValidationError(nodeID, message, suggestion string) *CompileError {
	errorsLog.Printf("Creating validation error: node=%s, message=%s", nodeID, message)
	return &CompileError{
		Kind:       ErrorKindValidation,
		NodeID:     nodeID,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewEdgeValidationError creates a structural validation error attributed to
// an edge.
func NewEdgeValidationError(edgeID, message, suggestion string) *CompileError {
	errorsLog.Printf("Creating edge validation error: edge=%s, message=%s", edgeID, message)
	return &CompileError{
		Kind:       ErrorKindValidation,
		EdgeID:     edgeID,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewConfigurationError creates a node-configuration error.
func NewConfigurationError(nodeID, message, suggestion string) *CompileError {
	errorsLog.Printf("Creating configuration error: node=%s, message=%s", nodeID, message)
	return &CompileError{
		Kind:       ErrorKindConfiguration,
		NodeID:     nodeID,
		Message:    message,
		Suggestion: suggestion,
	}
}
