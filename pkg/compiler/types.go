// Package compiler translates visual workflow definitions (directed graphs of
// typed nodes produced by the canvas editor) into executable orchestration
// artifacts for the Temporal TypeScript runtime: a workflow entry point,
// activity stubs, a worker bootstrap, and dependency/build manifests.
//
// Compilation is a synchronous pure computation. Every invocation allocates
// its own traversal state and result, so concurrent calls need no
// coordination. Validation collects every independent structural violation
// before failing; a failed compilation never returns partial artifacts.
package compiler

import "time"

// NodeType is the closed set of node kinds the editor can place on the
// canvas. The validator and emitters switch exhaustively over these values,
// so adding or removing a kind is a compile-time visible change.
type NodeType string

const (
	NodeTypeTrigger       NodeType = "trigger"
	NodeTypeActivity      NodeType = "activity"
	NodeTypeAgent         NodeType = "agent"
	NodeTypeSignal        NodeType = "signal"
	NodeTypeCondition     NodeType = "condition"
	NodeTypeRetry         NodeType = "retry"
	NodeTypeChildWorkflow NodeType = "child-workflow"
	NodeTypeEnd           NodeType = "end"
)

// Valid reports whether t is a member of the closed node-type vocabulary.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeTrigger, NodeTypeActivity, NodeTypeAgent, NodeTypeSignal,
		NodeTypeCondition, NodeTypeRetry, NodeTypeChildWorkflow, NodeTypeEnd:
		return true
	}
	return false
}

// RetryStrategy selects how a failed activity is retried.
type RetryStrategy string

const (
	// RetryNone disables retries: the first failure is terminal.
	RetryNone RetryStrategy = "none"
	// RetryFailAfterX retries up to MaxAttempts, then fails the workflow.
	RetryFailAfterX RetryStrategy = "fail-after-x"
	// RetryKeepTrying retries without an attempt bound until success or
	// external cancellation.
	RetryKeepTrying RetryStrategy = "keep-trying"
	// RetryExponentialBackoff retries with exponentially growing intervals
	// capped at MaxInterval, up to MaxAttempts.
	RetryExponentialBackoff RetryStrategy = "exponential-backoff"
)

// RetryPolicy is the declarative retry specification attached to activity
// nodes by the editor. Interval fields are duration strings ("30s", "1m");
// the original strings are preserved into generated code because the target
// runtime represents durations as strings.
type RetryPolicy struct {
	Strategy           RetryStrategy `json:"strategy"`
	MaxAttempts        int           `json:"maxAttempts,omitempty"`
	InitialInterval    string        `json:"initialInterval,omitempty"`
	MaxInterval        string        `json:"maxInterval,omitempty"`
	BackoffCoefficient float64       `json:"backoffCoefficient,omitempty"`
}

// NodeData is the payload the editor stores on a node.
type NodeData struct {
	// Label is the human-readable node title shown on the canvas.
	Label string `json:"label,omitempty"`
	// ActivityName references the activity/component implementation the node
	// invokes. Required for activity and agent nodes; the generated stub and
	// the entry-point call site both use this symbol.
	ActivityName string `json:"activityName,omitempty"`
	// Timeout is the per-node start-to-close timeout as a duration string.
	Timeout string `json:"timeout,omitempty"`
	// Retry is the optional declarative retry policy. Absent means "none".
	Retry *RetryPolicy `json:"retry,omitempty"`
}

// Node is a typed unit in the workflow graph.
type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
	Data NodeData `json:"data"`
}

// Edge is a directed connection defining execution order between two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Variable is a workflow-level variable declared in the editor.
type Variable struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
}

// WorkflowSettings carries workflow-level configuration.
type WorkflowSettings struct {
	// Timeout is the workflow-level execution timeout as a duration string.
	Timeout string `json:"timeout,omitempty"`
	// TaskQueue is the named queue the generated worker polls and the
	// generated workflow is dispatched on.
	TaskQueue string `json:"taskQueue,omitempty"`
	// Description is embedded as an annotation when comments are enabled.
	Description string `json:"description,omitempty"`
	// Version is threaded into the generated dependency manifest.
	Version string `json:"version,omitempty"`
}

// WorkflowDefinition is the graph the editor produces. The compiler only
// reads it; ownership stays with the caller.
type WorkflowDefinition struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Nodes     []Node           `json:"nodes"`
	Edges     []Edge           `json:"edges"`
	Variables []Variable       `json:"variables,omitempty"`
	Settings  WorkflowSettings `json:"settings"`
}

// CompilerConfig controls generation behavior.
type CompilerConfig struct {
	// IncludeComments toggles human-readable annotations in generated text.
	// It never changes the behavior of the generated program.
	IncludeComments bool `json:"includeComments"`
	// StrictMode threads into the generated build configuration's strictness
	// flag.
	StrictMode bool `json:"strictMode"`
}

// GeneratedArtifacts holds the five generated source texts.
type GeneratedArtifacts struct {
	// WorkflowCode is the entry-point module (workflow.ts). Its exported
	// function name equals WorkflowDefinition.Name exactly.
	WorkflowCode string `json:"workflowCode"`
	// ActivitiesCode contains one exported stub per distinct activity
	// reference (activities.ts).
	ActivitiesCode string `json:"activitiesCode"`
	// WorkerCode is the runtime bootstrap (worker.ts).
	WorkerCode string `json:"workerCode"`
	// PackageManifest is the dependency manifest (package.json).
	PackageManifest string `json:"packageManifest"`
	// BuildConfig is the type-check configuration (tsconfig.json).
	BuildConfig string `json:"buildConfig"`
}

// CompilationMetadata describes a compilation run for observability. It never
// influences generated semantics.
type CompilationMetadata struct {
	// CompilationID uniquely identifies this run. It is not part of the
	// deterministic artifact set.
	CompilationID string `json:"compilationId"`
	NodeCount     int    `json:"nodeCount"`
	EdgeCount     int    `json:"edgeCount"`
	// Duration is the wall-clock compilation time.
	Duration time.Duration `json:"duration"`
	// Patterns lists recognized structural shapes ("linear-chain:5",
	// "fan-out", ...).
	Patterns []string `json:"patterns,omitempty"`
}

// CompilationResult is the aggregate compiler output. It is produced fresh
// per call, never mutated after return, and holds no reference back to the
// input graph. Artifacts is nil whenever Success is false.
type CompilationResult struct {
	Success   bool                `json:"success"`
	Artifacts *GeneratedArtifacts `json:"artifacts,omitempty"`
	Errors    []CompileError      `json:"errors,omitempty"`
	Metadata  CompilationMetadata `json:"metadata"`
}
