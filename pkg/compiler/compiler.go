package compiler

import (
	"fmt"
	"regexp"
	"time"

	"github.com/flowforge/flowc/pkg/logger"
	"github.com/google/uuid"
)

var compilerLog = logger.New("compiler:compiler")

// compilePhase labels the orchestrator's state machine for logging:
// Idle → Validating → (Failed | Translating) → Emitting → Done.
type compilePhase string

const (
	phaseValidating  compilePhase = "validating"
	phaseTranslating compilePhase = "translating"
	phaseEmitting    compilePhase = "emitting"
	phaseFailed      compilePhase = "failed"
	phaseDone        compilePhase = "done"
)

// entryPointNameRegex constrains workflow names to valid generated symbols.
// The entry-point function name equals the workflow name exactly, so the name
// must be a legal identifier in the generated language.
var entryPointNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Compiler translates WorkflowDefinitions into CompilationResults. It holds
// only immutable configuration, so a single Compiler is safe for concurrent
// use; every Compile call allocates its own traversal state.
type Compiler struct {
	config CompilerConfig
}

// NewCompiler creates a compiler with default configuration: comments
// enabled, strict mode disabled.
func NewCompiler() *Compiler {
	return NewCompilerWithConfig(CompilerConfig{IncludeComments: true})
}

// NewCompilerWithConfig creates a compiler with explicit configuration.
func NewCompilerWithConfig(config CompilerConfig) *Compiler {
	return &Compiler{config: config}
}

// Config returns the compiler's configuration.
func (c *Compiler) Config() CompilerConfig {
	return c.config
}

// Compile translates a workflow definition into orchestration artifacts.
//
// Compilation is all-or-nothing: any validation or configuration error
// produces a result with Success=false, the full error list, and no
// artifacts. Those errors are data, not Go errors. The returned error is
// non-nil only for programmer errors — a nil or structurally malformed
// definition supplied by the integrating caller — and wraps
// ErrInvalidDefinition.
func (c *Compiler) Compile(def *WorkflowDefinition) (*CompilationResult, error) {
	start := time.Now()

	if def == nil {
		return nil, fmt.Errorf("%w: definition is nil", ErrInvalidDefinition)
	}
	if def.ID == "" {
		return nil, fmt.Errorf("%w: definition has no id", ErrInvalidDefinition)
	}
	if def.Nodes == nil {
		return nil, fmt.Errorf("%w: definition has no node list", ErrInvalidDefinition)
	}

	compilerLog.Printf("Compiling workflow %q (%s): %d nodes, %d edges",
		def.Name, def.ID, len(def.Nodes), len(def.Edges))

	result := &CompilationResult{
		Metadata: CompilationMetadata{
			CompilationID: uuid.NewString(),
			NodeCount:     len(def.Nodes),
			EdgeCount:     len(def.Edges),
		},
	}

	fail := func(errs []*CompileError) *CompilationResult {
		compilerLog.Printf("Compilation failed (phase=%s): %d error(s)", phaseFailed, len(errs))
		result.Success = false
		result.Errors = make([]CompileError, 0, len(errs))
		for _, e := range errs {
			result.Errors = append(result.Errors, *e)
		}
		result.Metadata.Duration = time.Since(start)
		return result
	}

	// Validating: collect every independent structural violation.
	compilerLog.Printf("Phase: %s", phaseValidating)
	g, errs := buildGraphIndex(def.Nodes, def.Edges)
	errs = append(errs, g.validateTrigger()...)
	errs = append(errs, g.validateComponentReferences()...)
	errs = append(errs, g.validateConnectivity()...)
	errs = append(errs, g.validateAcyclic()...)
	errs = append(errs, c.validateSettings(def)...)
	if len(errs) > 0 {
		return fail(errs), nil
	}

	// Translating: resolve per-node retry policies and timeouts. All
	// configuration problems are collected before failing.
	compilerLog.Printf("Phase: %s", phaseTranslating)
	nodeConfigs, cfgErrs := c.translateNodeConfigs(def)
	if len(cfgErrs) > 0 {
		return fail(cfgErrs), nil
	}

	// Emitting: pure, deterministic generation over the validated graph.
	compilerLog.Printf("Phase: %s", phaseEmitting)
	ctx := &emitContext{
		def:         def,
		config:      c.config,
		graph:       g,
		order:       g.topologicalOrder(),
		nodeConfigs: nodeConfigs,
		proxyNames:  buildProxyNames(def.Nodes),
	}

	manifest, err := emitPackageManifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	tsconfig, err := emitBuildConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	result.Artifacts = &GeneratedArtifacts{
		WorkflowCode:    emitWorkflow(ctx),
		ActivitiesCode:  emitActivities(ctx),
		WorkerCode:      emitWorker(ctx),
		PackageManifest: manifest,
		BuildConfig:     tsconfig,
	}
	result.Success = true
	result.Metadata.Patterns = detectPatterns(g, ctx.order)
	result.Metadata.Duration = time.Since(start)

	compilerLog.Printf("Phase: %s (duration=%s)", phaseDone, result.Metadata.Duration)
	return result, nil
}

// validateSettings checks workflow-level configuration: the entry-point name
// and the workflow timeout.
func (c *Compiler) validateSettings(def *WorkflowDefinition) []*CompileError {
	var errs []*CompileError

	if !entryPointNameRegex.MatchString(def.Name) {
		errs = append(errs, NewConfigurationError(
			"",
			fmt.Sprintf("workflow name %q is not usable as a generated entry-point symbol", def.Name),
			"Use a name starting with a letter or underscore, containing only letters, digits, and underscores",
		))
	}

	if timeout := def.Settings.Timeout; timeout != "" {
		if _, err := ParseDuration(timeout); err != nil {
			errs = append(errs, NewConfigurationError(
				"",
				fmt.Sprintf("invalid workflow timeout: %v", err),
				"Use a duration of the form <integer><unit>, e.g. \"5m\"",
			))
		}
	}

	return errs
}

// translateNodeConfigs resolves the timeout and retry descriptor of every
// activity-bearing node. Exhaustive over the node-type vocabulary.
func (c *Compiler) translateNodeConfigs(def *WorkflowDefinition) (map[string]nodeConfig, []*CompileError) {
	configs := make(map[string]nodeConfig, len(def.Nodes))
	var errs []*CompileError

	for _, node := range def.Nodes {
		switch node.Type {
		case NodeTypeActivity, NodeTypeAgent:
			timeout := node.Data.Timeout
			if timeout == "" {
				timeout = defaultActivityTimeout
			} else if _, err := ParseDuration(timeout); err != nil {
				errs = append(errs, NewConfigurationError(
					node.ID,
					fmt.Sprintf("invalid timeout: %v", err),
					"Use a duration of the form <integer><unit>, e.g. \"30s\"",
				))
			}

			retry, retryErrs := ResolveRetryPolicy(node.ID, node.Data.Retry)
			errs = append(errs, retryErrs...)

			configs[node.ID] = nodeConfig{Timeout: timeout, Retry: retry}

		case NodeTypeTrigger, NodeTypeSignal, NodeTypeCondition,
			NodeTypeRetry, NodeTypeChildWorkflow, NodeTypeEnd:
			// No per-node execution configuration to resolve.
		}
	}

	return configs, errs
}
