// This file provides the orchestration layer for definition compilation.
//
// It coordinates loading definition files, invoking the compiler, and writing
// the generated artifacts to disk, keeping the cobra command wiring in
// compile_command.go free of file-handling logic.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/flowforge/flowc/pkg/compiler"
	"github.com/flowforge/flowc/pkg/console"
	"github.com/flowforge/flowc/pkg/logger"
	"github.com/sourcegraph/conc/pool"
)

var compileOrchestratorLog = logger.New("cli:compile_orchestrator")

// Generated artifact file names, in emission order.
var artifactFileNames = []string{
	"workflow.ts",
	"activities.ts",
	"worker.ts",
	"package.json",
	"tsconfig.json",
}

// CompilationStats tracks the outcome of a batch compilation run.
type CompilationStats struct {
	Total           int
	Errors          int
	FailedWorkflows []string

	mu sync.Mutex
}

func (s *CompilationStats) recordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Total++
}

func (s *CompilationStats) recordFailure(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Total++
	s.Errors++
	s.FailedWorkflows = append(s.FailedWorkflows, filepath.Base(file))
}

// workflowIDClaims tracks which definition file owns each workflow id, so
// two files carrying the same id cannot race their artifacts into one
// output directory.
type workflowIDClaims struct {
	mu    sync.Mutex
	owner map[string]string
}

// claim records file as the owner of id. Re-claiming an id from its owning
// file is allowed (watch mode recompiles files in place); a claim from a
// different file is an error. A file that changes its id releases the old one.
func (c *workflowIDClaims) claim(id, file string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.owner == nil {
		c.owner = make(map[string]string)
	}
	if prev, ok := c.owner[id]; ok && prev != file {
		return fmt.Errorf("workflow id %q is already generated from %s", id, filepath.Base(prev))
	}
	for claimedID, owner := range c.owner {
		if owner == file && claimedID != id {
			delete(c.owner, claimedID)
		}
	}
	c.owner[id] = file
	return nil
}

// release drops every claim held by file.
func (c *workflowIDClaims) release(file string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, owner := range c.owner {
		if owner == file {
			delete(c.owner, id)
		}
	}
}

// compileDefinitionFiles compiles every definition file into outputDir, one
// subdirectory per workflow id. Files compile independently, so the batch runs
// on a bounded worker pool. Per-file failures are reported and counted, never
// aborting the rest of the batch.
func compileDefinitionFiles(c *compiler.Compiler, files []string, outputDir string, verbose bool) (*CompilationStats, error) {
	compileOrchestratorLog.Printf("Compiling %d definition file(s) into %s", len(files), outputDir)

	stats := &CompilationStats{}
	if len(files) == 0 {
		return stats, nil
	}

	claims := &workflowIDClaims{}
	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for _, file := range files {
		p.Go(func() {
			if _, err := compileSingleDefinition(c, file, outputDir, claims, verbose); err != nil {
				fmt.Fprint(os.Stderr, formatDefinitionLoadError(file, err))
				stats.recordFailure(file)
				return
			}
			stats.recordSuccess()
		})
	}
	p.Wait()

	compileOrchestratorLog.Printf("Batch finished: total=%d, errors=%d", stats.Total, stats.Errors)
	return stats, nil
}

// compileSingleDefinition loads, compiles, and writes one definition. It
// returns the workflow id of the generated artifact directory on success.
// A nil claims skips duplicate-id tracking.
func compileSingleDefinition(c *compiler.Compiler, file, outputDir string, claims *workflowIDClaims, verbose bool) (string, error) {
	def, err := compiler.LoadDefinition(file)
	if err != nil {
		return "", err
	}

	// The id becomes a directory name under outputDir, so it is constrained
	// beyond what the definition schema requires.
	if err := ValidateWorkflowID(def.ID); err != nil {
		return "", err
	}

	result, err := c.Compile(def)
	if err != nil {
		return "", err
	}
	if !result.Success {
		printCompileErrors(file, result.Errors)
		return "", fmt.Errorf("compilation failed with %d error(s)", len(result.Errors))
	}

	// Claim the output directory before writing: two files with the same id
	// would otherwise overwrite each other, last writer winning silently.
	if claims != nil {
		if err := claims.claim(def.ID, file); err != nil {
			return "", err
		}
	}

	targetDir := filepath.Join(outputDir, def.ID)
	if err := writeArtifacts(targetDir, result.Artifacts); err != nil {
		return "", err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf(
			"Compiled %s -> %s (%d nodes, %s)",
			console.ToRelativePath(file), console.ToRelativePath(targetDir),
			result.Metadata.NodeCount, result.Metadata.Duration.Round(time.Millisecond))))
		if len(result.Metadata.Patterns) > 0 {
			fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(
				fmt.Sprintf("Patterns: %v", result.Metadata.Patterns)))
		}
	}
	return def.ID, nil
}

// printCompileErrors surfaces every collected violation, each with its
// suggestion when one exists.
func printCompileErrors(file string, errs []compiler.CompileError) {
	for i := range errs {
		e := &errs[i]
		head := fmt.Sprintf("%s: %s error", console.ToRelativePath(file), e.Kind)
		if e.NodeID != "" {
			head += fmt.Sprintf(" at node '%s'", e.NodeID)
		}
		if e.EdgeID != "" {
			head += fmt.Sprintf(" at edge '%s'", e.EdgeID)
		}
		head += ": " + e.Message

		if e.Suggestion != "" {
			fmt.Fprint(os.Stderr, console.FormatErrorWithSuggestions(head, []string{e.Suggestion}))
			continue
		}
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(head))
	}
}

// writeArtifacts writes the five generated files into dir, creating it as
// needed. Files are written in a fixed order so partial failures are easy to
// diagnose.
func writeArtifacts(dir string, artifacts *compiler.GeneratedArtifacts) error {
	compileOrchestratorLog.Printf("Writing artifacts to %s", dir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	contents := map[string]string{
		"workflow.ts":   artifacts.WorkflowCode,
		"activities.ts": artifacts.ActivitiesCode,
		"worker.ts":     artifacts.WorkerCode,
		"package.json":  artifacts.PackageManifest,
		"tsconfig.json": artifacts.BuildConfig,
	}
	for _, name := range artifactFileNames {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents[name]), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// printCompilationSummary reports the outcome of a batch run.
func printCompilationSummary(stats *CompilationStats) {
	if stats.Errors == 0 {
		if stats.Total == 1 {
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Compiled 1 workflow"))
		} else {
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
				fmt.Sprintf("Compiled %d workflows", stats.Total)))
		}
		return
	}

	fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf(
		"Compiled %d of %d workflows (%d failed)",
		stats.Total-stats.Errors, stats.Total, stats.Errors)))
	for _, failed := range stats.FailedWorkflows {
		fmt.Fprintf(os.Stderr, "  ✗ %s\n", failed)
	}
}

// findDefinitionFiles expands a directory into the definition files it holds.
func findDefinitionFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to find definition files: %w", err)
		}
		files = append(files, matches...)
	}
	return files, nil
}
