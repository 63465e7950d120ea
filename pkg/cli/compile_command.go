package cli

import (
	"fmt"
	"os"

	"github.com/flowforge/flowc/pkg/compiler"
	"github.com/flowforge/flowc/pkg/console"
	"github.com/flowforge/flowc/pkg/logger"
	"github.com/spf13/cobra"
)

var compileCommandLog = logger.New("cli:compile_command")

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile workflow definitions into runnable orchestration code",
		Long: `Compile one or more workflow definition files (.json, .yaml, .yml) into
runnable orchestration artifacts.

Each workflow compiles into its own directory under the output directory,
named by the workflow id and containing:

  workflow.ts     the workflow entry point
  activities.ts   activity stubs to implement
  worker.ts       the worker bootstrap
  package.json    pinned runtime dependencies
  tsconfig.json   build configuration

With no arguments, every definition file in the definitions directory is
compiled. Validation reports every problem in the definition at once, not
just the first one found.

Examples:
  flowc compile                          # Compile all definitions in ./workflows
  flowc compile order.json               # Compile a single definition
  flowc compile --output build           # Write artifacts under ./build
  flowc compile --watch                  # Recompile on file changes
  flowc compile --strict --no-comments   # Strict type-checking, bare output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			outputDir, _ := cmd.Flags().GetString("output")
			definitionsDir, _ := cmd.Flags().GetString("dir")
			noComments, _ := cmd.Flags().GetBool("no-comments")
			strict, _ := cmd.Flags().GetBool("strict")
			watch, _ := cmd.Flags().GetBool("watch")
			stats, _ := cmd.Flags().GetBool("stats")
			jsonOut, _ := cmd.Flags().GetBool("json")

			c := compiler.NewCompilerWithConfig(compiler.CompilerConfig{
				IncludeComments: !noComments,
				StrictMode:      strict,
			})

			if watch {
				return watchAndCompileDefinitions(c, definitionsDir, outputDir, verbose)
			}
			return RunCompile(c, args, definitionsDir, outputDir, verbose, stats, jsonOut)
		},
	}

	cmd.Flags().StringP("output", "o", "generated", "Output directory for generated artifacts")
	cmd.Flags().String("dir", "workflows", "Directory holding definition files")
	cmd.Flags().Bool("no-comments", false, "Omit explanatory comments from generated code")
	cmd.Flags().Bool("strict", false, "Enable strict type checking in the generated build configuration")
	cmd.Flags().Bool("watch", false, "Watch the definitions directory and recompile on changes")
	cmd.Flags().Bool("stats", false, "Show a statistics table for the generated artifacts")
	addJSONFlag(cmd)

	return cmd
}

// RunCompile compiles the given definition files, or every file in
// definitionsDir when none are given.
func RunCompile(c *compiler.Compiler, files []string, definitionsDir, outputDir string, verbose, showStats, jsonOutput bool) error {
	compileCommandLog.Printf("Running compile: files=%d, dir=%s, output=%s", len(files), definitionsDir, outputDir)

	if len(files) == 0 {
		found, err := findDefinitionFiles(definitionsDir)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
				fmt.Sprintf("No definition files found in %s", definitionsDir)))
			return nil
		}
		files = found
	}

	stats, err := compileDefinitionFiles(c, files, outputDir, verbose)
	if err != nil {
		return err
	}

	printCompilationSummary(stats)

	if showStats {
		statsList, err := collectAllArtifactStats(outputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
				fmt.Sprintf("Failed to collect artifact stats: %v", err)))
		} else {
			displayStatsTable(statsList, jsonOutput)
		}
	}

	if stats.Errors > 0 {
		return fmt.Errorf("%d of %d workflows failed to compile", stats.Errors, stats.Total)
	}
	return nil
}
