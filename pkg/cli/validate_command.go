package cli

import (
	"fmt"
	"os"

	"github.com/flowforge/flowc/pkg/compiler"
	"github.com/flowforge/flowc/pkg/console"
	"github.com/flowforge/flowc/pkg/logger"
	"github.com/spf13/cobra"
)

var validateCommandLog = logger.New("cli:validate_command")

// ValidationResult holds the validation outcome for one definition file.
type ValidationResult struct {
	Workflow string                  `json:"workflow"`
	Valid    bool                    `json:"valid"`
	Errors   []compiler.CompileError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate workflow definitions without generating code",
		Long: `Validate one or more workflow definition files without writing any
artifacts.

Every violation in a definition is reported at once: structural problems
(missing trigger, cycles, disconnected nodes, dangling edges) and
configuration problems (malformed durations, inconsistent retry policies).

With no arguments, every definition file in the definitions directory is
validated.

Examples:
  flowc validate                 # Validate all definitions in ./workflows
  flowc validate order.json      # Validate a single definition
  flowc validate --json          # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			jsonOut, _ := cmd.Flags().GetBool("json")
			definitionsDir, _ := cmd.Flags().GetString("dir")
			return RunValidate(args, definitionsDir, jsonOut, verbose)
		},
	}

	cmd.Flags().String("dir", "workflows", "Directory holding definition files")
	addJSONFlag(cmd)

	return cmd
}

// RunValidate validates the given definition files and reports the results.
// It returns an error when any definition is invalid, so validation failures
// surface as a non-zero exit code.
func RunValidate(files []string, definitionsDir string, jsonOutput, verbose bool) error {
	validateCommandLog.Printf("Running validate: files=%d, dir=%s, json=%v", len(files), definitionsDir, jsonOutput)

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

	results := validateDefinitionFiles(files)

	if jsonOutput {
		out, err := formatValidationOutput(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		for _, result := range results {
			if result.Valid {
				fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(result.Workflow))
				continue
			}
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(
				fmt.Sprintf("%s: %d error(s)", result.Workflow, len(result.Errors))))
			printCompileErrors(result.Workflow, result.Errors)
		}
	}

	invalid := 0
	for _, result := range results {
		if !result.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d definitions failed validation", invalid, len(results))
	}
	if !jsonOutput && verbose {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
			fmt.Sprintf("All %d definitions are valid", len(results))))
	}
	return nil
}

// validateDefinitionFiles runs the compiler over each file, discarding
// artifacts. Load and schema failures count as validation errors so every
// file gets a result entry.
func validateDefinitionFiles(files []string) []ValidationResult {
	c := compiler.NewCompilerWithConfig(compiler.CompilerConfig{})

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		name := console.ToRelativePath(file)

		def, err := compiler.LoadDefinition(file)
		if err != nil {
			results = append(results, ValidationResult{
				Workflow: name,
				Errors: []compiler.CompileError{{
					Kind:    compiler.ErrorKindValidation,
					Message: err.Error(),
				}},
			})
			continue
		}

		result, err := c.Compile(def)
		if err != nil {
			results = append(results, ValidationResult{
				Workflow: name,
				Errors: []compiler.CompileError{{
					Kind:    compiler.ErrorKindValidation,
					Message: err.Error(),
				}},
			})
			continue
		}

		results = append(results, ValidationResult{
			Workflow: name,
			Valid:    result.Success,
			Errors:   result.Errors,
		})
	}
	return results
}
