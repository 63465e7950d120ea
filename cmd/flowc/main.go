package main

import (
	"fmt"
	"os"

	"github.com/flowforge/flowc/pkg/cli"
	"github.com/flowforge/flowc/pkg/console"
	"github.com/spf13/cobra"
)

// version is the build version, set via -ldflags at release time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "flowc",
	Short: "Compile visual workflow definitions into runnable orchestration code",
	Long: `flowc compiles workflow definitions authored in a visual editor
(node-and-edge graphs saved as JSON or YAML) into runnable orchestration
artifacts: a workflow entry point, activity stubs, a worker bootstrap, and
the build configuration to go with them.

Definitions are validated exhaustively before any code is generated; every
structural and configuration problem is reported in a single pass.

Set DEBUG=cli:*,compiler:* to see internal debug logging.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the flowc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("flowc version " + version)
	},
}

var (
	compileCmd  = cli.NewCompileCommand()
	validateCmd = cli.NewValidateCommand()
)

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
