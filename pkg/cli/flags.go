package cli

import "github.com/spf13/cobra"

// addJSONFlag registers the shared --json output flag.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
}
