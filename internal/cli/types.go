package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List record types and the profiles they have key sets for",
		Args:  cobra.NoArgs,
		RunE:  runTypes,
	}

	RootCmd.AddCommand(cmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), app.RecordTypes())
}
