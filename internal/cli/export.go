package cli

import (
	"fmt"

	"github.com/diwise/record-translator/internal/pkg/infrastructure/database"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rows of a database table as records keyed for another profile",
		Long:  "Connects using the POSTGRES_* environment variables and reads every row of a table using the database key set of the record type.",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	cmd.Flags().StringP("type", "t", "", "Record type (required)")
	cmd.Flags().String("table", "", "Table to read rows from (required)")
	cmd.Flags().String("to", "remote", "Profile to key the output for")

	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("table")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	recordType, _ := cmd.Flags().GetString("type")
	table, _ := cmd.Flags().GetString("table")
	toFlag, _ := cmd.Flags().GetString("to")

	to, err := keys.ParseProfile(toFlag)
	if err != nil {
		return err
	}

	if _, err := database.SelectAll(table); err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}

	p, err := database.Connect(ctx, database.LoadConfiguration(ctx))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer p.Close()

	sources := []types.Source{}

	_, err = database.ForEachRow(ctx, p, table, func(src types.Source) error {
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return err
	}

	result, err := app.Translate(ctx, recordType, keys.Database, to, sources)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), result.Records)
}
