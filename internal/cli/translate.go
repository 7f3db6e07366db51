package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/diwise/record-translator/pkg/keyset/container"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate records read from a file or stdin",
		Long:  "Reads a json or yaml document holding one record or a list of records and writes them keyed for another profile.",
		Args:  cobra.NoArgs,
		RunE:  runTranslate,
	}

	cmd.Flags().StringP("type", "t", "", "Record type (required)")
	cmd.Flags().String("from", "", "Profile the input is keyed for (required)")
	cmd.Flags().String("to", "", "Profile to key the output for (required)")
	cmd.Flags().StringP("input", "i", "-", "Input file, - reads stdin")

	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	RootCmd.AddCommand(cmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	recordType, _ := cmd.Flags().GetString("type")
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	input, _ := cmd.Flags().GetString("input")

	from, err := keys.ParseProfile(fromFlag)
	if err != nil {
		return err
	}

	to, err := keys.ParseProfile(toFlag)
	if err != nil {
		return err
	}

	body, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	objects, batch, err := container.ReadAll(body, !looksLikeJSON(body))
	if err != nil {
		return err
	}

	sources := make([]types.Source, 0, len(objects))
	for _, o := range objects {
		sources = append(sources, o)
	}

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	result, err := app.Translate(cmd.Context(), recordType, from, to, sources)
	if err != nil {
		return err
	}

	if !batch && len(result.Records) == 1 {
		return writeOutput(cmd.OutOrStdout(), result.Records[0])
	}

	return writeOutput(cmd.OutOrStdout(), result.Records)
}

func readInput(stdin io.Reader, input string) ([]byte, error) {
	if input == "" || input == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(input)
}

func looksLikeJSON(body []byte) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}
