// Package cli implements the keysetctl commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/diwise/record-translator/internal/pkg/application/translator"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "keysetctl",
	Short:         "Translate keyed records between profiles",
	Long:          "Reads records keyed for one profile (local, remote or database) and writes them keyed for another.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Key set configuration file (default: $KEYSET_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or yaml")
}

func getConfigPath(ctx context.Context) string {
	if configPath != "" {
		return configPath
	}
	return env.GetVariableOrDefault(ctx, "KEYSET_CONFIG_PATH", "")
}

func newApp(ctx context.Context) (translator.RecordTranslator, error) {
	cfg := &translator.Config{}

	if path := getConfigPath(ctx); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		cfg, err = translator.LoadConfiguration(f)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	return translator.New(ctx, cfg, translator.DefaultBindings()...)
}

func writeOutput(w io.Writer, v any) error {
	var b []byte
	var err error

	switch formatFlag {
	case "yaml":
		b, err = yaml.Marshal(v)
	case "json":
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("unknown output format %q", formatFlag)
	}

	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}
