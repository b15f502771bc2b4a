// petctl es la herramienta de línea de comandos para inspeccionar rasgos y
// simular la degradación de stats sin levantar la API.
package main

import (
	"fmt"
	"os"

	"virtual-pet/internal/config"
	"virtual-pet/internal/domain/stats"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// engine arma el motor con el balance del archivo de config (o los defaults).
func (o *rootOptions) engine() (*stats.Engine, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return stats.NewEngine(cfg.Balance.Rates()), nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "petctl",
		Short:         "Inspect pet traits and simulate stat degradation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("VPET_CONFIG"), "path to YAML config (balance section)")

	root.AddCommand(
		newPreviewCmd(),
		newValidateCmd(),
		newSimulateCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "petctl: %v\n", err)
		os.Exit(1)
	}
}
