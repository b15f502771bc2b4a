package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"virtual-pet/internal/domain/traits"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidTraits = errors.New("traits are invalid")

func newValidateCmd() *cobra.Command {
	var petID string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a stored traits blob (JSON or YAML) and show what the loader would return",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTraitsFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			res := traits.SafeParse(raw)
			if res.Success {
				fmt.Fprintln(out, "valid")
				return nil
			}

			fmt.Fprintln(out, "invalid:")
			for _, is := range res.Error.Issues {
				if is.Path == "" {
					fmt.Fprintf(out, "  - %s\n", is.Message)
					continue
				}
				fmt.Fprintf(out, "  - %s: %s\n", is.Path, is.Message)
			}

			if petID != "" {
				healed := traits.LoadTraits(raw, petID)
				fmt.Fprintln(out, "loader result:")
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(healed); err != nil {
					return err
				}
			}
			return errInvalidTraits
		},
	}
	cmd.Flags().StringVar(&petID, "pet-id", "", "pet id used to migrate/regenerate invalid traits")
	return cmd
}

// readTraitsFile devuelve JSON; los .yaml/.yml se convierten.
func readTraitsFile(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("converting yaml: %w", err)
		}
		return out, nil
	default:
		return json.RawMessage(b), nil
	}
}
