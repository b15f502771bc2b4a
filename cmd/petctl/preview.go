package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"virtual-pet/internal/domain/traits"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

var previewStyles = struct {
	title lipgloss.Style
	label lipgloss.Style
	box   lipgloss.Style
}{
	title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF75B5")),
	label: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(14),
	box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
}

func newPreviewCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview SEED [SEED...]",
		Short: "Show the traits a pet with the given id/seed would get",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, seed := range args {
				t := traits.GeneratePetTraits(seed)
				if asJSON {
					if err := writePreviewJSON(out, seed, t); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintln(out, renderTraits(seed, t))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of swatches")
	return cmd
}

func writePreviewJSON(w io.Writer, seed string, t traits.PetTraits) error {
	enc := json.NewEncoder(w)
	return enc.Encode(struct {
		Seed   string           `json:"seed"`
		Traits traits.PetTraits `json:"traits"`
	}{seed, t})
}

func renderTraits(seed string, t traits.PetTraits) string {
	rows := []string{
		previewStyles.title.Render(seed),
		row("body", swatch(t.BodyColor)+" "+traits.HSLToString(t.BodyColor)),
	}
	if t.PatternColor != nil {
		rows = append(rows, row("pattern", swatch(*t.PatternColor)+" "+string(t.PatternType)))
	} else {
		rows = append(rows, row("pattern", string(t.PatternType)))
	}
	rows = append(rows,
		row("accessory", string(t.Accessory)),
		row("size", string(t.BodySize)),
		row("expression", string(t.Expression)),
		row("rarity", string(t.Rarity)),
		row("harmonious", fmt.Sprintf("%v", traits.ValidateColorHarmony(t.Colors()))),
	)
	return previewStyles.box.Render(strings.Join(rows, "\n"))
}

func row(label, value string) string {
	return previewStyles.label.Render(label) + value
}

// swatch pinta el hex sobre fondo del color, con texto claro u oscuro según luminancia.
func swatch(c traits.HSLColor) string {
	hex := traits.HSLToHex(c)
	fg := "#000000"
	if col, err := colorful.Hex(hex); err == nil {
		if l, _, _ := col.Lab(); l < 0.55 {
			fg = "#FFFFFF"
		}
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1).
		Render(hex)
}
