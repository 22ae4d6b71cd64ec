package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// styleRow is one suggestion in the styles listing.
type styleRow struct {
	Name        string
	Description string
	PairsWith   string
}

// tattooStyles are the suggestions shown by the styles command. The
// form itself is free text; these are starting points.
var tattooStyles = []styleRow{
	{"traditional", "Bold lines, limited palette, classic americana", "anchors, roses, swallows"},
	{"realism", "Photographic shading and detail", "portraits, animals, nature"},
	{"blackwork", "Solid black fills and heavy geometry", "mandalas, geometric patterns"},
	{"fine line", "Thin single-needle linework", "script, florals, minimal motifs"},
	{"watercolor", "Soft color washes without outlines", "abstract splashes, florals"},
	{"japanese", "Irezumi composition and flow", "koi, dragons, waves"},
	{"tribal", "Flowing solid black shapes", "shoulder and arm wraps"},
	{"minimal", "Small, sparse, understated marks", "symbols, single words"},
}

var colorModes = []styleRow{
	{"black and grey", "Graded black ink only", "realism, fine line"},
	{"color", "Full color palette", "traditional, japanese, watercolor"},
	{"blackwork", "Solid black only", "tribal, geometric"},
	{"watercolor", "Translucent color washes", "abstract, florals"},
}

var placements = []styleRow{
	{"forearm", "Medium canvas, highly visible", "script, fine line"},
	{"upper arm", "Large rounded canvas", "traditional, japanese sleeves"},
	{"shoulder", "Curved canvas, easy to cover", "tribal, mandalas"},
	{"back", "Largest flat canvas", "full japanese compositions"},
	{"chest", "Wide symmetric canvas", "spread-wing designs"},
	{"calf", "Vertical canvas", "portraits, totems"},
	{"wrist", "Small visible canvas", "minimal symbols"},
	{"ankle", "Small discreet canvas", "fine line florals"},
}

// NewStylesCommand creates the styles command.
func NewStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List style, color mode and placement suggestions",
		Long: `List suggested values for the studio's design form.

The form accepts free text; this list is a reference for what the
generation backend responds well to.`,
		Run: func(cmd *cobra.Command, _ []string) {
			header := lipgloss.NewStyle().Bold(true)

			out := cmd.OutOrStdout()
			sections := []struct {
				title string
				rows  []styleRow
				col   string
			}{
				{"Styles", tattooStyles, "Pairs well with"},
				{"Color modes", colorModes, "Pairs well with"},
				{"Placements", placements, "Suits"},
			}

			for _, section := range sections {
				_, _ = out.Write([]byte(header.Render(section.title) + "\n"))

				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Name", "Description", section.col})
				for _, row := range section.rows {
					t.AppendRow(table.Row{row.Name, row.Description, row.PairsWith})
				}
				t.Render()
				_, _ = out.Write([]byte("\n"))
			}
		},
	}
}
