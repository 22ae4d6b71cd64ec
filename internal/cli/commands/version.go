package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display InkStudio version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			name := lipgloss.NewStyle().Bold(true).Render("InkStudio")
			dim := lipgloss.NewStyle().Faint(true)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s v%s\n", name, version)
			_, _ = fmt.Fprintln(out, dim.Render(fmt.Sprintf("built %s (%s)", buildDate, gitCommit)))
		},
	}
}
