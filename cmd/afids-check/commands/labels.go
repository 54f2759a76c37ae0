package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afids/afids-go/pkg/afids"
)

func newLabelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List the 32 fiducials and their accepted descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-5s  %-6s  %s\n", "LABEL", "CODE", "DESCRIPTIONS")
			for _, d := range afids.All() {
				fmt.Fprintf(w, "%-5d  %-6s  %s\n", d.Label, d.Code, strings.Join(d.Aliases(), ", "))
			}
			return nil
		},
	}
}
