package cli

import (
	"github.com/spf13/cobra"
)

func (c *Cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			c.io.Printf("weightkeeper %s (built %s)\n", c.version, c.buildDate)
		},
	}
}
