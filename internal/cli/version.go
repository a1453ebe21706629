package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/kluars/pkg/version"
)

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the kluars CLI",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cc.OutOrStdout(), "%s (%s)\n", version.String(), version.Branch)

			return err
		},
	}
}
