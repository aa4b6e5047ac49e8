package commands

import (
	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/versioninfo"
)

// NewVersionCmd returns the version command, reporting the version of the
// udsbuild tool itself (not the application's canonical version; see info).
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the udsbuild CLI",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(versioninfo.String())
		},
	}
}
