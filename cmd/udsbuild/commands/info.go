package commands

import (
	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/config"
	"github.com/unified-data-studio/uds-tools/version"
)

// NewInfoCmd returns the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the current version and resolved file paths",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			mgr, err := version.New(config.ManagerConfig())
			if err != nil {
				return err
			}

			info := mgr.Info()
			cc.Println("Version information:")
			cc.Printf("  version:      %s\n", info.Version)
			cc.Printf("  project root: %s\n", info.Root)
			cc.Printf("  version file: %s\n", info.VersionFile)
			cc.Printf("  header file:  %s\n", info.HeaderFile)

			return nil
		},
	}
}
