package commands

import (
	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/config"
	"github.com/unified-data-studio/uds-tools/version"
)

// NewCreateHeaderCmd returns the create-header command, which regenerates the
// frontend version header and nothing else.
func NewCreateHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-header",
		Short: "Regenerate the frontend version header",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			mgr, err := version.New(config.ManagerConfig())
			if err != nil {
				return err
			}

			if err := mgr.WriteHeader(); err != nil {
				return err
			}
			cc.Printf("Version header written to %s\n", mgr.Info().HeaderFile)

			return nil
		},
	}
}
