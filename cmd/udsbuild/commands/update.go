package commands

import (
	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/config"
	"github.com/unified-data-studio/uds-tools/version"
)

// NewUpdateAllCmd returns the update-all command, which propagates the
// canonical version into every configured target. Individual target failures
// are reported but do not affect the exit code.
func NewUpdateAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-all",
		Short: "Propagate the canonical version into every configured target",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			mgr, err := version.New(config.ManagerConfig())
			if err != nil {
				return err
			}

			results, _ := mgr.UpdateAll()
			printResults(cc, results)

			return nil
		},
	}
}

// printResults reports per-target success in config declaration order with
// the version header last.
func printResults(cc *cobra.Command, results map[string]bool) {
	cc.Println("Update results:")

	names := make([]string, 0, len(results))
	for _, t := range config.Get().Targets {
		names = append(names, t.Name)
	}
	names = append(names, version.HeaderName)

	for _, name := range names {
		status := "ok"
		if !results[name] {
			status = "failed"
		}
		cc.Printf("  %-20s %s\n", name, status)
	}
}
