package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/config"
	"github.com/unified-data-studio/uds-tools/logger"
	"github.com/unified-data-studio/uds-tools/notify"
	"github.com/unified-data-studio/uds-tools/version"
)

// NewBumpCmd returns the bump command. Bumping persists the new canonical
// version first and then runs the same propagation batch as update-all.
func NewBumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "bump <major|minor|patch>",
		Short:     "Bump the canonical version, then update every target",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"major", "minor", "patch"},
		RunE: func(cc *cobra.Command, args []string) error {
			mgr, err := version.New(config.ManagerConfig())
			if err != nil {
				return err
			}

			next, err := mgr.Bump(args[0])
			if err != nil {
				return err
			}
			cc.Printf("Version bumped to %s\n", next)

			results, _ := mgr.UpdateAll()
			printResults(cc, results)

			sendNotification(fmt.Sprintf(
				"%s version bumped to v%s",
				config.Get().Project.Name,
				next,
			))

			return nil
		},
	}
}

// sendNotification posts msg to the configured webhook. Notification
// failures are warnings only; they never fail the command.
func sendNotification(msg string) {
	cfg := config.Get().Notify

	n, err := notify.New(cfg.Enable, cfg.WebhookID, cfg.WebhookToken)
	if err != nil {
		logger.Warnf("Notifications unavailable: %v", err)
		return
	}

	if err := n.Send(msg); err != nil {
		logger.Warnf("Error sending notification: %v", err)
	}
}
