package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/config"
	"github.com/unified-data-studio/uds-tools/pipeline"
	"github.com/unified-data-studio/uds-tools/version"
)

// NewBuildCmd returns the build command, which runs the configured pipeline
// steps in order with fail-fast semantics.
func NewBuildCmd() *cobra.Command {
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the configured build pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg := config.Get()
			runner := pipeline.ExecRunner{Root: cfg.Project.Root}
			ctx := cc.Context()

			if !skipChecks {
				if err := pipeline.Check(ctx, runner, pipelineSteps(cfg.Build.Checks)); err != nil {
					return fmt.Errorf("prerequisites not satisfied: %w", err)
				}
			}

			if err := pipeline.Run(ctx, runner, pipelineSteps(cfg.Build.Steps)); err != nil {
				return err
			}
			cc.Println("Build completed successfully")

			if mgr, err := version.New(config.ManagerConfig()); err == nil {
				sendNotification(fmt.Sprintf(
					"%s v%s built successfully",
					cfg.Project.Name,
					mgr.Version(),
				))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "skip prerequisite tool checks")

	return cmd
}

func pipelineSteps(steps []config.Step) []pipeline.Step {
	out := make([]pipeline.Step, len(steps))
	for i, s := range steps {
		out[i] = pipeline.Step{
			Name:    s.Name,
			Dir:     s.Dir,
			Command: s.Command,
			Args:    s.Args,
		}
	}

	return out
}
