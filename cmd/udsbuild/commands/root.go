package commands

import (
	"github.com/spf13/cobra"

	"github.com/unified-data-studio/uds-tools/config"
	"github.com/unified-data-studio/uds-tools/versioninfo"
)

const (
	cmdName = "udsbuild"

	shortDesc = "Build and release tooling for Unified Data Studio v2."
	longDesc  = `Build and release tooling for Unified Data Studio v2.

udsbuild maintains the canonical application version (the VERSION file) and
keeps every dependent file consistent with it: the backend Cargo.toml, the
frontend package.json, source-embedded version strings, and the generated
frontend version header. It also runs the configured build pipeline, invoking
the Rust, npm, and Electron toolchains in order.

Propagation targets and build steps are declared in the config file, so new
files and steps can be added without touching this tool.
`
)

// flag vars
var (
	configName  string
	projectRoot string
	versionFile string
)

// NewRootCmd assembles the udsbuild command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versioninfo.String(),
	}

	cmd.PersistentFlags().StringVar(&configName, "config", "udsbuild.toml", "override default config file name")
	cmd.PersistentFlags().StringVar(&projectRoot, "root", "", "override project root in config")
	cmd.PersistentFlags().StringVar(&versionFile, "version-file", "", "override version file in config")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		switch cc.Name() {
		// these need no project config
		case "version", "help", "completion",
			cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return nil
		}

		return config.Init(configName, config.Overrideable{
			ProjectRoot: projectRoot,
			VersionFile: versionFile,
		})
	}

	cmd.AddCommand(NewUpdateAllCmd())
	cmd.AddCommand(NewBumpCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewCreateHeaderCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
