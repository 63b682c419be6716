package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ember/internal/core/domain"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <engine-version>",
		Short: "Install an engine version, optionally with a mod loader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, _ := cmd.Flags().GetString("loader")
			loaderVersion, _ := cmd.Flags().GetString("loader-version")
			profile, _ := cmd.Flags().GetString("profile")

			id, err := c.components.App.Install(cmd.Context(), domain.InstallPlan{
				EngineVersion: args[0],
				Loader:        domain.LoaderKind(loader),
				LoaderVersion: loaderVersion,
				ProfileID:     profile,
			})
			if err != nil {
				return err
			}
			cmd.Println(id)
			return nil
		},
	}
	cmd.Flags().StringP("loader", "l", "", "Mod loader family (fabric, quilt, neoforge)")
	cmd.Flags().String("loader-version", "", "Loader build to install (default: latest stable)")
	cmd.Flags().StringP("profile", "p", "", "Profile id progress events are keyed by")
	return cmd
}
