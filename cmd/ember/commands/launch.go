package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/ember/internal/core/domain"
)

func (c *CLI) newLaunchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch <version-id>",
		Short: "Launch an installed version and supervise the process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc := domain.LaunchContext{}
			lc.Identity.Username, _ = cmd.Flags().GetString("username")
			lc.ProfileID, _ = cmd.Flags().GetString("profile")
			lc.MemoryMB, _ = cmd.Flags().GetInt("memory")
			lc.Preset, _ = cmd.Flags().GetString("preset")
			lc.CustomFlags, _ = cmd.Flags().GetStringArray("jvm-flag")
			lc.QuickPlaySingleplayer, _ = cmd.Flags().GetString("world")
			lc.QuickPlayMultiplayer, _ = cmd.Flags().GetString("server")

			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			if width > 0 && height > 0 {
				lc.Resolution = &domain.Resolution{Width: width, Height: height}
				lc.Features = map[string]bool{"has_custom_resolution": true}
			}

			process, err := c.components.App.Launch(cmd.Context(), args[0], lc)
			if err != nil {
				return err
			}

			code, err := process.Wait(cmd.Context())
			if err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("game exited with code %d", code)
			}
			return nil
		},
	}
	cmd.Flags().StringP("username", "u", "Player", "Player name")
	cmd.Flags().StringP("profile", "p", "", "Profile id (default: version id)")
	cmd.Flags().IntP("memory", "m", 0, "Maximum heap size in MB")
	cmd.Flags().String("preset", "", "JVM tuning preset")
	cmd.Flags().StringArray("jvm-flag", nil, "Extra JVM flag (repeatable)")
	cmd.Flags().Int("width", 0, "Window width")
	cmd.Flags().Int("height", 0, "Window height")
	cmd.Flags().String("world", "", "Quick play into a singleplayer world")
	cmd.Flags().String("server", "", "Quick play onto a multiplayer server")
	return cmd
}
