package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the settings file",
		Long:  "Init writes the resolved settings (defaults merged with any existing file) to --config, or to settings.yaml in the data directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment()
			if err != nil {
				return err
			}

			path := env.settingsPath
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(config.ErrSettingsExists)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s: %w", config.ErrSettingsRead, err)
			}

			settings := env.settings
			// The data dir is implied when the file sits inside it.
			if filepath.Clean(filepath.Dir(path)) == filepath.Clean(settings.DataDir) {
				settings.DataDir = ""
			}
			if err := config.SaveSettings(path, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgSettingsSaved, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, config.FlagForce, false, config.FlagDescForce)
	return cmd
}
