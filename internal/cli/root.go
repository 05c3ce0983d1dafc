// Package cli wires the cobra command tree: the GUI launcher plus headless
// commands for checking, listing, importing, exporting and serving records.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/store"
)

// options holds the persistent flags shared by every command.
type options struct {
	debug      bool
	configPath string
	dataDir    string
	assetsDir  string

	// logToFile is off in tests so runs do not touch the user cache dir.
	logToFile bool
	logCloser io.Closer

	// launch starts the GUI. Replaced in tests.
	launch func(ctx context.Context, env *environment) int

	exitCode int
}

// environment is the resolved state a command runs against.
type environment struct {
	settings     config.Settings
	settingsPath string
	store        *store.Store
	opts         *options
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	opts := &options{logToFile: true, launch: launchGUI}
	root := newRootCmd(opts)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), err)
		return config.ExitCodeError
	}
	return opts.exitCode
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CommandName,
		Short:         "Desktop pet that reminds you of birthdays and events",
		Long:          "Pet Reminder keeps a list of birthdays and events and shows a reminder when one is near. Without a sub-command it opens the desktop window.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logCloser = setupLogging(cmd.ErrOrStderr(), opts.debug, opts.logToFile)
			logStartupInfo()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logCloser != nil {
				_ = opts.logCloser.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment()
			if err != nil {
				return err
			}
			opts.exitCode = opts.launch(cmd.Context(), env)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&opts.configPath, config.FlagConfig, "", config.FlagDescConfig)
	pf.StringVar(&opts.dataDir, config.FlagDataDir, "", config.FlagDescDataDir)
	root.Flags().StringVar(&opts.assetsDir, config.FlagAssets, "", config.FlagDescAssets)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newCredentialsCmd())
	root.AddCommand(newInitCmd(opts))
	return root
}

// environment resolves the settings file and opens the store.
// --data-dir beats data_dir from the file, which beats the default location.
func (o *options) environment() (*environment, error) {
	dir := o.dataDir
	path := o.configPath
	if path == "" {
		if dir == "" {
			def, err := config.DefaultDataDir()
			if err != nil {
				return nil, err
			}
			dir = def
		}
		path = filepath.Join(dir, config.SettingsFileName)
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if o.dataDir == "" && settings.DataDir != "" {
		dir = settings.DataDir
	}
	if dir == "" {
		def, err := config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = def
	}
	settings.DataDir = dir

	st, err := store.Open(dir)
	if err != nil {
		return nil, err
	}
	return &environment{settings: settings, settingsPath: path, store: st, opts: o}, nil
}

// openOutput returns stdout for "-" and a created file otherwise.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == config.ExportDefaultOutput {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
