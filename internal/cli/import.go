package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/zalando/go-keyring"
)

// fetcher is the vCard fetcher used for --url imports. Replaced in tests.
var fetcher engine.VCardFetcher = engine.NewHTTPFetcher()

func newImportCmd(opts *options) *cobra.Command {
	var src engine.ImportSource
	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Merge birthdays from a vCard file or CardDAV URL",
		Long:  "Import reads every contact with a full birth date and appends the ones not already stored. The password for --user is read from the system keyring (see 'credentials set').",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				src.Path = args[0]
			}
			if src.Path == "" && src.URL == "" {
				return engine.ErrNoSource
			}
			if src.URL != "" && src.User != "" {
				src.Pass = lookupPassword(src.User)
			}

			env, err := opts.environment()
			if err != nil {
				return err
			}

			im := &engine.Importer{Fetcher: fetcher}
			res, err := im.Import(cmd.Context(), src)
			if err != nil {
				return err
			}

			merged, added, dups := engine.MergeBirthdays(engine.Valid(env.store.LoadBirthdays()), res.Records)
			if added > 0 {
				if err := env.store.SaveBirthdays(merged); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgImported, added, dups, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&src.URL, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVar(&src.User, config.FlagUser, "", config.FlagDescUser)
	return cmd
}

// lookupPassword reads the keyring entry for user. A miss yields an empty password.
func lookupPassword(user string) string {
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return ""
	}
	return pass
}
