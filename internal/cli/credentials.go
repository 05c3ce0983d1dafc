package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/zalando/go-keyring"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage CardDAV passwords in the system keyring",
	}

	var user string
	set := &cobra.Command{
		Use:   "set",
		Short: "Read a password from stdin and store it for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}
			fmt.Fprint(cmd.ErrOrStderr(), config.MsgPasswordAsk)

			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			pass := strings.TrimRight(line, "\r\n")
			if err != nil && pass == "" {
				return fmt.Errorf("%s: %w", config.ErrPasswordRead, err)
			}

			if err := keyring.Set(config.KeyringService, user, pass); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.MsgPasswordSaved)
			return nil
		},
	}
	set.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)

	cmd.AddCommand(set)
	return cmd
}
