package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tomdyson/go-amee/internal/adapters/api"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored AMEE password",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var password string
	var verify bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the password for the configured username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username := app.cfg.Username
			if username == "" {
				return errUsernameNotConfigured
			}

			var check func(context.Context) error
			if verify {
				check = func(ctx context.Context) error {
					client, err := app.newClient(api.Credentials{Username: username, Password: password})
					if err != nil {
						return err
					}
					return client.Session().EnsureToken(ctx)
				}
			}

			if err := app.credentials.ReplacePassword(cmd.Context(), username, password, check); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "password stored for %s\n", username)
			return err
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "AMEE password")
	cmd.Flags().BoolVar(&verify, "verify", false, "Authenticate with the server before keeping the password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored password for the configured username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.credentials.RemovePassword(cmd.Context(), app.cfg.Username)
		},
	}
}
