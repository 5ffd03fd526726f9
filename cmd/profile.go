package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tomdyson/go-amee/internal/application"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage AMEE profiles",
	}

	cmd.AddCommand(newProfileCreateCmd(app), newProfileListCmd(app), newProfileDeleteCmd(app))

	return cmd
}

func newProfileCreateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new profile and print its UID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			profile, err := account.CreateProfile(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), profile.UID())
			return err
		},
	}
}

func newProfileListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			var profiles []*application.Profile
			fetch := func(ctx context.Context) error {
				profiles, err = account.Profiles(ctx)
				return err
			}
			if err := runFetch(cmd, asJSON, "Fetching profiles...", fetch); err != nil {
				return err
			}

			uids := make([]string, 0, len(profiles))
			for _, profile := range profiles {
				uids = append(uids, profile.UID())
			}
			if asJSON {
				return writeJSON(cmd, uids)
			}

			rendered, err := app.profilesRenderer(uids)
			if err != nil {
				return fmt.Errorf("render profiles: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newProfileDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROFILE_UID",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			return account.Profile(args[0]).Delete(cmd.Context())
		},
	}
}
