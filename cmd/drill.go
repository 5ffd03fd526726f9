package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tomdyson/go-amee/internal/domain"
)

func newDrillCmd(app *app) *cobra.Command {
	var complete bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "drill PATH [NAME=VALUE...]",
		Short: "Run one drilldown step for a data category",
		Long:  "drill asks the server which choice comes next for a data category, given the choices made so far. With --complete, a drilldown that still needs choices is an error.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := domain.ValidatePath(path); err != nil {
				return err
			}
			choices, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			var result domain.DrillResult
			fetch := func(ctx context.Context) error {
				result, err = account.Drill(ctx, path, choices, complete)
				return err
			}
			if err := runFetch(cmd, asJSON, "Drilling "+path+"...", fetch); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, result)
			}

			rendered, err := app.drillRenderer(path, choices, result)
			if err != nil {
				return fmt.Errorf("render drill: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&complete, "complete", false, "Fail unless the choices resolve to a data item")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func parseAssignments(args []string) (domain.Choices, error) {
	choices := domain.Choices{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid assignment %q: want NAME=VALUE", arg)
		}
		choices[strings.TrimSpace(name)] = value
	}

	return choices, nil
}
