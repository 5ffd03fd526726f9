package cmd

import (
	"context"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/tomdyson/go-amee/internal/application"
	"github.com/tomdyson/go-amee/internal/domain"
)

type batchFile struct {
	Common domain.Values `toml:"common"`
	Items  []batchItem   `toml:"items"`
}

type batchItem struct {
	Path    string            `toml:"path"`
	Choices map[string]string `toml:"choices"`
	Values  map[string]any    `toml:"values"`
}

func newItemCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Create and inspect profile items",
	}

	cmd.AddCommand(
		newItemCreateCmd(app),
		newItemBatchCmd(app),
		newItemGetCmd(app),
		newItemAmountCmd(app),
	)

	return cmd
}

func newItemCreateCmd(app *app) *cobra.Command {
	var choiceArgs []string
	var valueArgs []string

	cmd := &cobra.Command{
		Use:   "create PROFILE_UID PATH",
		Short: "Create one profile item and print its URI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			choices, err := parseAssignments(choiceArgs)
			if err != nil {
				return err
			}
			assigned, err := parseAssignments(valueArgs)
			if err != nil {
				return err
			}
			values := domain.Values{}
			for name, value := range assigned {
				values[name] = value
			}

			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			var item *application.ProfileItem
			fetch := func(ctx context.Context) error {
				item, err = account.Profile(args[0]).CreateItem(ctx, args[1], choices, values)
				return err
			}
			if err := runFetch(cmd, false, "Creating profile item...", fetch); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), item.URI())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&choiceArgs, "choice", nil, "Drilldown choice NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&valueArgs, "value", nil, "Item value NAME=VALUE (repeatable)")

	return cmd
}

func newItemBatchCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch PROFILE_UID",
		Short: "Create several profile items in one request",
		Long:  "batch reads items from a TOML file with a [common] table of shared values and an [[items]] list of {path, choices, values}. Every drilldown is resolved before anything is sent; one failure aborts the whole batch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, common, err := readBatchFile(file)
			if err != nil {
				return err
			}

			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			var items []*application.ProfileItem
			fetch := func(ctx context.Context) error {
				items, err = account.Profile(args[0]).CreateItems(ctx, specs, common)
				return err
			}
			if err := runFetch(cmd, false, fmt.Sprintf("Creating %d profile items...", len(specs)), fetch); err != nil {
				return err
			}

			for _, item := range items {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), item.URI()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "TOML file describing the items")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newItemGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get URI",
		Short: "Print the JSON representation of a profile item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}

			data, err := account.Item(args[0]).Get(cmd.Context())
			if err != nil {
				return err
			}

			return writeJSON(cmd, data)
		},
	}
}

func newItemAmountCmd(app *app) *cobra.Command {
	var unit string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "amount URI",
		Short: "Print the calculated amount of a profile item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.amee(cmd.Context())
			if err != nil {
				return err
			}
			item := account.Item(args[0])

			var amount domain.Amount
			fetch := func(ctx context.Context) error {
				if unit == "" {
					amount, err = item.Amount(ctx)
					return err
				}
				value, err := item.AmountInUnit(ctx, unit)
				amount = domain.Amount{Unit: unit, Value: value}
				return err
			}
			if err := runFetch(cmd, asJSON, "Fetching amount...", fetch); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, amount)
			}

			rendered, err := app.amountRenderer(item.URI(), amount)
			if err != nil {
				return fmt.Errorf("render amount: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "Require the amount in this unit, e.g. kg/year")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func readBatchFile(path string) ([]domain.ItemSpec, domain.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read batch file: %w", err)
	}

	var file batchFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("decode batch file: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, nil, fmt.Errorf("batch file %s has no items", path)
	}

	specs := make([]domain.ItemSpec, 0, len(file.Items))
	for _, item := range file.Items {
		specs = append(specs, domain.ItemSpec{
			Path:    item.Path,
			Choices: domain.Choices(item.Choices),
			Values:  domain.Values(item.Values),
		})
	}

	return specs, file.Common, nil
}
