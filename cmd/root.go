package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	app := newApp(v)

	rootCmd := &cobra.Command{
		Use:           "amee",
		Short:         "AMEE CLI: drill down categories and record carbon profile items",
		Long:          "amee talks to an AMEE carbon-accounting server: it resolves category drilldowns to data items, manages profiles, and creates profile items whose CO2 amounts the server calculates.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
	}

	rootCmd.PersistentFlags().String("server", "", "AMEE server URL (default from config)")
	rootCmd.PersistentFlags().String("username", "", "AMEE username (default from config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace|debug|info|warn|error|off")
	_ = v.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newProfileCmd(app),
		newDrillCmd(app),
		newItemCmd(app),
	)

	return rootCmd
}
