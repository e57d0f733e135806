package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := wireApp()

	rootCmd := &cobra.Command{
		Use:           "gotk",
		Short:         "GotHub kernel (gotk): chat with hosted models from a notebook-style prompt",
		Long:          "gotk runs GotHub cells: plain code goes to the local interpreter, prompts go to the selected model, and every model call is metered against your GotHub usage quota.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Config file (default: ~/.gothub/config.toml)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Log kernel events to stderr")
	flags.StringVarP(&app.model, "model", "m", "", "Model to start with (default: kernel.default_model)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newAskCmd(app),
		newAuthCmd(app),
		newConfigCmd(app),
		newExecCmd(app),
		newReplCmd(app),
		newServeCmd(app),
		newUsageCmd(app),
	)

	return rootCmd
}
