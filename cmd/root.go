package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "triviad",
		Short:         "Trivia proxy: serve Open Trivia DB questions with per-session answer tracking",
		Long:          "triviad proxies the Open Trivia DB question bank. It manages one upstream session token per client session, remembers which questions each session was served, and validates submitted answers against them.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newCategoriesCmd(app),
		newQuestionsCmd(app),
		newConfigCmd(),
	)

	return rootCmd
}
