package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Execute runs the CLI. An interrupt cancels in-flight polling without
// changing the booking phase.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rb",
		Short:         "Roombook CLI (rb): quote and book hotel rooms",
		Long:          "rb (Roombook CLI) books hotel rates with a card and follows each booking until the supplier settles it, including after 3D Secure authentication.",
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

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.setLogOutput(cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newQuoteCmd(app),
		newBookCmd(app),
		newResumeCmd(app),
		newSessionsCmd(app),
	)

	return rootCmd
}
