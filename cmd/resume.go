package cmd

import (
	"context"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newResumeCmd(app *app) *cobra.Command {
	var returnURL string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a booking after 3D Secure authentication",
		Long:  "Resume a booking from the address the bank redirected the browser to. The partner_order_id query parameter identifies the booking.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResume(cmd, app, returnURL, asJSON)
		},
	}

	cmd.Flags().StringVar(&returnURL, "return-url", "", "Address the bank returned to after authentication")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("return-url")

	return cmd
}

func runResume(cmd *cobra.Command, app *app, returnURL string, asJSON bool) error {
	flow, err := startBookingFlow(cmd, app, asJSON)
	if err != nil {
		return err
	}
	defer flow.close()

	outcome, err := flow.poll("Confirming booking...", func(ctx context.Context) (domain.Outcome, error) {
		return flow.service.Resume(ctx, returnURL)
	})
	if err != nil {
		return err
	}

	return flow.finish(outcome)
}
