package cmd

import "github.com/spf13/cobra"

func newQuoteCmd(app *app) *cobra.Command {
	var bookHash string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Resolve a rate into a pay-now quote without booking it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, app, bookHash, asJSON)
		},
	}

	cmd.Flags().StringVar(&bookHash, "book-hash", "", "Rate identifier from hotel search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("book-hash")

	return cmd
}

func runQuote(cmd *cobra.Command, app *app, bookHash string, asJSON bool) error {
	svc := app.bookingService(nil, app.cfg.ReturnBaseURL)
	session := svc.StartSession(bookHash)

	quote, err := svc.Initialize(cmd.Context(), session)
	if err != nil {
		return writeFailure(cmd, app, session.OrderID(), err, asJSON)
	}

	if asJSON {
		return writeJSON(cmd, newQuoteJSON(quote))
	}
	return writeQuote(cmd, app, quote)
}
