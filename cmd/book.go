package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/roombook-cli/internal/adapters/threeds"
	"github.com/bnema/roombook-cli/internal/application"
	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errBookingNotConfirmed = errors.New("booking not confirmed")

func newBookCmd(app *app) *cobra.Command {
	var bookHash string
	var orderPath string
	var asJSON bool
	var retry bool

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a rate with the guests and card from an order form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBook(cmd, app, bookHash, orderPath, asJSON, retry)
		},
	}

	cmd.Flags().StringVar(&bookHash, "book-hash", "", "Rate identifier from hotel search")
	cmd.Flags().StringVar(&orderPath, "order", "", "Path to the order form TOML file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&retry, "retry", false, "After a card or form rejection, wait for a corrected order form and retry on the same session")
	_ = cmd.MarkFlagRequired("book-hash")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}

func runBook(cmd *cobra.Command, app *app, bookHash, orderPath string, asJSON, retry bool) error {
	order, err := loadOrderForm(orderPath)
	if err != nil {
		return err
	}

	flow, err := startBookingFlow(cmd, app, asJSON)
	if err != nil {
		return err
	}
	defer flow.close()

	session := flow.service.StartSession(bookHash)
	quote, err := flow.service.Initialize(cmd.Context(), session)
	if err != nil {
		return flow.failure(session.OrderID(), err)
	}
	if !asJSON {
		if err := writeQuote(cmd, app, quote); err != nil {
			return err
		}
	}

	book := func() (domain.Outcome, error) {
		return flow.poll("Booking in progress...", func(ctx context.Context) (domain.Outcome, error) {
			return flow.service.Book(ctx, session, order)
		})
	}

	outcome, err := book()
	if err != nil {
		return err
	}

	// A rejected form keeps the session; a retry reuses its order id and quote.
	var input *bufio.Reader
	for retry && recoverable(outcome) {
		if err := writeOutcome(cmd, app, outcome, asJSON); err != nil {
			return err
		}
		if input == nil {
			input = bufio.NewReader(cmd.InOrStdin())
		}
		if !awaitCorrection(flow.stderr, input, orderPath) {
			return errBookingNotConfirmed
		}
		if order, err = loadOrderForm(orderPath); err != nil {
			return err
		}
		if outcome, err = book(); err != nil {
			return err
		}
	}

	return flow.finish(outcome)
}

func recoverable(outcome domain.Outcome) bool {
	return outcome.Phase == domain.PhaseForm && outcome.Err != nil && outcome.Err.Recoverable()
}

// awaitCorrection reports false once input is exhausted.
func awaitCorrection(out io.Writer, input *bufio.Reader, orderPath string) bool {
	_, _ = fmt.Fprintf(out, "Correct %s and press Enter to retry this booking, or Ctrl-D to stop.\n", orderPath)
	line, err := input.ReadString('\n')
	return err == nil || line != ""
}

// bookingFlow owns the 3DS return server for the lifetime of one command.
type bookingFlow struct {
	cmd     *cobra.Command
	app     *app
	asJSON  bool
	stderr  *syncWriter
	server  *threeds.Server
	service *application.BookingService
}

func startBookingFlow(cmd *cobra.Command, app *app, asJSON bool) (*bookingFlow, error) {
	stderr := &syncWriter{w: cmd.ErrOrStderr()}
	app.setLogOutput(stderr)

	server, err := threeds.StartServer(app.cfg.ReturnListenAddr, stderr)
	if err != nil {
		return nil, err
	}

	returnBaseURL := app.cfg.ReturnBaseURL
	if returnBaseURL == "" {
		returnBaseURL = server.BaseURL()
	}

	return &bookingFlow{
		cmd:     cmd,
		app:     app,
		asJSON:  asJSON,
		stderr:  stderr,
		server:  server,
		service: app.bookingService(server, returnBaseURL),
	}, nil
}

func (f *bookingFlow) close() {
	_ = f.server.Close()
}

func (f *bookingFlow) poll(label string, run func(context.Context) (domain.Outcome, error)) (domain.Outcome, error) {
	if f.asJSON {
		return run(f.cmd.Context())
	}
	return runPollSpinner(f.cmd.Context(), f.stderr, label, run)
}

// finish waits out any 3DS challenges, then writes the final outcome.
func (f *bookingFlow) finish(outcome domain.Outcome) error {
	for outcome.Redirected() {
		orderID, err := f.server.WaitForReturn(f.cmd.Context(), f.app.cfg.ThreeDSReturnTimeout)
		if err != nil {
			if errors.Is(err, threeds.ErrReturnTimeout) {
				return fmt.Errorf("%w: run rb resume --return-url with the address your bank returned to", err)
			}
			return err
		}

		outcome, err = f.poll("Confirming booking...", func(ctx context.Context) (domain.Outcome, error) {
			return f.service.ResumeOrder(ctx, orderID)
		})
		if err != nil {
			return err
		}
	}

	if err := writeOutcome(f.cmd, f.app, outcome, f.asJSON); err != nil {
		return err
	}
	if outcome.Phase != domain.PhaseSuccess {
		return errBookingNotConfirmed
	}
	return nil
}

func (f *bookingFlow) failure(orderID string, err error) error {
	return writeFailure(f.cmd, f.app, orderID, err, f.asJSON)
}

// writeFailure renders a booking error as an outcome; other errors pass through.
func writeFailure(cmd *cobra.Command, app *app, orderID string, err error, asJSON bool) error {
	var bookingErr *domain.BookingError
	if !errors.As(err, &bookingErr) {
		return err
	}
	if writeErr := writeOutcome(cmd, app, domain.FailedOutcome(orderID, bookingErr), asJSON); writeErr != nil {
		return writeErr
	}
	return errBookingNotConfirmed
}
