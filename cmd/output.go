package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	outcomeadapter "github.com/bnema/roombook-cli/internal/adapters/render/outcome"
	"github.com/bnema/roombook-cli/internal/application"
	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/spf13/cobra"
)

type outcomeJSON struct {
	Phase       domain.Phase        `json:"phase"`
	OrderID     string              `json:"order_id"`
	Reference   string              `json:"reference,omitempty"`
	Title       string              `json:"title,omitempty"`
	Text        string              `json:"text,omitempty"`
	Total       string              `json:"total,omitempty"`
	Code        domain.SupplierCode `json:"code,omitempty"`
	Field       domain.CardField    `json:"field,omitempty"`
	Recoverable bool                `json:"recoverable"`
	Redirect    *redirectJSON       `json:"redirect,omitempty"`
}

type redirectJSON struct {
	ActionURL string `json:"action_url"`
	Method    string `json:"method"`
}

type quoteJSON struct {
	OrderID                string     `json:"order_id"`
	Reference              string     `json:"reference"`
	ItemID                 string     `json:"item_id"`
	Amount                 string     `json:"amount"`
	CurrencyCode           string     `json:"currency_code"`
	Total                  string     `json:"total"`
	FreeCancellationBefore *time.Time `json:"free_cancellation_before,omitempty"`
}

func writeOutcome(cmd *cobra.Command, app *app, outcome domain.Outcome, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, newOutcomeJSON(outcome))
	}

	rendered, err := app.outcomeRenderer(outcome, outcomeadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render outcome: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeQuote(cmd *cobra.Command, app *app, quote application.Quote) error {
	rendered, err := app.quoteRenderer(quote, outcomeadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render quote: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func newOutcomeJSON(outcome domain.Outcome) outcomeJSON {
	out := outcomeJSON{
		Phase:     outcome.Phase,
		OrderID:   outcome.OrderID,
		Reference: outcome.Reference,
		Title:     outcome.Title,
		Text:      outcome.Text,
		Total:     outcome.Total,
	}
	if outcome.Redirect != nil {
		out.Redirect = &redirectJSON{ActionURL: outcome.Redirect.ActionURL, Method: outcome.Redirect.FormMethod()}
	}
	if outcome.Err != nil {
		out.Code = outcome.Err.Code
		out.Recoverable = outcome.Err.Recoverable()
		var fieldErr *domain.FieldError
		if errors.As(outcome.Err, &fieldErr) {
			out.Field = fieldErr.Field
		}
	}
	return out
}

func newQuoteJSON(quote application.Quote) quoteJSON {
	out := quoteJSON{
		OrderID:      quote.OrderID,
		Reference:    quote.Reference,
		ItemID:       quote.ItemID,
		Amount:       quote.Payment.Amount,
		CurrencyCode: quote.Payment.CurrencyCode,
		Total:        quote.Total,
	}
	if !quote.FreeCancellationBefore.IsZero() {
		deadline := quote.FreeCancellationBefore
		out.FreeCancellationBefore = &deadline
	}
	return out
}
