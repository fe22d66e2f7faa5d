package cmd

import (
	"fmt"
	"time"

	outcomeadapter "github.com/bnema/roombook-cli/internal/adapters/render/outcome"
	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/spf13/cobra"
)

type sessionJSON struct {
	OrderID   string       `json:"order_id"`
	Reference string       `json:"reference"`
	BookHash  string       `json:"book_hash"`
	Phase     domain.Phase `json:"phase"`
	Total     string       `json:"total,omitempty"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}

func newSessionsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List booking sessions recorded on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := app.bookingService(nil, app.cfg.ReturnBaseURL)
			sessions, err := svc.ListSessions(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]sessionJSON, 0, len(sessions))
				for _, session := range sessions {
					out = append(out, newSessionJSON(session))
				}
				return writeJSON(cmd, out)
			}

			rendered, err := app.sessionsRenderer(sessions, outcomeadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render sessions: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionJSON(session domain.SessionSnapshot) sessionJSON {
	out := sessionJSON{
		OrderID:   session.OrderID,
		Reference: domain.SupportReference(session.OrderID),
		BookHash:  session.BookHash,
		Phase:     session.Phase,
	}
	if session.PaymentType != nil {
		out.Total = session.PaymentType.DisplayTotal()
	}
	if !session.UpdatedAt.IsZero() {
		out.UpdatedAt = session.UpdatedAt.Format(time.RFC3339)
	}
	return out
}
