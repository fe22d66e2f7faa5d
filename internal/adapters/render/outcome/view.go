package outcome

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/roombook-cli/internal/application"
	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func RenderOutcome(result domain.Outcome, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return outcomeView(result, s)
	})
}

func RenderQuote(quote application.Quote, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return quoteView(quote, opts, s)
	})
}

func RenderSessions(sessions []domain.SessionSnapshot, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return sessionsView(sessions, opts, s)
	})
}

func outcomeView(result domain.Outcome, s styles) string {
	lines := []string{headline(result, s)}

	if result.Text != "" {
		lines = append(lines, s.notice.Render(result.Text))
	}
	if result.Redirected() {
		lines = append(lines, s.notice.Render("Complete card authentication in your browser to finish the booking."))
	}
	if field, ok := rejectedField(result.Err); ok {
		lines = append(lines, keyValue(s, "field", string(field)))
	}
	if result.Total != "" {
		lines = append(lines, keyValue(s, "total", s.total.Render(result.Total)))
	}
	if result.Reference != "" {
		lines = append(lines, keyValue(s, "reference", result.Reference))
	}
	if result.Err != nil && result.Err.Recoverable() {
		lines = append(lines, s.empty.Render("Correct the order form and run the booking again. A new run starts a new booking session; use rb book --retry to keep this one."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headline(result domain.Outcome, s styles) string {
	switch {
	case result.Phase == domain.PhaseSuccess:
		return s.success.Render(titleOr(result.Title, "Booking confirmed"))
	case result.Redirected():
		return s.pending.Render(titleOr(result.Title, "Card authentication required"))
	case result.Phase == domain.PhaseProcessing:
		return s.pending.Render(titleOr(result.Title, "Booking in progress"))
	default:
		return s.failure.Render(titleOr(result.Title, "Booking failed"))
	}
}

func rejectedField(err *domain.BookingError) (domain.CardField, bool) {
	if err == nil {
		return "", false
	}
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Field, true
	}
	return "", false
}

func quoteView(quote application.Quote, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Booking quote"),
		keyValue(s, "total", s.total.Render(quote.Total)),
		keyValue(s, "cancellation", cancellationLine(quote.FreeCancellationBefore, opts.Now)),
		keyValue(s, "order", quote.OrderID),
		keyValue(s, "reference", quote.Reference),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cancellationLine(deadline, now time.Time) string {
	if deadline.IsZero() {
		return "non-refundable"
	}

	formatted := "free before " + deadline.Format("15:04 on 02 Jan 2006")
	if now.IsZero() {
		return formatted
	}
	if !deadline.After(now) {
		return formatted + " (passed)"
	}

	return fmt.Sprintf("%s (%s left)", formatted, remaining(deadline.Sub(now)))
}

func remaining(d time.Duration) string {
	if d < 24*time.Hour {
		hours := int(math.Ceil(d.Hours()))
		if hours <= 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	days := int(math.Floor(d.Hours() / 24))
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func sessionsView(sessions []domain.SessionSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Booking sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No booking sessions recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		lines = append(lines, s.section.Render(sessionView(session, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionView(session domain.SessionSnapshot, opts RenderOptions, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.title.Render(domain.SupportReference(session.OrderID)),
		" ",
		phaseStyle(session.Phase, s).Render("["+string(session.Phase)+"]"),
	)

	parts := []string{title, keyValue(s, "order", session.OrderID)}
	if session.PaymentType != nil {
		parts = append(parts, keyValue(s, "total", session.PaymentType.DisplayTotal()))
	}
	if !session.UpdatedAt.IsZero() {
		parts = append(parts, keyValue(s, "updated", formatUpdated(session.UpdatedAt, opts.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func phaseStyle(phase domain.Phase, s styles) lipgloss.Style {
	switch phase {
	case domain.PhaseSuccess:
		return s.success
	case domain.PhaseError:
		return s.failure
	case domain.PhaseProcessing:
		return s.pending
	default:
		return s.phaseTag
	}
}

func formatUpdated(updatedAt, now time.Time) string {
	if now.IsZero() {
		return updatedAt.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := updatedAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return updatedAt.Format("15:04")
	}

	return updatedAt.Format("15:04 on 02 Jan")
}

func keyValue(s styles, key, value string) string {
	return s.key.Render(key+":") + " " + s.detail.Render(value)
}

func titleOr(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}
