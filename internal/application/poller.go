package application

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Poller checks booking status on a fixed interval until the booking settles,
// the wall-clock budget runs out, or the task is canceled.
type Poller struct {
	supplier   ports.SupplierAPI
	redirector ports.ThreeDSRedirector
	sessions   ports.SessionRepository
	clock      ports.Clock
	logger     *logrus.Logger
	messages   domain.Messages
	cfg        Config
}

func NewPoller(supplier ports.SupplierAPI, redirector ports.ThreeDSRedirector, sessions ports.SessionRepository, clock ports.Clock, logger *logrus.Logger, cfg Config) *Poller {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cfg = cfg.withDefaults()

	return &Poller{
		supplier:   supplier,
		redirector: redirector,
		sessions:   sessions,
		clock:      clock,
		logger:     logger,
		messages:   domain.NewMessages(cfg.Language),
		cfg:        cfg,
	}
}

// PollTask is a running poll loop. Cancel stops it and clears any pending tick.
type PollTask struct {
	cancel context.CancelFunc
	done   chan struct{}

	outcome domain.Outcome
	err     error
}

func (t *PollTask) Cancel() {
	t.cancel()
}

func (t *PollTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the loop stops. The error is only set when the loop was canceled.
func (t *PollTask) Wait() (domain.Outcome, error) {
	<-t.done
	return t.outcome, t.err
}

func (p *Poller) Start(ctx context.Context, session *domain.BookingSession, opts PollOptions) *PollTask {
	ctx, cancel := context.WithCancel(ctx)
	task := &PollTask{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(task.done)
		defer cancel()
		task.outcome, task.err = p.run(ctx, session, opts)
	}()

	return task
}

func (p *Poller) run(ctx context.Context, session *domain.BookingSession, opts PollOptions) (domain.Outcome, error) {
	startedAt := opts.StartedAt
	if startedAt.IsZero() {
		startedAt = p.clock.Now()
	}
	deadline := startedAt.Add(p.cfg.PollBudget)
	log := sessionLogger(p.logger, session)

	wait := opts.InitialDelay
	for tick := 1; ; tick++ {
		// No tick sleeps past the deadline.
		wait = min(wait, deadline.Sub(p.clock.Now()))
		if wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				log.WithField("tick", tick).Debug("status polling canceled")
				return domain.Outcome{}, err
			}
		}
		wait = p.cfg.PollInterval

		now := p.clock.Now()
		if !now.Before(deadline) {
			return p.fail(ctx, session, log, domain.CodeUnknown, domain.NoticeTimeout, context.DeadlineExceeded)
		}

		orderID := session.OrderID()
		result, err := p.check(ctx, orderID, deadline.Sub(now))
		elapsed := p.clock.Now().Sub(startedAt)
		entry := log.WithFields(logrus.Fields{"tick": tick, "elapsed": elapsed.Round(time.Millisecond).String()})

		if err != nil {
			if ctx.Err() != nil {
				return domain.Outcome{}, ctx.Err()
			}

			var upstream *ports.UpstreamError
			if errors.As(err, &upstream) {
				if upstream.StatusCode == http.StatusNotFound && elapsed < p.cfg.NotFoundGrace {
					entry.Debug("booking not registered yet")
					continue
				}
				entry.WithField("status_code", upstream.StatusCode).Warn("booking status rejected")
				return p.fail(ctx, session, log, domain.ParseSupplierCode(upstream.Code), domain.NoticeStatusUnavailable, err)
			}

			if errors.Is(err, context.DeadlineExceeded) {
				return p.fail(ctx, session, log, domain.CodeUnknown, domain.NoticeTimeout, err)
			}
			if p.clock.Now().Add(p.cfg.PollInterval).After(deadline) {
				return p.fail(ctx, session, log, domain.CodeUnknown, domain.NoticeConnection, err)
			}
			entry.WithError(err).Warn("booking status request failed, retrying")
			continue
		}

		status := normalizeStatus(result.Status)
		entry = entry.WithField("status", status)

		switch status {
		case "ok", "completed", "confirmed":
			return p.succeed(ctx, session, log)
		case "processing", "pending", "requested":
			entry.Debug("booking still processing")
		case string(domain.CodePageNotFound):
			return p.fail(ctx, session, log, domain.CodePageNotFound, domain.NoticeSessionExpired, nil)
		case string(domain.CodeNotFound):
			return p.fail(ctx, session, log, domain.CodeNotFound, domain.NoticeNotFound, nil)
		case string(domain.CodeThreeDS):
			if result.ThreeDS == nil || strings.TrimSpace(result.ThreeDS.ActionURL) == "" {
				entry.Debug("3ds requested without a target, waiting")
				continue
			}
			return p.redirect(ctx, session, log, *result.ThreeDS)
		case "error":
			code := domain.ParseSupplierCode(result.Code)
			if code == domain.CodeUnknown {
				code = domain.ParseSupplierCode(result.Message)
			}
			entry.WithField("code", string(code)).Info("booking failed upstream")
			return p.fail(ctx, session, log, code, code.Notice(), nil)
		default:
			entry.Debug("unrecognized booking status, waiting")
		}
	}
}

func (p *Poller) check(ctx context.Context, orderID string, remaining time.Duration) (ports.StatusResult, error) {
	requestCtx, cancel := context.WithTimeout(ctx, remaining)
	defer cancel()

	return p.supplier.BookingStatus(requestCtx, orderID)
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) error {
	timer := p.clock.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}

func (p *Poller) succeed(ctx context.Context, session *domain.BookingSession, log *logrus.Entry) (domain.Outcome, error) {
	if err := session.Transition(domain.PhaseSuccess, p.clock.Now()); err != nil {
		return domain.Outcome{}, err
	}
	saveSnapshot(ctx, p.sessions, session, log)

	orderID := session.OrderID()
	reference := domain.SupportReference(orderID)
	title, text := p.messages.Render(domain.NoticeConfirmed, reference)
	payment, _ := session.PaymentType()
	log.Info("booking confirmed")

	return domain.Outcome{
		Phase:     domain.PhaseSuccess,
		OrderID:   orderID,
		Reference: reference,
		Title:     title,
		Text:      text,
		Total:     payment.DisplayTotal(),
	}, nil
}

func (p *Poller) fail(ctx context.Context, session *domain.BookingSession, log *logrus.Entry, code domain.SupplierCode, notice domain.Notice, cause error) (domain.Outcome, error) {
	orderID := session.OrderID()
	bookingErr := p.messages.Error(domain.PhaseError, code, notice, domain.SupportReference(orderID), "", cause)
	if err := session.Fail(bookingErr, p.clock.Now()); err != nil {
		return domain.Outcome{}, err
	}
	saveSnapshot(ctx, p.sessions, session, log)
	log.WithField("notice", string(notice)).Warn("booking ended in error")

	return domain.FailedOutcome(orderID, bookingErr), nil
}

func (p *Poller) redirect(ctx context.Context, session *domain.BookingSession, log *logrus.Entry, redirect domain.ThreeDSRedirect) (domain.Outcome, error) {
	orderID := session.OrderID()
	saveSnapshot(ctx, p.sessions, session, log)

	if p.redirector == nil {
		return p.fail(ctx, session, log, domain.CodeThreeDS, domain.NoticeThreeDSFailed, errors.New("no 3ds redirector configured"))
	}
	if err := p.redirector.Redirect(ctx, orderID, redirect); err != nil {
		if ctx.Err() != nil {
			return domain.Outcome{}, ctx.Err()
		}
		return p.fail(ctx, session, log, domain.CodeThreeDS, domain.NoticeThreeDSFailed, err)
	}
	log.WithField("action_url", redirect.ActionURL).Info("handed booking to 3ds authentication")

	return domain.Outcome{
		Phase:     domain.PhaseProcessing,
		OrderID:   orderID,
		Reference: domain.SupportReference(orderID),
		Redirect:  &redirect,
	}, nil
}

func normalizeStatus(raw string) string {
	status := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(status, " ", "_")
}
