package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingService struct {
	supplier ports.SupplierAPI
	sessions ports.SessionRepository
	ipLookup ports.IPLookup
	poller   *Poller
	clock    ports.Clock
	logger   *logrus.Logger
	messages domain.Messages
	cfg      Config
	newUUID  func() string
}

func NewBookingService(
	supplier ports.SupplierAPI,
	sessions ports.SessionRepository,
	ipLookup ports.IPLookup,
	redirector ports.ThreeDSRedirector,
	clock ports.Clock,
	logger *logrus.Logger,
	cfg Config,
) *BookingService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cfg = cfg.withDefaults()

	return &BookingService{
		supplier: supplier,
		sessions: sessions,
		ipLookup: ipLookup,
		poller:   NewPoller(supplier, redirector, sessions, clock, logger, cfg),
		clock:    clock,
		logger:   logger,
		messages: domain.NewMessages(cfg.Language),
		cfg:      cfg,
		newUUID:  uuid.NewString,
	}
}

func (s *BookingService) StartSession(bookHash string) *domain.BookingSession {
	return domain.NewSession(bookHash, s.clock.Now())
}

// Initialize resolves the booking form for a fresh session and selects the pay-now rate.
// It runs once per session; later calls return ErrAlreadyInitialized without a request.
func (s *BookingService) Initialize(ctx context.Context, session *domain.BookingSession) (Quote, error) {
	if !session.BeginInitialization() {
		return Quote{}, domain.ErrAlreadyInitialized
	}
	log := sessionLogger(s.logger, session)

	form, err := s.supplier.ResolveBookingForm(ctx, ports.BookingFormRequest{
		PartnerOrderID: session.OrderID(),
		BookHash:       session.BookHash,
		Language:       s.cfg.Language,
		UserIP:         s.lookupIP(ctx, log),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Quote{}, err
		}
		code, message := upstreamDetails(err)
		notice := domain.NoticeInitFailed
		if code != domain.CodeUnknown {
			notice = code.Notice()
		}
		log.WithError(err).Warn("booking form request failed")
		return Quote{}, s.fail(session, domain.PhaseError, code, notice, message, err)
	}

	if form.PartnerOrderID != "" {
		if err := session.Order.Adopt(form.PartnerOrderID); err != nil {
			log.WithError(err).Warn("ignoring partner order id from booking form")
		} else {
			log = sessionLogger(s.logger, session)
		}
	}

	if strings.TrimSpace(form.ItemID) == "" {
		return Quote{}, s.fail(session, domain.PhaseError, domain.CodeUnknown, domain.NoticeInitFailed, "", domain.ErrSessionNotReady)
	}

	payment, ok := selectPayNow(form.PaymentOptions)
	if !ok {
		log.Warn("booking form offers no pay-now option")
		return Quote{}, s.fail(session, domain.PhaseError, domain.CodeUnknown, domain.NoticePayNowMissing, "", domain.ErrPayNowUnavailable)
	}

	now := s.clock.Now()
	session.SetDraft(form.ItemID, payment, now)
	if err := session.Transition(domain.PhaseForm, now); err != nil {
		return Quote{}, err
	}
	saveSnapshot(ctx, s.sessions, session, log)
	log.WithField("total", payment.DisplayTotal()).Info("booking form ready")

	return quoteFor(session), nil
}

// Tokenize registers the card under handles. Field-level rejections send the session
// back to the form; anything else ends it.
func (s *BookingService) Tokenize(ctx context.Context, session *domain.BookingSession, card domain.Card, holder domain.Guest, handles domain.TokenHandles) error {
	if !session.Ready() {
		return domain.ErrSessionNotReady
	}

	err := s.supplier.CreateCardToken(ctx, ports.CardTokenRequest{
		ItemID:        session.ItemID(),
		Handles:       handles,
		UserFirstName: holder.FirstName,
		UserLastName:  holder.LastName,
		Card:          card,
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	log := sessionLogger(s.logger, session)
	code, message := upstreamDetails(err)
	if field, ok := code.CardField(); ok {
		log.WithField("field", string(field)).Info("card rejected by tokenizer")
		fieldErr := &domain.FieldError{Field: field, Code: code, Message: message}
		return s.fail(session, domain.PhaseForm, code, domain.NoticeCardRejected, message, fieldErr)
	}

	log.WithError(err).Warn("card tokenization failed")
	return s.fail(session, domain.PhaseError, code, domain.NoticeCardRejected, message, err)
}

// Submit starts the booking on the supplier and hands the session to the poller.
func (s *BookingService) Submit(ctx context.Context, session *domain.BookingSession, cmd BookCommand, handles domain.TokenHandles) (*PollTask, error) {
	payment, ok := session.PaymentType()
	if !ok {
		return nil, domain.ErrSessionNotReady
	}
	lead, ok := cmd.Roster.LeadGuest()
	if !ok {
		return nil, domain.ErrInvalidRoster
	}
	log := sessionLogger(s.logger, session)

	orderID := session.OrderID()
	result, err := s.supplier.StartBooking(ctx, ports.StartBookingRequest{
		PartnerOrderID:  orderID,
		Language:        s.cfg.Language,
		Contact:         cmd.Contact,
		LeadGuest:       lead,
		Rooms:           cmd.Roster.Rooms,
		Payment:         payment,
		Handles:         handles,
		ReturnPath:      s.ReturnPath(orderID),
		ArrivalDateTime: arrivalDateTime(cmd.CheckIn, s.cfg.ArrivalHour),
	})

	registered := true
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if bookingErr := s.classifySubmitError(session, log, err); bookingErr != nil {
			return nil, bookingErr
		}
	} else {
		registered = result.Registered
	}

	saveSnapshot(ctx, s.sessions, session, log)

	opts := PollOptions{StartedAt: s.clock.Now()}
	if !registered {
		log.Debug("booking accepted before registration, delaying first status check")
		opts.InitialDelay = s.cfg.RegistrationDelay
	}
	return s.poller.Start(ctx, session, opts), nil
}

// classifySubmitError returns nil for failures that should still be polled.
func (s *BookingService) classifySubmitError(session *domain.BookingSession, log *logrus.Entry, err error) error {
	code, message := upstreamDetails(err)
	if code.HardSubmissionFailure() {
		phase := domain.PhaseError
		if code == domain.CodeBlock {
			phase = domain.PhaseForm
		}
		log.WithField("code", string(code)).Info("booking rejected by supplier")
		return s.fail(session, phase, code, code.Notice(), "", err)
	}

	var upstream *ports.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.StatusCode == http.StatusTooManyRequests || upstream.StatusCode >= http.StatusInternalServerError {
			log.WithField("status_code", upstream.StatusCode).Warn("start booking returned a transient status, polling anyway")
			return nil
		}
		return s.fail(session, domain.PhaseForm, code, domain.NoticeSubmitRejected, message, err)
	}

	var supplierErr *ports.SupplierError
	if errors.As(err, &supplierErr) {
		notice := code.Notice()
		log.WithField("code", supplierErr.Code).Warn("start booking reported an error")
		return s.fail(session, domain.PhaseError, code, notice, message, err)
	}

	// The request may have reached the supplier; polling settles it either way.
	log.WithError(err).Warn("start booking request failed, polling anyway")
	return nil
}

// Book runs the form submission: local validation, tokenization, submission and polling.
// Supplier-side failures are reported through the outcome; the error is reserved for
// local validation, misuse and cancellation.
func (s *BookingService) Book(ctx context.Context, session *domain.BookingSession, cmd BookCommand) (domain.Outcome, error) {
	if err := cmd.Roster.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	card := cmd.Card.Normalize()
	if err := card.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	cmd.Card = card
	lead, ok := cmd.Roster.LeadGuest()
	if !ok {
		return domain.Outcome{}, domain.ErrInvalidRoster
	}
	if !session.Ready() {
		return domain.Outcome{}, domain.ErrSessionNotReady
	}
	if err := session.Transition(domain.PhaseProcessing, s.clock.Now()); err != nil {
		return domain.Outcome{}, err
	}

	handles := domain.TokenHandles{PayUUID: s.newUUID(), InitUUID: s.newUUID()}
	if err := s.Tokenize(ctx, session, card, lead, handles); err != nil {
		return outcomeForError(session, err)
	}

	task, err := s.Submit(ctx, session, cmd, handles)
	if err != nil {
		return outcomeForError(session, err)
	}
	return task.Wait()
}

// Resume re-enters a booking from the 3DS return URL.
func (s *BookingService) Resume(ctx context.Context, returnURL string) (domain.Outcome, error) {
	orderID, err := ParseReturnOrderID(returnURL)
	if err != nil {
		return domain.Outcome{}, err
	}
	return s.ResumeOrder(ctx, orderID)
}

func (s *BookingService) ResumeOrder(ctx context.Context, orderID string) (domain.Outcome, error) {
	session, err := s.resumeSession(ctx, orderID)
	if err != nil {
		return domain.Outcome{}, err
	}

	task := s.poller.Start(ctx, session, PollOptions{StartedAt: s.clock.Now()})
	return task.Wait()
}

func (s *BookingService) resumeSession(ctx context.Context, orderID string) (*domain.BookingSession, error) {
	snapshot := domain.SessionSnapshot{OrderID: orderID}
	if s.sessions != nil {
		stored, err := s.sessions.GetByOrderID(ctx, orderID)
		switch {
		case err == nil:
			snapshot = stored
		case errors.Is(err, domain.ErrSessionNotFound):
		default:
			s.logger.WithError(err).Warn("could not load stored booking session")
		}
	}

	return domain.ResumeSession(snapshot, s.clock.Now())
}

func (s *BookingService) ListSessions(ctx context.Context) ([]domain.SessionSnapshot, error) {
	if s.sessions == nil {
		return nil, nil
	}
	snapshots, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list booking sessions: %w", err)
	}
	return snapshots, nil
}

// ReturnPath is where the bank sends the browser after 3DS, carrying the order id.
func (s *BookingService) ReturnPath(orderID string) string {
	query := url.Values{"partner_order_id": []string{orderID}}
	return strings.TrimRight(s.cfg.ReturnBaseURL, "/") + ports.ThreeDSReturnPath + "?" + query.Encode()
}

func ParseReturnOrderID(returnURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(returnURL))
	if err != nil {
		return "", fmt.Errorf("parse return url: %w", err)
	}
	orderID := strings.TrimSpace(parsed.Query().Get("partner_order_id"))
	if orderID == "" {
		return "", domain.ErrMissingOrderID
	}
	return orderID, nil
}

func (s *BookingService) lookupIP(ctx context.Context, log *logrus.Entry) string {
	if s.ipLookup == nil {
		return ""
	}
	ip, err := s.ipLookup.PublicIP(ctx)
	if err != nil {
		log.WithError(err).Debug("public ip lookup failed")
		return ""
	}
	return ip
}

func (s *BookingService) fail(session *domain.BookingSession, phase domain.Phase, code domain.SupplierCode, notice domain.Notice, text string, cause error) error {
	bookingErr := s.messages.Error(phase, code, notice, domain.SupportReference(session.OrderID()), text, cause)
	if err := session.Fail(bookingErr, s.clock.Now()); err != nil {
		return fmt.Errorf("record booking failure: %w", errors.Join(bookingErr, err))
	}
	return bookingErr
}

func selectPayNow(options []ports.PaymentOption) (domain.PaymentType, bool) {
	var policy domain.CancellationPolicy
	if len(options) > 0 {
		policy.FreeCancellationBefore = options[0].FreeCancellationBefore
	}

	for _, option := range options {
		if !strings.EqualFold(strings.TrimSpace(option.Kind), domain.PaymentKindNow) {
			continue
		}
		return domain.PaymentType{
			Kind:               domain.PaymentKindNow,
			Amount:             option.Amount,
			CurrencyCode:       option.CurrencyCode,
			CancellationPolicy: policy,
		}, true
	}
	return domain.PaymentType{}, false
}

func arrivalDateTime(checkIn time.Time, hour int) string {
	if checkIn.IsZero() {
		return ""
	}
	arrival := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), hour, 0, 0, 0, time.Local)
	return arrival.Format("2006-01-02T15:04:05")
}

func upstreamDetails(err error) (domain.SupplierCode, string) {
	var upstream *ports.UpstreamError
	if errors.As(err, &upstream) {
		return domain.ParseSupplierCode(upstream.Code), upstream.Message
	}
	var supplierErr *ports.SupplierError
	if errors.As(err, &supplierErr) {
		code := domain.ParseSupplierCode(supplierErr.Code)
		if code == domain.CodeUnknown {
			code = domain.ParseSupplierCode(supplierErr.Message)
		}
		return code, supplierErr.Message
	}
	return domain.CodeUnknown, ""
}

func outcomeForError(session *domain.BookingSession, err error) (domain.Outcome, error) {
	var bookingErr *domain.BookingError
	if errors.As(err, &bookingErr) {
		return domain.FailedOutcome(session.OrderID(), bookingErr), nil
	}
	return domain.Outcome{}, err
}

func sessionLogger(logger *logrus.Logger, session *domain.BookingSession) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"order_ref": domain.SupportReference(session.OrderID()),
		"phase":     string(session.Phase()),
	})
}

func saveSnapshot(ctx context.Context, sessions ports.SessionRepository, session *domain.BookingSession, log *logrus.Entry) {
	if sessions == nil {
		return
	}
	if err := sessions.Save(ctx, session.Snapshot()); err != nil {
		log.WithError(err).Warn("could not record booking session")
	}
}
