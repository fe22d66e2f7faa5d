package application

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/logging"
	"github.com/bnema/roombook-cli/internal/ports"
	"github.com/bnema/roombook-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(supplier ports.SupplierAPI, sessions ports.SessionRepository, clock *fakeClock) *BookingService {
	cfg := DefaultConfig()
	cfg.ReturnBaseURL = "http://127.0.0.1:1456"
	return NewBookingService(supplier, sessions, nil, nil, clock, logging.Discard(), cfg)
}

func payNowForm() ports.BookingForm {
	return ports.BookingForm{
		ItemID: "item-1",
		PaymentOptions: []ports.PaymentOption{
			{Kind: "now", Amount: "120.00", CurrencyCode: "USD"},
		},
	}
}

func testBookCommand() BookCommand {
	return BookCommand{
		Roster: domain.GuestRoster{Rooms: []domain.Room{{
			Adults: 1,
			Guests: []domain.Guest{{FirstName: "Ada", LastName: "Lovelace"}},
		}}},
		Card:    domain.Card{Holder: "ADA LOVELACE", Number: "4111 1111 1111 1111", Month: "09", Year: "29", CVC: "123"},
		Contact: ports.Contact{Email: "ada@example.com", Phone: "+44 20 7946 0000"},
		CheckIn: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func formSession(t *testing.T, service *BookingService, supplier *mocks.MockSupplierAPI, form ports.BookingForm) *domain.BookingSession {
	t.Helper()
	session := service.StartSession("hash-1")
	supplier.EXPECT().ResolveBookingForm(mockAnyContext(), mock.Anything).Return(form, nil).Once()

	_, err := service.Initialize(context.Background(), session)
	require.NoError(t, err)
	require.Equal(t, domain.PhaseForm, session.Phase())
	return session
}

func TestInitializeQuotesPayNowRateAndAdoptsOrderID(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	sessions := mocks.NewMockSessionRepository(t)
	ipLookup := mocks.NewMockIPLookup(t)
	clock := newFakeClock(pollEpoch)
	service := NewBookingService(supplier, sessions, ipLookup, nil, clock, logging.Discard(), DefaultConfig())

	session := service.StartSession("hash-1")
	clientOrderID := session.OrderID()
	freeUntil := time.Date(2026, 5, 30, 23, 59, 0, 0, time.UTC)

	ipLookup.EXPECT().PublicIP(mockAnyContext()).Return("203.0.113.7", nil).Once()
	supplier.EXPECT().ResolveBookingForm(mockAnyContext(), ports.BookingFormRequest{
		PartnerOrderID: clientOrderID,
		BookHash:       "hash-1",
		Language:       "en",
		UserIP:         "203.0.113.7",
	}).Return(ports.BookingForm{
		ItemID:         "item-1",
		PartnerOrderID: "supplier-order",
		PaymentOptions: []ports.PaymentOption{
			{Kind: "deposit", Amount: "30.00", CurrencyCode: "USD", FreeCancellationBefore: freeUntil},
			{Kind: "now", Amount: "120.00", CurrencyCode: "USD"},
		},
	}, nil).Once()
	sessions.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(snapshot domain.SessionSnapshot) bool {
		return snapshot.OrderID == "supplier-order" &&
			snapshot.Phase == domain.PhaseForm &&
			snapshot.ItemID == "item-1" &&
			assert.ObjectsAreEqual([]string{clientOrderID}, snapshot.RetiredOrderIDs)
	})).Return(nil).Once()

	quote, err := service.Initialize(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, "USD 120.00", quote.Total)
	assert.Equal(t, "supplier-order", quote.OrderID)
	assert.Equal(t, freeUntil, quote.FreeCancellationBefore)
	assert.Equal(t, domain.PaymentKindNow, quote.Payment.Kind)
	assert.Equal(t, domain.PhaseForm, session.Phase())
	assert.Equal(t, "supplier-order", session.OrderID())
}

func TestInitializeRunsOncePerSession(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	_, err := service.Initialize(context.Background(), session)

	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
	supplier.AssertNumberOfCalls(t, "ResolveBookingForm", 1)
}

func TestInitializeWithoutPayNowOptionEndsSession(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := service.StartSession("hash-1")

	supplier.EXPECT().ResolveBookingForm(mockAnyContext(), mock.Anything).Return(ports.BookingForm{
		ItemID:         "item-1",
		PaymentOptions: []ports.PaymentOption{{Kind: "hotel", Amount: "120.00", CurrencyCode: "USD"}},
	}, nil).Once()

	_, err := service.Initialize(context.Background(), session)
	require.Error(t, err)

	var bookingErr *domain.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, domain.NoticePayNowMissing, bookingErr.Notice)
	assert.ErrorIs(t, err, domain.ErrPayNowUnavailable)
	assert.Equal(t, domain.PhaseError, session.Phase())
}

func TestInitializePreservesUpstreamMessage(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := service.StartSession("hash-1")

	supplier.EXPECT().ResolveBookingForm(mockAnyContext(), mock.Anything).
		Return(ports.BookingForm{}, &ports.SupplierError{Endpoint: "hotel-booking-form", Message: "Rate is no longer available"}).Once()

	_, err := service.Initialize(context.Background(), session)

	var bookingErr *domain.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, "Rate is no longer available", bookingErr.Text)
	assert.Equal(t, domain.NoticeInitFailed, bookingErr.Notice)
	assert.False(t, bookingErr.Recoverable())
	assert.Equal(t, domain.PhaseError, session.Phase())
}

func TestInitializeMapsKnownUpstreamCode(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := service.StartSession("hash-1")

	supplier.EXPECT().ResolveBookingForm(mockAnyContext(), mock.Anything).
		Return(ports.BookingForm{}, &ports.UpstreamError{Endpoint: "hotel-booking-form", StatusCode: http.StatusBadRequest, Code: "invalid_book_hash"}).Once()

	_, err := service.Initialize(context.Background(), session)

	var bookingErr *domain.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, domain.NoticeOfferExpired, bookingErr.Notice)
	assert.Equal(t, "Offer expired", bookingErr.Title)
}

func TestInitializeSwallowsIPLookupFailure(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	ipLookup := mocks.NewMockIPLookup(t)
	service := NewBookingService(supplier, nil, ipLookup, nil, newFakeClock(pollEpoch), logging.Discard(), DefaultConfig())
	session := service.StartSession("hash-1")

	ipLookup.EXPECT().PublicIP(mockAnyContext()).Return("", errors.New("lookup timed out")).Once()
	supplier.EXPECT().ResolveBookingForm(mockAnyContext(), mock.MatchedBy(func(req ports.BookingFormRequest) bool {
		return req.UserIP == ""
	})).Return(payNowForm(), nil).Once()

	_, err := service.Initialize(context.Background(), session)
	require.NoError(t, err)
}

func TestBookConfirmsWithAdoptedOrderID(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	clock := newFakeClock(pollEpoch)
	service := newTestService(supplier, nil, clock)

	form := payNowForm()
	form.PartnerOrderID = "supplier-order"
	session := formSession(t, service, supplier, form)

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.MatchedBy(func(req ports.CardTokenRequest) bool {
		return req.ItemID == "item-1" &&
			req.Card.Number == "4111111111111111" &&
			req.UserFirstName == "Ada" &&
			req.Handles.PayUUID != "" && req.Handles.InitUUID != "" &&
			req.Handles.PayUUID != req.Handles.InitUUID
	})).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.MatchedBy(func(req ports.StartBookingRequest) bool {
		return req.PartnerOrderID == "supplier-order" &&
			req.ReturnPath == "http://127.0.0.1:1456/booking/return?partner_order_id=supplier-order" &&
			req.ArrivalDateTime == "2026-06-01T15:00:00" &&
			req.Payment.Kind == domain.PaymentKindNow &&
			req.LeadGuest.LastName == "Lovelace" &&
			req.Contact.Email == "ada@example.com"
	})).Return(ports.StartBookingResult{Registered: true, Status: "ok"}, nil).Once()
	supplier.EXPECT().BookingStatus(mockAnyContext(), "supplier-order").Return(ports.StatusResult{Status: "completed"}, nil).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseSuccess, outcome.Phase)
	assert.Equal(t, "supplier-order", outcome.OrderID)
	assert.Equal(t, "USD 120.00", outcome.Total)
	assert.Empty(t, clock.Timers())
}

func TestBookMapsLuhnErrorToCardNumberField(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).
		Return(&ports.SupplierError{Endpoint: "create-card-token", Code: "luhn_algorithm_error"}).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseForm, outcome.Phase)
	require.NotNil(t, outcome.Err)
	assert.True(t, outcome.Err.Recoverable())

	var fieldErr *domain.FieldError
	require.ErrorAs(t, outcome.Err, &fieldErr)
	assert.Equal(t, domain.CardFieldNumber, fieldErr.Field)
	assert.Equal(t, domain.PhaseForm, session.Phase())
}

func TestBookUnmappedTokenizationErrorEndsSession(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).
		Return(&ports.SupplierError{Endpoint: "create-card-token", Code: "tokenizer_offline", Message: "Tokenizer offline"}).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseError, outcome.Phase)
	assert.Equal(t, "Tokenizer offline", outcome.Text)
	assert.Equal(t, domain.PhaseError, session.Phase())
}

func TestBookSoldOutEndsSessionWithoutPolling(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).
		Return(ports.StartBookingResult{}, &ports.SupplierError{Endpoint: "start-booking-process", Code: "soldout"}).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseError, outcome.Phase)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, domain.NoticeSoldOut, outcome.Err.Notice)
	assert.Equal(t, "Room sold out", outcome.Title)
	supplier.AssertNotCalled(t, "BookingStatus", mock.Anything, mock.Anything)
}

func TestBookBlockedCardReturnsToForm(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).
		Return(ports.StartBookingResult{}, &ports.SupplierError{Endpoint: "start-booking-process", Code: "block"}).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseForm, outcome.Phase)
	assert.Equal(t, domain.NoticeCardBlocked, outcome.Err.Notice)
	assert.Equal(t, domain.PhaseForm, session.Phase())
	supplier.AssertNotCalled(t, "BookingStatus", mock.Anything, mock.Anything)
}

func TestBookRetryAfterFieldErrorUsesFreshTokenHandles(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	var handles []domain.TokenHandles
	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, req ports.CardTokenRequest) { handles = append(handles, req.Handles) }).
		Return(&ports.SupplierError{Endpoint: "create-card-token", Code: "invalid_cvc"}).Once()
	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, req ports.CardTokenRequest) { handles = append(handles, req.Handles) }).
		Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).Return(ports.StartBookingResult{Registered: true}, nil).Once()
	supplier.EXPECT().BookingStatus(mockAnyContext(), session.OrderID()).Return(ports.StatusResult{Status: "ok"}, nil).Once()

	first, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)
	require.Equal(t, domain.PhaseForm, first.Phase)

	second, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSuccess, second.Phase)

	require.Len(t, handles, 2)
	assert.NotEqual(t, handles[0].PayUUID, handles[1].PayUUID)
	assert.NotEqual(t, handles[0].InitUUID, handles[1].InitUUID)
}

func TestBookBadRequestReturnsToFormWithServerMessage(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).Return(ports.StartBookingResult{}, &ports.UpstreamError{
		Endpoint:   "start-booking-process",
		StatusCode: http.StatusBadRequest,
		Message:    "Guest email is invalid",
	}).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseForm, outcome.Phase)
	assert.Equal(t, "Guest email is invalid", outcome.Text)
	assert.Equal(t, domain.NoticeSubmitRejected, outcome.Err.Notice)
}

func TestBookBadRequestWithSessionCodeEndsSession(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).Return(ports.StartBookingResult{}, &ports.UpstreamError{
		Endpoint:   "start-booking-process",
		StatusCode: http.StatusBadRequest,
		Code:       "book limit",
	}).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseError, outcome.Phase)
	assert.Equal(t, domain.NoticeBookLimit, outcome.Err.Notice)
}

func TestBookTransientSubmitFailureStillPolls(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).Return(ports.StartBookingResult{}, &ports.UpstreamError{
		Endpoint:   "start-booking-process",
		StatusCode: http.StatusBadGateway,
	}).Once()
	supplier.EXPECT().BookingStatus(mockAnyContext(), session.OrderID()).Return(ports.StatusResult{Status: "confirmed"}, nil).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseSuccess, outcome.Phase)
}

func TestBookPendingSubmitStatusGoesOnToPoll(t *testing.T) {
	for _, status := range []string{"3ds", "processing"} {
		t.Run(status, func(t *testing.T) {
			t.Parallel()

			supplier := mocks.NewMockSupplierAPI(t)
			service := newTestService(supplier, nil, newFakeClock(pollEpoch))
			session := formSession(t, service, supplier, payNowForm())

			supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
			supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).Return(ports.StartBookingResult{Registered: true, Status: status}, nil).Once()
			supplier.EXPECT().BookingStatus(mockAnyContext(), session.OrderID()).Return(ports.StatusResult{Status: "processing"}, nil).Once()
			supplier.EXPECT().BookingStatus(mockAnyContext(), session.OrderID()).Return(ports.StatusResult{Status: "completed"}, nil).Once()

			outcome, err := service.Book(context.Background(), session, testBookCommand())
			require.NoError(t, err)

			assert.Equal(t, domain.PhaseSuccess, outcome.Phase)
			supplier.AssertNumberOfCalls(t, "BookingStatus", 2)
		})
	}
}

func TestBookUnregisteredSubmissionDelaysFirstStatusCheck(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	clock := newFakeClock(pollEpoch)
	service := newTestService(supplier, nil, clock)
	session := formSession(t, service, supplier, payNowForm())

	supplier.EXPECT().CreateCardToken(mockAnyContext(), mock.Anything).Return(nil).Once()
	supplier.EXPECT().StartBooking(mockAnyContext(), mock.Anything).Return(ports.StartBookingResult{Registered: false}, nil).Once()
	supplier.EXPECT().BookingStatus(mockAnyContext(), session.OrderID()).Return(ports.StatusResult{Status: "ok"}, nil).Once()

	outcome, err := service.Book(context.Background(), session, testBookCommand())
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseSuccess, outcome.Phase)
	timers := clock.Timers()
	require.NotEmpty(t, timers)
	assert.GreaterOrEqual(t, timers[0], 4*time.Second)
}

func TestBookValidationNeverLeavesClient(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))
	session := formSession(t, service, supplier, payNowForm())

	missingGuest := testBookCommand()
	missingGuest.Roster.Rooms[0].Adults = 2
	_, err := service.Book(context.Background(), session, missingGuest)
	assert.ErrorIs(t, err, domain.ErrInvalidRoster)

	missingCVC := testBookCommand()
	missingCVC.Card.CVC = ""
	_, err = service.Book(context.Background(), session, missingCVC)
	assert.ErrorIs(t, err, domain.ErrInvalidCard)

	assert.Equal(t, domain.PhaseForm, session.Phase())
	supplier.AssertNotCalled(t, "CreateCardToken", mock.Anything, mock.Anything)
}

func TestBookRequiresInitializedSession(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	service := newTestService(supplier, nil, newFakeClock(pollEpoch))

	_, err := service.Book(context.Background(), service.StartSession("hash-1"), testBookCommand())

	assert.ErrorIs(t, err, domain.ErrSessionNotReady)
}

func TestResumePollsOrderFromReturnURL(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	sessions := mocks.NewMockSessionRepository(t)
	service := newTestService(supplier, sessions, newFakeClock(pollEpoch))

	sessions.EXPECT().GetByOrderID(mockAnyContext(), testOrderID).Return(domain.SessionSnapshot{
		OrderID:     testOrderID,
		BookHash:    "hash-1",
		ItemID:      "item-1",
		Phase:       domain.PhaseProcessing,
		PaymentType: &domain.PaymentType{Kind: domain.PaymentKindNow, Amount: "120.00", CurrencyCode: "USD"},
	}, nil).Once()
	supplier.EXPECT().BookingStatus(mockAnyContext(), testOrderID).Return(ports.StatusResult{Status: "ok"}, nil).Once()
	sessions.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(snapshot domain.SessionSnapshot) bool {
		return snapshot.Phase == domain.PhaseSuccess
	})).Return(nil).Once()

	outcome, err := service.Resume(context.Background(), "http://127.0.0.1:1456/booking/return?partner_order_id="+testOrderID)
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseSuccess, outcome.Phase)
	assert.Equal(t, "USD 120.00", outcome.Total)
}

func TestResumeUnknownOrderStillPolls(t *testing.T) {
	supplier := mocks.NewMockSupplierAPI(t)
	sessions := mocks.NewMockSessionRepository(t)
	service := newTestService(supplier, sessions, newFakeClock(pollEpoch))

	sessions.EXPECT().GetByOrderID(mockAnyContext(), "order-9").Return(domain.SessionSnapshot{}, domain.ErrSessionNotFound).Once()
	supplier.EXPECT().BookingStatus(mockAnyContext(), "order-9").Return(ports.StatusResult{Status: "error", Code: "3ds"}, nil).Once()
	sessions.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Once()

	outcome, err := service.ResumeOrder(context.Background(), "order-9")
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseError, outcome.Phase)
	assert.Equal(t, domain.NoticeThreeDSFailed, outcome.Err.Notice)
}

func TestResumeRequiresOrderID(t *testing.T) {
	service := newTestService(mocks.NewMockSupplierAPI(t), nil, newFakeClock(pollEpoch))

	_, err := service.Resume(context.Background(), "http://127.0.0.1:1456/booking/return?status=ok")

	assert.ErrorIs(t, err, domain.ErrMissingOrderID)
}

func TestReturnPathEncodesCurrentOrderID(t *testing.T) {
	service := newTestService(mocks.NewMockSupplierAPI(t), nil, newFakeClock(pollEpoch))

	path := service.ReturnPath("order 1&x")

	assert.True(t, strings.HasPrefix(path, "http://127.0.0.1:1456"+ports.ThreeDSReturnPath+"?"))
	orderID, err := ParseReturnOrderID(path)
	require.NoError(t, err)
	assert.Equal(t, "order 1&x", orderID)
}

func TestArrivalDateTime(t *testing.T) {
	assert.Equal(t, "2026-06-01T15:00:00", arrivalDateTime(time.Date(2026, 6, 1, 22, 30, 0, 0, time.UTC), 15))
	assert.Empty(t, arrivalDateTime(time.Time{}, 15))
}

func TestListSessions(t *testing.T) {
	sessions := mocks.NewMockSessionRepository(t)
	service := newTestService(mocks.NewMockSupplierAPI(t), sessions, newFakeClock(pollEpoch))

	sessions.EXPECT().List(mockAnyContext()).Return([]domain.SessionSnapshot{{OrderID: "a"}, {OrderID: "b"}}, nil).Once()

	snapshots, err := service.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}
