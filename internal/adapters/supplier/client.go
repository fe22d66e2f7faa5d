package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// Client talks to the supplier through the partner proxy.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.SupplierAPI = Client{}

func (c Client) ResolveBookingForm(ctx context.Context, req ports.BookingFormRequest) (ports.BookingForm, error) {
	var env envelope[bookingFormPayload]
	err := c.post(ctx, bookingFormPath, bookingFormBody{
		PartnerOrderID: req.PartnerOrderID,
		BookHash:       req.BookHash,
		Language:       req.Language,
		UserIP:         req.UserIP,
	}, &env)
	if err != nil {
		return ports.BookingForm{}, err
	}

	if !statusIs(env.outer().Status, "success") || !statusIs(env.middle().Status, "ok") {
		return ports.BookingForm{}, envelopeError(bookingFormPath, env.code(), env.message())
	}

	payload, err := env.payload()
	if err != nil {
		return ports.BookingForm{}, fmt.Errorf("decode %s response: %w", endpointName(bookingFormPath), err)
	}
	if payload == nil {
		return ports.BookingForm{}, envelopeError(bookingFormPath, "", "booking form payload is empty")
	}

	form := ports.BookingForm{
		ItemID:         payload.ItemID.String(),
		PartnerOrderID: payload.PartnerOrderID.String(),
	}
	for _, option := range payload.PaymentTypes {
		decoded := ports.PaymentOption{
			Kind:         option.Type.String(),
			Amount:       option.Amount.String(),
			CurrencyCode: option.CurrencyCode.String(),
		}
		if option.CancellationPenalties != nil {
			decoded.FreeCancellationBefore = parseTime(option.CancellationPenalties.FreeCancellationBefore.String())
		}
		form.PaymentOptions = append(form.PaymentOptions, decoded)
	}

	return form, nil
}

func (c Client) CreateCardToken(ctx context.Context, req ports.CardTokenRequest) error {
	var env envelope[json.RawMessage]
	err := c.post(ctx, cardTokenPath, cardTokenBody{
		ObjectID:      req.ItemID,
		PayUUID:       req.Handles.PayUUID,
		InitUUID:      req.Handles.InitUUID,
		UserFirstName: req.UserFirstName,
		UserLastName:  req.UserLastName,
		CVC:           req.Card.CVC,
		IsCVCRequired: true,
		CreditCardDataCore: cardDataCore{
			CardNumber: req.Card.Number,
			CardHolder: req.Card.Holder,
			Month:      req.Card.Month,
			Year:       req.Card.Year,
		},
	}, &env)
	if err != nil {
		return err
	}

	// The nested data object can report a failure under a successful outer status.
	middle := env.middle()
	if !statusIs(env.outer().Status, "success") || statusIs(middle.Status, "error") || middle.Error.String() != "" {
		return envelopeError(cardTokenPath, env.code(), env.message())
	}
	return nil
}

func (c Client) StartBooking(ctx context.Context, req ports.StartBookingRequest) (ports.StartBookingResult, error) {
	var env envelope[json.RawMessage]
	if err := c.post(ctx, startBookingPath, newStartBookingBody(req), &env); err != nil {
		return ports.StartBookingResult{}, err
	}

	// Only hard codes end a submission here; 3ds and the rest surface while polling.
	code := env.code()
	if code == "" {
		if parsed := domain.ParseSupplierCode(env.status()); parsed.HardSubmissionFailure() {
			code = string(parsed)
		}
	}
	if code != "" || env.anyStatusIs("error") {
		return ports.StartBookingResult{}, envelopeError(startBookingPath, code, env.message())
	}

	payload, err := env.payload()
	if err != nil {
		return ports.StartBookingResult{}, fmt.Errorf("decode %s response: %w", endpointName(startBookingPath), err)
	}

	return ports.StartBookingResult{
		Registered: payload != nil,
		Status:     env.status(),
		Message:    env.message(),
	}, nil
}

func (c Client) BookingStatus(ctx context.Context, partnerOrderID string) (ports.StatusResult, error) {
	var env envelope[bookingStatusPayload]
	if err := c.post(ctx, bookingStatePath, bookingStatusBody{PartnerOrderID: partnerOrderID}, &env); err != nil {
		return ports.StatusResult{}, err
	}

	result := ports.StatusResult{
		Status:  env.status(),
		Code:    env.code(),
		Message: env.message(),
	}

	payload, err := env.payload()
	if err != nil {
		// A payload that is not an object still leaves the outer layers usable.
		return result, nil
	}
	if payload != nil && payload.Data3DS != nil {
		redirect := domain.ThreeDSRedirect{
			ActionURL: payload.Data3DS.ActionURL.String(),
			Method:    payload.Data3DS.Method.String(),
			Fields:    map[string]string{},
		}
		for key, value := range payload.Data3DS.Data {
			redirect.Fields[key] = string(value)
		}
		result.ThreeDS = &redirect
	}

	return result, nil
}

func newStartBookingBody(req ports.StartBookingRequest) startBookingBody {
	rooms := make([]roomBody, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		guests := make([]guestBody, 0, len(room.Guests))
		for _, guest := range room.Guests {
			body := guestBody{FirstName: guest.FirstName, LastName: guest.LastName}
			if guest.IsChild {
				age := guest.Age
				body.IsChild = true
				body.Age = &age
			}
			guests = append(guests, body)
		}
		rooms = append(rooms, roomBody{Guests: guests})
	}

	return startBookingBody{
		User: userBody{
			Email:   req.Contact.Email,
			Phone:   req.Contact.Phone,
			Comment: req.Contact.Comment,
		},
		SupplierData: supplierDataBody{
			FirstNameOriginal: req.LeadGuest.FirstName,
			LastNameOriginal:  req.LeadGuest.LastName,
			Phone:             req.Contact.Phone,
			Email:             req.Contact.Email,
		},
		Partner: partnerBody{
			PartnerOrderID:  req.PartnerOrderID,
			Comment:         req.Contact.Comment,
			AmountSellB2B2C: req.Payment.Amount,
		},
		Language: req.Language,
		Rooms:    rooms,
		PaymentType: paymentTypeBody{
			Type:         domain.PaymentKindNow,
			Amount:       req.Payment.Amount,
			CurrencyCode: req.Payment.CurrencyCode,
			PayUUID:      req.Handles.PayUUID,
			InitUUID:     req.Handles.InitUUID,
		},
		ReturnPath:      req.ReturnPath,
		ArrivalDateTime: req.ArrivalDateTime,
	}
}

func (c Client) post(ctx context.Context, path string, body any, out any) error {
	name := endpointName(path)
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", name, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeUpstreamError(name, resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

// decodeUpstreamError keeps whatever code and message the proxy put in the error body.
func decodeUpstreamError(name string, resp *http.Response) error {
	upstream := &ports.UpstreamError{Endpoint: name, StatusCode: resp.StatusCode}

	var env envelope[json.RawMessage]
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err == nil {
		upstream.Code = env.code()
		upstream.Message = env.message()
	}
	return upstream
}

func envelopeError(path string, code string, message string) error {
	return &ports.SupplierError{Endpoint: endpointName(path), Code: code, Message: message}
}

func endpointName(path string) string {
	return strings.TrimPrefix(path, "/api/")
}

func parseTime(value string) time.Time {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
