package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
)

// SupplierAPI is the upstream booking API, reached through the partner proxy.
type SupplierAPI interface {
	ResolveBookingForm(ctx context.Context, req BookingFormRequest) (BookingForm, error)
	CreateCardToken(ctx context.Context, req CardTokenRequest) error
	StartBooking(ctx context.Context, req StartBookingRequest) (StartBookingResult, error)
	BookingStatus(ctx context.Context, partnerOrderID string) (StatusResult, error)
}

type BookingFormRequest struct {
	PartnerOrderID string
	BookHash       string
	Language       string
	UserIP         string
}

type PaymentOption struct {
	Kind                   string
	Amount                 string
	CurrencyCode           string
	FreeCancellationBefore time.Time
}

type BookingForm struct {
	ItemID string
	// PartnerOrderID is set when the supplier reassigned the order id.
	PartnerOrderID string
	PaymentOptions []PaymentOption
}

type CardTokenRequest struct {
	ItemID        string
	Handles       domain.TokenHandles
	UserFirstName string
	UserLastName  string
	Card          domain.Card
}

type Contact struct {
	Email   string
	Phone   string
	Comment string
}

type StartBookingRequest struct {
	PartnerOrderID string
	Language       string
	Contact        Contact
	LeadGuest      domain.Guest
	Rooms          []domain.Room
	Payment        domain.PaymentType
	Handles        domain.TokenHandles
	ReturnPath     string
	// ArrivalDateTime is empty when the check-in date is unknown.
	ArrivalDateTime string
}

type StartBookingResult struct {
	// Registered is false when the supplier accepted the order without a payload yet.
	Registered bool
	Status     string
	Code       string
	Message    string
}

type StatusResult struct {
	Status  string
	Code    string
	Message string
	ThreeDS *domain.ThreeDSRedirect
}

// UpstreamError is a non-2xx answer from the proxy.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Code       string
	Message    string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// SupplierError is a 2xx answer whose envelope reports a failure.
type SupplierError struct {
	Endpoint string
	Code     string
	Message  string
}

func (e *SupplierError) Error() string {
	if e.Message != "" && e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Endpoint, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Code)
	}
	return e.Endpoint + ": failed"
}
