package domain

import (
	"net/http"
	"strings"
)

// ThreeDSRedirect is the bank page the browser has to be posted to.
type ThreeDSRedirect struct {
	ActionURL string
	Method    string
	Fields    map[string]string
}

func (r ThreeDSRedirect) FormMethod() string {
	if strings.EqualFold(strings.TrimSpace(r.Method), http.MethodGet) {
		return http.MethodGet
	}
	return http.MethodPost
}

// Outcome is where a booking flow stopped.
type Outcome struct {
	Phase     Phase
	OrderID   string
	Reference string
	Title     string
	Text      string
	Total     string
	Redirect  *ThreeDSRedirect
	Err       *BookingError
}

// Redirected reports whether control left the flow for 3DS authentication.
func (o Outcome) Redirected() bool {
	return o.Redirect != nil
}

func FailedOutcome(orderID string, err *BookingError) Outcome {
	return Outcome{
		Phase:     err.Phase,
		OrderID:   orderID,
		Reference: err.Reference,
		Title:     err.Title,
		Text:      err.Text,
		Err:       err,
	}
}
