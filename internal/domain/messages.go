package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Notice string

const (
	NoticeSoldOut           Notice = "soldout"
	NoticeCardBlocked       Notice = "card_blocked"
	NoticeChargeFailed      Notice = "charge_failed"
	NoticeBookLimit         Notice = "book_limit"
	NoticeProvider          Notice = "provider"
	NoticeSessionExpired    Notice = "session_expired"
	NoticeThreeDSFailed     Notice = "threeds_failed"
	NoticeOfferExpired      Notice = "offer_expired"
	NoticeNotFound          Notice = "not_found"
	NoticeContactSupport    Notice = "contact_support"
	NoticeTimeout           Notice = "timeout"
	NoticeConnection        Notice = "connection"
	NoticeStatusUnavailable Notice = "status_unavailable"
	NoticePayNowMissing     Notice = "pay_now_missing"
	NoticeInitFailed        Notice = "init_failed"
	NoticeCardRejected      Notice = "card_rejected"
	NoticeSubmitRejected    Notice = "submit_rejected"
	NoticeConfirmed         Notice = "confirmed"
)

type noticeText struct {
	title string
	text  string
	// withReference marks texts that embed the support reference.
	withReference bool
}

var englishNotices = map[Notice]noticeText{
	NoticeSoldOut:           {"Room sold out", "The selected room is no longer available. Please go back and choose another option.", false},
	NoticeCardBlocked:       {"Payment blocked", "Your card was declined. Please try a different card.", false},
	NoticeChargeFailed:      {"Payment failed", "We could not charge your card. Please check the card details or use another card.", false},
	NoticeBookLimit:         {"Booking limit reached", "No more bookings can be made for this offer. Please choose another option.", false},
	NoticeProvider:          {"Supplier error", "The hotel supplier could not process the booking. Please try again later.", false},
	NoticeSessionExpired:    {"Session expired", "Your booking session has expired. Please start a new search.", false},
	NoticeThreeDSFailed:     {"Card authentication failed", "3-D Secure authentication was not completed. Please try again.", false},
	NoticeOfferExpired:      {"Offer expired", "This offer can no longer be booked. Please start a new search.", false},
	NoticeNotFound:          {"Booking not found", "We could not find your booking. Please contact support with reference %s.", true},
	NoticeContactSupport:    {"Booking failed", "Something went wrong with your booking. Please contact support with reference %s.", true},
	NoticeTimeout:           {"Booking timed out", "No confirmation arrived in time. Please contact support with reference %s before booking again.", true},
	NoticeConnection:        {"Connection error", "We lost contact with the booking service. Please contact support with reference %s before booking again.", true},
	NoticeStatusUnavailable: {"Booking status unavailable", "We could not check your booking status. Please contact support with reference %s.", true},
	NoticePayNowMissing:     {"Online payment unavailable", "This rate cannot be paid online. Please choose another option.", false},
	NoticeInitFailed:        {"Booking unavailable", "We could not prepare your booking. Please start a new search.", false},
	NoticeCardRejected:      {"Card rejected", "The card could not be processed. Please check the details and try again.", false},
	NoticeSubmitRejected:    {"Booking rejected", "The booking request was rejected. Please check your details and try again.", false},
	NoticeConfirmed:         {"Booking confirmed", "Your booking is confirmed. Reference %s.", true},
}

func init() {
	for notice, text := range englishNotices {
		_ = message.SetString(language.English, titleKey(notice), text.title)
		_ = message.SetString(language.English, textKey(notice), text.text)
	}
}

func titleKey(n Notice) string { return "notice." + string(n) + ".title" }
func textKey(n Notice) string  { return "notice." + string(n) + ".text" }

// Messages renders notices for one display language.
type Messages struct {
	printer *message.Printer
}

// NewMessages matches lang against the registered catalog; unsupported languages fall back to English.
func NewMessages(lang string) Messages {
	return Messages{printer: message.NewPrinter(message.MatchLanguage(lang, "en"))}
}

func (m Messages) Render(n Notice, reference string) (title string, text string) {
	entry, ok := englishNotices[n]
	if !ok {
		n = NoticeContactSupport
		entry = englishNotices[n]
	}
	p := m.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}

	title = p.Sprintf(titleKey(n))
	if entry.withReference {
		return title, p.Sprintf(textKey(n), reference)
	}
	return title, p.Sprintf(textKey(n))
}

// Error builds a BookingError for notice n. Text overrides the rendered text when non-empty.
func (m Messages) Error(phase Phase, code SupplierCode, n Notice, reference string, text string, cause error) *BookingError {
	title, rendered := m.Render(n, reference)
	if text == "" {
		text = rendered
	}
	return &BookingError{
		Phase:     phase,
		Code:      code,
		Notice:    n,
		Title:     title,
		Text:      text,
		Reference: reference,
		Err:       cause,
	}
}
