package supplier

const (
	bookingFormPath  = "/api/hotel-booking-form"
	cardTokenPath    = "/api/create-card-token"
	startBookingPath = "/api/start-booking-process"
	bookingStatePath = "/api/booking-status"
)

type bookingFormBody struct {
	PartnerOrderID string `json:"partner_order_id"`
	BookHash       string `json:"book_hash"`
	Language       string `json:"language"`
	UserIP         string `json:"user_ip,omitempty"`
}

type bookingFormPayload struct {
	ItemID         text                 `json:"item_id"`
	PartnerOrderID text                 `json:"partner_order_id"`
	PaymentTypes   []paymentTypePayload `json:"payment_types"`
}

type paymentTypePayload struct {
	Type                  text                   `json:"type"`
	Amount                text                   `json:"amount"`
	CurrencyCode          text                   `json:"currency_code"`
	CancellationPenalties *cancellationPenalties `json:"cancellation_penalties"`
}

type cancellationPenalties struct {
	FreeCancellationBefore text `json:"free_cancellation_before"`
}

type cardTokenBody struct {
	ObjectID           string       `json:"object_id"`
	PayUUID            string       `json:"pay_uuid"`
	InitUUID           string       `json:"init_uuid"`
	UserFirstName      string       `json:"user_first_name"`
	UserLastName       string       `json:"user_last_name"`
	CVC                string       `json:"cvc"`
	IsCVCRequired      bool         `json:"is_cvc_required"`
	CreditCardDataCore cardDataCore `json:"credit_card_data_core"`
}

type cardDataCore struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Month      string `json:"month"`
	Year       string `json:"year"`
}

type startBookingBody struct {
	User            userBody         `json:"user"`
	SupplierData    supplierDataBody `json:"supplier_data"`
	Partner         partnerBody      `json:"partner"`
	Language        string           `json:"language"`
	Rooms           []roomBody       `json:"rooms"`
	PaymentType     paymentTypeBody  `json:"payment_type"`
	ReturnPath      string           `json:"return_path"`
	ArrivalDateTime string           `json:"arrival_datetime,omitempty"`
}

type userBody struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Comment string `json:"comment,omitempty"`
}

type supplierDataBody struct {
	FirstNameOriginal string `json:"first_name_original"`
	LastNameOriginal  string `json:"last_name_original"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
}

type partnerBody struct {
	PartnerOrderID  string `json:"partner_order_id"`
	Comment         string `json:"comment,omitempty"`
	AmountSellB2B2C string `json:"amount_sell_b2b2c"`
}

type roomBody struct {
	Guests []guestBody `json:"guests"`
}

type guestBody struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsChild   bool   `json:"is_child,omitempty"`
	Age       *int   `json:"age,omitempty"`
}

type paymentTypeBody struct {
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
	PayUUID      string `json:"pay_uuid"`
	InitUUID     string `json:"init_uuid"`
}

type bookingStatusBody struct {
	PartnerOrderID string `json:"partner_order_id"`
}

type bookingStatusPayload struct {
	Status  text            `json:"status"`
	Error   text            `json:"error"`
	Message text            `json:"message"`
	Data3DS *threeDSPayload `json:"data_3ds"`
}

type threeDSPayload struct {
	ActionURL text            `json:"action_url"`
	Method    text            `json:"method"`
	Data      map[string]text `json:"data"`
}
