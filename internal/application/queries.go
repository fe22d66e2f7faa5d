package application

import (
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
)

type Quote struct {
	OrderID                string
	Reference              string
	ItemID                 string
	Payment                domain.PaymentType
	Total                  string
	FreeCancellationBefore time.Time
}

func quoteFor(session *domain.BookingSession) Quote {
	payment, _ := session.PaymentType()
	orderID := session.OrderID()

	return Quote{
		OrderID:                orderID,
		Reference:              domain.SupportReference(orderID),
		ItemID:                 session.ItemID(),
		Payment:                payment,
		Total:                  payment.DisplayTotal(),
		FreeCancellationBefore: payment.CancellationPolicy.FreeCancellationBefore,
	}
}
