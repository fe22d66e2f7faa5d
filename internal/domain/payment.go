package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

const PaymentKindNow = "now"

type CancellationPolicy struct {
	FreeCancellationBefore time.Time
}

func (p CancellationPolicy) FreeCancellation() bool {
	return !p.FreeCancellationBefore.IsZero()
}

// PaymentType is the supplier payment option selected for a session.
type PaymentType struct {
	Kind               string
	Amount             string
	CurrencyCode       string
	CancellationPolicy CancellationPolicy
}

// DisplayTotal renders the amount as "USD 120.00".
func (p PaymentType) DisplayTotal() string {
	return FormatMoney(p.Amount, p.CurrencyCode)
}

func FormatMoney(amount, currencyCode string) string {
	amount = strings.TrimSpace(amount)
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return strings.TrimSpace(currencyCode + " " + amount)
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return strings.TrimSpace(currencyCode + " " + amount)
	}

	return fmt.Sprint(currency.ISO(unit.Amount(value)))
}
