package domain

import (
	"fmt"
	"strings"
	"unicode"
)

type CardField string

const (
	CardFieldNumber CardField = "cardNumber"
	CardFieldHolder CardField = "cardHolder"
	CardFieldMonth  CardField = "month"
	CardFieldYear   CardField = "year"
	CardFieldCVC    CardField = "cvc"
)

// Card holds raw card data for a single tokenization call. It is never persisted.
type Card struct {
	Holder string
	Number string
	Month  string
	Year   string
	CVC    string
}

// TokenHandles identify one tokenized card for one submission attempt.
type TokenHandles struct {
	PayUUID  string
	InitUUID string
}

func (c Card) Normalize() Card {
	c.Holder = strings.TrimSpace(c.Holder)
	c.Number = digitsOnly(c.Number)
	c.Month = strings.TrimSpace(c.Month)
	c.Year = strings.TrimSpace(c.Year)
	c.CVC = strings.TrimSpace(c.CVC)
	return c
}

// Validate only checks presence; the supplier owns card semantics.
func (c Card) Validate() error {
	checks := []struct {
		field CardField
		value string
	}{
		{CardFieldHolder, c.Holder},
		{CardFieldNumber, c.Number},
		{CardFieldMonth, c.Month},
		{CardFieldYear, c.Year},
		{CardFieldCVC, c.CVC},
	}
	for _, check := range checks {
		if strings.TrimSpace(check.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidCard, check.field)
		}
	}
	return nil
}

func (c Card) String() string {
	return "Card{" + c.Holder + " ****" + lastFour(c.Number) + "}"
}

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, value)
}

func lastFour(number string) string {
	digits := digitsOnly(number)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
