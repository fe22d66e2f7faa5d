package domain

import "strings"

// SupplierCode is the closed vocabulary of supplier status and error codes.
// Anything the supplier sends outside it parses to CodeUnknown.
type SupplierCode string

const (
	CodeUnknown SupplierCode = ""

	CodePageNotFound    SupplierCode = "page_not_found"
	CodeBadBookHash     SupplierCode = "bad_book_hash"
	CodeInvalidBookHash SupplierCode = "invalid_book_hash"
	CodeBookLimit       SupplierCode = "book_limit"
	CodeSoldOut         SupplierCode = "soldout"
	CodeBlock           SupplierCode = "block"
	CodeCharge          SupplierCode = "charge"
	CodeProvider        SupplierCode = "provider"
	CodeThreeDS         SupplierCode = "3ds"
	CodeNotFound        SupplierCode = "not_found"

	CodeInvalidCVC         SupplierCode = "invalid_cvc"
	CodeInvalidCardNumber  SupplierCode = "invalid_card_number"
	CodeLuhnAlgorithmError SupplierCode = "luhn_algorithm_error"
	CodeInvalidCardHolder  SupplierCode = "invalid_card_holder"
	CodeInvalidMonth       SupplierCode = "invalid_month"
	CodeInvalidYear        SupplierCode = "invalid_year"
)

var knownCodes = map[SupplierCode]struct{}{
	CodePageNotFound:       {},
	CodeBadBookHash:        {},
	CodeInvalidBookHash:    {},
	CodeBookLimit:          {},
	CodeSoldOut:            {},
	CodeBlock:              {},
	CodeCharge:             {},
	CodeProvider:           {},
	CodeThreeDS:            {},
	CodeNotFound:           {},
	CodeInvalidCVC:         {},
	CodeInvalidCardNumber:  {},
	CodeLuhnAlgorithmError: {},
	CodeInvalidCardHolder:  {},
	CodeInvalidMonth:       {},
	CodeInvalidYear:        {},
}

// ParseSupplierCode accepts both "book_limit" and "book limit" spellings.
func ParseSupplierCode(raw string) SupplierCode {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	code := SupplierCode(normalized)
	if _, ok := knownCodes[code]; ok {
		return code
	}
	return CodeUnknown
}

// EndsSession reports codes after which the user has to restart from search.
func (c SupplierCode) EndsSession() bool {
	switch c {
	case CodePageNotFound, CodeBadBookHash, CodeInvalidBookHash, CodeBookLimit, CodeSoldOut:
		return true
	default:
		return false
	}
}

// HardSubmissionFailure reports codes that stop a submission before any polling.
func (c SupplierCode) HardSubmissionFailure() bool {
	return c.EndsSession() || c == CodeBlock
}

// CardField maps tokenization codes onto the form field they concern.
func (c SupplierCode) CardField() (CardField, bool) {
	switch c {
	case CodeInvalidCVC:
		return CardFieldCVC, true
	case CodeInvalidCardNumber, CodeLuhnAlgorithmError:
		return CardFieldNumber, true
	case CodeInvalidCardHolder:
		return CardFieldHolder, true
	case CodeInvalidMonth:
		return CardFieldMonth, true
	case CodeInvalidYear:
		return CardFieldYear, true
	default:
		return "", false
	}
}

// Notice picks the user-facing message for a failed booking carrying this code.
func (c SupplierCode) Notice() Notice {
	switch c {
	case CodeSoldOut:
		return NoticeSoldOut
	case CodeBlock:
		return NoticeCardBlocked
	case CodeCharge:
		return NoticeChargeFailed
	case CodeBookLimit:
		return NoticeBookLimit
	case CodeProvider:
		return NoticeProvider
	case CodePageNotFound:
		return NoticeSessionExpired
	case CodeThreeDS:
		return NoticeThreeDSFailed
	case CodeBadBookHash, CodeInvalidBookHash:
		return NoticeOfferExpired
	case CodeNotFound:
		return NoticeNotFound
	default:
		return NoticeContactSupport
	}
}
