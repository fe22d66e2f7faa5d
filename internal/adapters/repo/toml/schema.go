package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// sessionSchema never carries card data.
type sessionSchema struct {
	OrderID         string         `toml:"order_id"`
	RetiredOrderIDs []string       `toml:"retired_order_ids,omitempty"`
	BookHash        string         `toml:"book_hash"`
	ItemID          string         `toml:"item_id,omitempty"`
	Phase           string         `toml:"phase"`
	Payment         *paymentSchema `toml:"payment,omitempty"`
	CreatedAt       string         `toml:"created_at"`
	UpdatedAt       string         `toml:"updated_at"`
}

type paymentSchema struct {
	Kind                   string `toml:"kind"`
	Amount                 string `toml:"amount"`
	CurrencyCode           string `toml:"currency_code"`
	FreeCancellationBefore string `toml:"free_cancellation_before,omitempty"`
}
