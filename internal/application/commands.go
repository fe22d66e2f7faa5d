package application

import (
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
)

// BookCommand is everything the guest filled in on the booking form.
type BookCommand struct {
	Roster  domain.GuestRoster
	Card    domain.Card
	Contact ports.Contact
	// CheckIn is zero when the stay date is unknown.
	CheckIn time.Time
}

type PollOptions struct {
	StartedAt time.Time
	// InitialDelay postpones the first status check.
	InitialDelay time.Duration
}
