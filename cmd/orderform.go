package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bnema/roombook-cli/internal/application"
	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const maxOrderFormBytes = 64 << 10

// orderForm is the on-disk booking form: guests per room, contact details and card.
type orderForm struct {
	CheckIn *toml.LocalDate `toml:"check_in"`
	Contact orderContact    `toml:"contact"`
	Card    orderCard       `toml:"card"`
	Rooms   []orderRoom     `toml:"rooms"`
}

type orderContact struct {
	Email   string `toml:"email"`
	Phone   string `toml:"phone"`
	Comment string `toml:"comment"`
}

type orderCard struct {
	Holder string `toml:"holder"`
	Number string `toml:"number"`
	Month  string `toml:"month"`
	Year   string `toml:"year"`
	CVC    string `toml:"cvc"`
}

type orderRoom struct {
	Adults    int          `toml:"adults"`
	ChildAges []int        `toml:"child_ages"`
	Guests    []orderGuest `toml:"guests"`
}

// orderGuest is a child when age is set.
type orderGuest struct {
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Age       *int   `toml:"age"`
}

func loadOrderForm(path string) (application.BookCommand, error) {
	if path == "" {
		return application.BookCommand{}, errors.New("order form path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return application.BookCommand{}, fmt.Errorf("read order form: %w", err)
	}
	if info.Size() > maxOrderFormBytes {
		return application.BookCommand{}, fmt.Errorf("order form %s is larger than %d bytes", path, maxOrderFormBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return application.BookCommand{}, fmt.Errorf("read order form: %w", err)
	}

	var form orderForm
	if err := toml.Unmarshal(data, &form); err != nil {
		return application.BookCommand{}, fmt.Errorf("decode order form: %w", err)
	}

	return form.command(), nil
}

func (f orderForm) command() application.BookCommand {
	cmd := application.BookCommand{
		Card: domain.Card{
			Holder: f.Card.Holder,
			Number: f.Card.Number,
			Month:  f.Card.Month,
			Year:   f.Card.Year,
			CVC:    f.Card.CVC,
		},
		Contact: ports.Contact{
			Email:   f.Contact.Email,
			Phone:   f.Contact.Phone,
			Comment: f.Contact.Comment,
		},
	}
	if f.CheckIn != nil {
		cmd.CheckIn = f.CheckIn.AsTime(time.UTC)
	}

	for _, room := range f.Rooms {
		decoded := domain.Room{Adults: room.Adults, ChildAges: room.ChildAges}
		for _, guest := range room.Guests {
			g := domain.Guest{FirstName: guest.FirstName, LastName: guest.LastName}
			if guest.Age != nil {
				g.IsChild = true
				g.Age = *guest.Age
			}
			decoded.Guests = append(decoded.Guests, g)
		}
		cmd.Roster.Rooms = append(cmd.Roster.Rooms, decoded)
	}

	return cmd
}
