package domain

import (
	"fmt"
	"strings"
)

type Guest struct {
	FirstName string
	LastName  string
	IsChild   bool
	Age       int
}

type Room struct {
	Adults    int
	ChildAges []int
	Guests    []Guest
}

// GuestRoster lists rooms in booking order.
type GuestRoster struct {
	Rooms []Room
}

func (r Room) DeclaredOccupants() int {
	return r.Adults + len(r.ChildAges)
}

func (r GuestRoster) DeclaredOccupants() int {
	total := 0
	for _, room := range r.Rooms {
		total += room.DeclaredOccupants()
	}
	return total
}

func (r GuestRoster) NamedOccupants() int {
	total := 0
	for _, room := range r.Rooms {
		for _, guest := range room.Guests {
			if guest.named() {
				total++
			}
		}
	}
	return total
}

// LeadGuest is the first named adult of the first room.
func (r GuestRoster) LeadGuest() (Guest, bool) {
	for _, room := range r.Rooms {
		for _, guest := range room.Guests {
			if !guest.IsChild && guest.named() {
				return guest, true
			}
		}
	}
	return Guest{}, false
}

// Validate checks that every declared occupant has a name before submission.
func (r GuestRoster) Validate() error {
	if len(r.Rooms) == 0 {
		return fmt.Errorf("%w: at least one room is required", ErrInvalidRoster)
	}

	for i, room := range r.Rooms {
		if room.Adults < 1 {
			return fmt.Errorf("%w: room %d needs at least one adult", ErrInvalidRoster, i+1)
		}
		if len(room.Guests) != room.DeclaredOccupants() {
			return fmt.Errorf("%w: room %d declares %d occupants but names %d", ErrInvalidRoster, i+1, room.DeclaredOccupants(), len(room.Guests))
		}

		adults := 0
		childAges := make(map[int]int, len(room.ChildAges))
		for _, age := range room.ChildAges {
			childAges[age]++
		}
		for j, guest := range room.Guests {
			if !guest.named() {
				return fmt.Errorf("%w: room %d guest %d needs first and last name", ErrInvalidRoster, i+1, j+1)
			}
			if !guest.IsChild {
				adults++
				continue
			}
			if childAges[guest.Age] == 0 {
				return fmt.Errorf("%w: room %d has no child aged %d", ErrInvalidRoster, i+1, guest.Age)
			}
			childAges[guest.Age]--
		}
		if adults != room.Adults {
			return fmt.Errorf("%w: room %d declares %d adults but names %d", ErrInvalidRoster, i+1, room.Adults, adults)
		}
	}

	if r.NamedOccupants() != r.DeclaredOccupants() {
		return fmt.Errorf("%w: named occupants do not match declared occupants", ErrInvalidRoster)
	}

	return nil
}

func (g Guest) named() bool {
	return strings.TrimSpace(g.FirstName) != "" && strings.TrimSpace(g.LastName) != ""
}
