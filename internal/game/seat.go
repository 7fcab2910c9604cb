package game

import (
	"fmt"
	"strings"
)

// Seat identifies one of the three players.
type Seat uint8

const (
	Landlord Seat = iota
	FarmerOne
	FarmerTwo

	// NumSeats is the number of players at the table.
	NumSeats = 3
)

// Seats lists every seat in index order.
var Seats = [NumSeats]Seat{Landlord, FarmerOne, FarmerTwo}

func (s Seat) String() string {
	switch s {
	case Landlord:
		return "landlord"
	case FarmerOne:
		return "farmer1"
	case FarmerTwo:
		return "farmer2"
	default:
		return fmt.Sprintf("seat(%d)", uint8(s))
	}
}

// Side returns the team the seat plays for.
func (s Seat) Side() Side {
	if s == Landlord {
		return LandlordSide
	}
	return FarmerSide
}

// ParseSeat parses the names produced by Seat.String.
func ParseSeat(s string) (Seat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "landlord":
		return Landlord, nil
	case "farmer1", "farmer-one", "farmer_one":
		return FarmerOne, nil
	case "farmer2", "farmer-two", "farmer_two":
		return FarmerTwo, nil
	}
	return 0, fmt.Errorf("unknown seat %q", s)
}

// Side is a team: the landlord alone, or both farmers together.
type Side uint8

const (
	NoSide Side = iota
	LandlordSide
	FarmerSide
)

func (s Side) String() string {
	switch s {
	case LandlordSide:
		return "landlord"
	case FarmerSide:
		return "farmer"
	default:
		return "none"
	}
}
