// Package pricing computes rental quotes.  Quote is a pure function over
// the static catalog: it validates the requested date range and multiplies
// the per-day price by the inclusive day count.
package pricing

import (
	"errors"
	"time"

	"github.com/iliyamo/equipment-rental/internal/store"
)

// dateLayout is the wire format for rental dates (calendar dates, no time).
const dateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date does not parse as YYYY-MM-DD.
// Handlers should translate this into an HTTP 400 response.
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// ErrInvalidRange is returned when the start date falls after the end
// date.  Handlers should translate this into an HTTP 400 response.
var ErrInvalidRange = errors.New("end date must not be before start date")

// Quote is the result of a price calculation.
type Quote struct {
	EquipmentID   string // catalog id the quote was computed for
	EquipmentName string // display name of the equipment
	Days          int64  // rental duration, inclusive of both endpoints
	Total         int64  // Days × price per day, in major currency units
}

// Days returns the rental duration between two YYYY-MM-DD dates, counting
// both endpoints (a one-day rental has start == end).
func Days(startDate, endDate string) (int64, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0, ErrInvalidDate
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0, ErrInvalidDate
	}
	if start.After(end) {
		return 0, ErrInvalidRange
	}
	return int64(end.Sub(start).Hours()/24) + 1, nil
}

// ComputeQuote resolves the equipment, validates the date range and
// returns the total rental price.  It has no side effects; the store is
// only read.  Unknown equipment yields store.ErrNotFound before any date
// validation runs.
func ComputeQuote(s *store.Store, equipmentID, startDate, endDate string) (Quote, error) {
	eq, err := s.Equipment(equipmentID)
	if err != nil {
		return Quote{}, err
	}
	days, err := Days(startDate, endDate)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		Days:          days,
		Total:         eq.PricePerDay * days,
	}, nil
}
