package model

// Equipment describes a single rentable machine in the catalog.  The
// catalog is seeded once at startup and never mutated afterwards, so
// instances of this struct are safe to share between requests.
//
// Fields:
//  ID          – stable identifier used in API requests (e.g. "excavator").
//  Name        – human readable display name.
//  PricePerDay – rental price for one day, in major currency units.
//  Available   – whether the machine can currently be booked.
type Equipment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PricePerDay int64  `json:"price_per_day"`
	Available   bool   `json:"available"`
}
