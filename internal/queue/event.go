// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingQueueName is the durable queue bookings are mirrored to.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published after a booking is appended to the
// ledger.  It carries enough information for downstream consumers to log,
// notify, or feed analytics without calling back into the API.  The
// in-memory ledger remains authoritative; the event stream is best-effort.
type BookingConfirmedEvent struct {
	BookingID       int64   `json:"booking_id"`
	UserID          int64   `json:"user_id"`
	UserEmail       string  `json:"user_email"`
	EquipmentID     string  `json:"equipment_id"`
	EquipmentName   string  `json:"equipment_name"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Amount          float64 `json:"amount"`
	PaymentIntentID string  `json:"payment_intent_id"`
	ConfirmedAt     string  `json:"confirmed_at"`
}
