package model

import "time"

// Booking records a confirmed equipment rental.  Bookings are append-only:
// once written they are never updated or deleted, and their ids form a
// strictly increasing sequence starting at 1.
//
// Amount is stored in major currency units (the processor reports minor
// units; the store divides by 100 for a two-decimal currency).
type Booking struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	EquipmentID     string    `json:"equipment_id"`
	EquipmentName   string    `json:"equipment_name"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Amount          float64   `json:"amount"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingStatusConfirmed is the only status a booking can have; bookings
// are created only after the payment intent has been verified.
const BookingStatusConfirmed = "confirmed"

// AdminNotification is the admin-facing event written alongside each
// booking.  Exactly one notification exists per booking and both records
// are appended atomically.
type AdminNotification struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id"`
	UserEmail string    `json:"user_email"`
	Equipment string    `json:"equipment"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationNewBooking is the type tag of notifications generated on
// booking confirmation.
const NotificationNewBooking = "new_booking"
