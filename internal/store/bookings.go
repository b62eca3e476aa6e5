package store

import "github.com/iliyamo/equipment-rental/internal/model"

// AppendConfirmed writes one booking and its admin notification to the
// ledger.  The next sequential id is assigned, the booking status is
// forced to "confirmed" and the notification is derived from the booking —
// all under a single lock, so a concurrent confirmation can neither reuse
// the id nor observe the booking without its notification.
//
// The payment intent id must not have been confirmed before; a repeat
// returns ErrDuplicateIntent and appends nothing.
func (s *Store) AppendConfirmed(b model.Booking) (model.Booking, error) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	if s.intentSeen[b.PaymentIntentID] {
		return model.Booking{}, ErrDuplicateIntent
	}

	b.ID = int64(len(s.bookings)) + 1
	b.Status = model.BookingStatusConfirmed
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now()
	}

	s.bookings = append(s.bookings, b)
	s.intentSeen[b.PaymentIntentID] = true
	s.notifications = append(s.notifications, model.AdminNotification{
		Type:      model.NotificationNewBooking,
		BookingID: b.ID,
		UserEmail: b.UserEmail,
		Equipment: b.EquipmentName,
		Amount:    b.Amount,
		Timestamp: b.CreatedAt,
	})
	return b, nil
}

// BookingsForUser returns the bookings owned by userID in creation order.
func (s *Store) BookingsForUser(userID int64) []model.Booking {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()

	out := make([]model.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// AllBookings returns every booking in creation order.  Admin view.
func (s *Store) AllBookings() []model.Booking {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()

	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Notifications returns every admin notification in creation order.
func (s *Store) Notifications() []model.AdminNotification {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()

	out := make([]model.AdminNotification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
