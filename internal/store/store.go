package store

import (
	"sync"
	"time"

	"github.com/iliyamo/equipment-rental/internal/model"
	"github.com/iliyamo/equipment-rental/internal/utils"
)

// Store bundles all mutable in-memory state.  The ledger mutex guards
// bookings and notifications together so that id assignment, the booking
// append and the notification append form one atomic unit per
// confirmation.  Sessions use their own lock since they need no
// coordination with the ledger.  The catalog and user set are written only
// during seeding and read-only afterwards.
type Store struct {
	equipment     []model.Equipment // catalog in seed order
	equipmentByID map[string]model.Equipment
	usersByEmail  map[string]*model.User

	ledgerMu      sync.RWMutex
	bookings      []model.Booking
	notifications []model.AdminNotification
	intentSeen    map[string]bool // payment intent ids already confirmed

	sessionMu sync.RWMutex
	sessions  map[string]*model.Session
}

// New returns an empty Store.  Callers are expected to seed the catalog
// and user set before serving requests.
func New() *Store {
	return &Store{
		equipmentByID: make(map[string]model.Equipment),
		usersByEmail:  make(map[string]*model.User),
		intentSeen:    make(map[string]bool),
		sessions:      make(map[string]*model.Session),
	}
}

// AddEquipment appends one item to the catalog.  Only valid during
// seeding, before the store is shared between goroutines.
func (s *Store) AddEquipment(e model.Equipment) {
	s.equipment = append(s.equipment, e)
	s.equipmentByID[e.ID] = e
}

// AddUser registers one user.  Only valid during seeding.
func (s *Store) AddUser(u model.User) {
	cp := u
	s.usersByEmail[u.Email] = &cp
}

// Equipment returns the catalog item with the given id, or ErrNotFound.
func (s *Store) Equipment(id string) (model.Equipment, error) {
	e, ok := s.equipmentByID[id]
	if !ok {
		return model.Equipment{}, ErrNotFound
	}
	return e, nil
}

// ListEquipment returns the full catalog in seed order.
func (s *Store) ListEquipment() []model.Equipment {
	return s.equipment
}

// UserByEmail returns the user registered under email, or ErrNotFound.
// Callers must not reveal to clients whether the email exists; login
// failures are reported uniformly.
func (s *Store) UserByEmail(email string) (*model.User, error) {
	u, ok := s.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// Seed populates the store with the fixed demo catalog and user set.  The
// user passwords are bcrypt-hashed with the given cost; the plain values
// are the well-known sample credentials advertised by the API index.
func Seed(s *Store, bcryptCost int) error {
	s.AddEquipment(model.Equipment{ID: "excavator", Name: "Excavator", PricePerDay: 5000, Available: true})
	s.AddEquipment(model.Equipment{ID: "bulldozer", Name: "Bulldozer", PricePerDay: 4500, Available: true})
	s.AddEquipment(model.Equipment{ID: "crane", Name: "Crane", PricePerDay: 6000, Available: true})

	adminHash, err := utils.HashPassword("admin123", bcryptCost)
	if err != nil {
		return err
	}
	userHash, err := utils.HashPassword("user123", bcryptCost)
	if err != nil {
		return err
	}
	s.AddUser(model.User{
		ID: 1, Name: "Admin", Email: "admin@example.com",
		CredentialHash: adminHash, Role: model.RoleAdmin,
		CustomerRef: "cus_mock_admin",
	})
	s.AddUser(model.User{
		ID: 2, Name: "John Doe", Email: "user@example.com",
		CredentialHash: userHash, Role: model.RoleUser,
		CustomerRef: "cus_mock_user",
	})
	return nil
}

// now is swapped in tests that need deterministic timestamps.
var now = func() time.Time { return time.Now().UTC() }
