// Package store defines the persistence interfaces for the portal's
// collections and their MongoDB implementations. Handlers depend on the
// interfaces only, so tests run against in-memory fakes.
package store

import (
	"context"
	"errors"

	"github.com/Ruman-Islam/doctors-portal-server/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateBooking is returned when an insert violates the unique
	// (treatment, date, patient, slot) index.
	ErrDuplicateBooking = errors.New("store: duplicate booking")
)

// UpsertResult reports the outcome of an upsert or update.
type UpsertResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// TreatmentFilter narrows a treatment listing. Zero values match everything.
type TreatmentFilter struct {
	Name string
	Date string
}

type TreatmentStore interface {
	List(ctx context.Context, filter TreatmentFilter) ([]models.Treatment, error)
	ByDate(ctx context.Context, date string) ([]models.Treatment, error)
	DistinctNames(ctx context.Context) ([]string, error)
}

type BookingStore interface {
	// Insert adds a booking and returns its id. A booking that collides on
	// (treatment, date, patient, slot) yields ErrDuplicateBooking.
	Insert(ctx context.Context, b *models.Booking) (string, error)
	Find(ctx context.Context, treatment, date, patient, slot string) (*models.Booking, error)
	ByID(ctx context.Context, id string) (*models.Booking, error)
	ByDate(ctx context.Context, date string) ([]models.Booking, error)
	ByEmail(ctx context.Context, email string) ([]models.Booking, error)
	MarkPaid(ctx context.Context, id, transactionID string) (*UpsertResult, error)
}

type UserStore interface {
	Upsert(ctx context.Context, email string, user models.User) (*UpsertResult, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	// SetRole updates the role of the user with the given email. An empty
	// role clears the field.
	SetRole(ctx context.Context, email, role string) (*UpsertResult, error)
}

type DoctorStore interface {
	All(ctx context.Context) ([]models.Doctor, error)
	Insert(ctx context.Context, d *models.Doctor) (string, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) (string, error)
}

type ContactStore interface {
	Insert(ctx context.Context, m *models.Contact) (string, error)
}

// Stores bundles every collection handle for injection into the handlers.
type Stores struct {
	Treatments TreatmentStore
	Bookings   BookingStore
	Users      UserStore
	Doctors    DoctorStore
	Payments   PaymentStore
	Contacts   ContactStore
}
