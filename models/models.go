package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Treatment is a named medical service offered on a specific date with a
// fixed catalog of time slots. Treatments are seeded externally; the API
// only reads them. AvailableSlots is computed per request and never stored.
type Treatment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Slots          []string           `bson:"slots" json:"slots"`
	Date           string             `bson:"date" json:"date"`
	Price          float64            `bson:"price" json:"price"`
	AvailableSlots []string           `bson:"-" json:"availableSlots"`
}

// Booking is one patient's claim on one slot of one treatment on one date.
// The (treatment, date, patient, slot) tuple is unique at the store level.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Treatment     string             `bson:"treatment" json:"treatment"`
	Date          string             `bson:"date" json:"date"`
	Patient       string             `bson:"patient" json:"patient"`
	PatientEmail  string             `bson:"patientEmail" json:"patientEmail"`
	PatientName   string             `bson:"patientName" json:"patientName"`
	Slot          string             `bson:"slot" json:"slot"`
	Price         float64            `bson:"price" json:"price"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// User is an account profile, upserted by email on every login.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// Doctor is an admin-managed catalog entry.
type Doctor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Specialty string             `bson:"specialty" json:"specialty"`
	Image     string             `bson:"img" json:"img"`
}

// Payment is one entry of the append-only payment log, written when a
// payment intent is confirmed against a booking.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	BookingID     string             `bson:"bookingId" json:"bookingId"`
	Email         string             `bson:"email" json:"email"`
	Price         float64            `bson:"price" json:"price"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Subject string             `bson:"subject" json:"subject"`
	Message string             `bson:"message" json:"message"`
}
