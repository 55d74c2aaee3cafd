package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ruman-Islam/doctors-portal-server/auth"
	"github.com/Ruman-Islam/doctors-portal-server/models"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

// PostBooking handles POST /booking. The unique booking index makes the
// insert atomic: a concurrent duplicate loses with ErrDuplicateBooking and
// gets the existing record back instead of an error.
func (h *Handler) PostBooking(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		fail(c, http.StatusBadRequest, "invalid booking payload")
		return
	}
	if booking.Treatment == "" || booking.Date == "" || booking.Patient == "" || booking.Slot == "" {
		fail(c, http.StatusBadRequest, "treatment, date, patient and slot are required")
		return
	}

	// Payment state is owned by the payment flow, never by the client.
	booking.Paid = false
	booking.TransactionID = ""

	ctx := c.Request.Context()
	id, err := h.Stores.Bookings.Insert(ctx, &booking)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateBooking) {
			existing, findErr := h.Stores.Bookings.Find(ctx, booking.Treatment, booking.Date, booking.Patient, booking.Slot)
			if findErr != nil {
				h.serverError(c, findErr, "failed to load existing booking")
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
			return
		}
		h.serverError(c, err, "failed to create booking")
		return
	}

	h.Mailer.BookingConfirmed(booking)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  gin.H{"insertedId": id},
	})
}

// GetMyBookings handles GET /my-bookings?email=. The email in the token must
// match the email being queried.
func (h *Handler) GetMyBookings(c *gin.Context) {
	email := c.Query("email")
	if email != c.GetString(auth.EmailKey) {
		fail(c, http.StatusForbidden, "forbidden access")
		return
	}

	bookings, err := h.Stores.Bookings.ByEmail(c.Request.Context(), email)
	if err != nil {
		h.serverError(c, err, "failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GetBookingByID handles GET /booking/:id. A missing booking is a business
// outcome, not an HTTP error.
func (h *Handler) GetBookingByID(c *gin.Context) {
	booking, err := h.Stores.Bookings.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "booking not found"})
			return
		}
		h.serverError(c, err, "failed to load booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

type payBookingRequest struct {
	TransactionID string `json:"transactionId"`
}

// PayBooking handles PATCH /booking/:id: marks the booking paid, appends the
// payment record and triggers the payment-received email. The two store
// writes are independent; there is no cross-document transaction.
func (h *Handler) PayBooking(c *gin.Context) {
	var req payBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TransactionID == "" {
		fail(c, http.StatusBadRequest, "transactionId is required")
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	booking, err := h.Stores.Bookings.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "booking not found"})
			return
		}
		h.serverError(c, err, "failed to load booking")
		return
	}

	result, err := h.Stores.Bookings.MarkPaid(ctx, id, req.TransactionID)
	if err != nil {
		h.serverError(c, err, "failed to update booking")
		return
	}

	payment := &models.Payment{
		TransactionID: req.TransactionID,
		BookingID:     id,
		Email:         booking.PatientEmail,
		Price:         booking.Price,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := h.Stores.Payments.Insert(ctx, payment); err != nil {
		// The booking is already paid; losing the log entry is logged, not
		// returned to the caller.
		h.Log.Error().Err(err).Str("bookingId", id).Msg("failed to record payment")
	}

	h.Mailer.PaymentReceived(*booking, req.TransactionID)

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
