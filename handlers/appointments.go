package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ruman-Islam/doctors-portal-server/models"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

// availableSlots returns the treatment's slots minus the ones already
// claimed by a booking for that treatment, preserving catalog order.
func availableSlots(treatment models.Treatment, bookings []models.Booking) []string {
	booked := make(map[string]struct{})
	for _, b := range bookings {
		if b.Treatment == treatment.Name {
			booked[b.Slot] = struct{}{}
		}
	}
	remaining := make([]string, 0, len(treatment.Slots))
	for _, slot := range treatment.Slots {
		if _, taken := booked[slot]; !taken {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}

// GetAvailableAppointments handles GET /available-appointments?date=. The
// date is an opaque comparison key; no parsing or normalization happens.
func (h *Handler) GetAvailableAppointments(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		fail(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	ctx := c.Request.Context()
	treatments, err := h.Stores.Treatments.ByDate(ctx, date)
	if err != nil {
		h.serverError(c, err, "failed to load appointments")
		return
	}
	if len(treatments) == 0 {
		// Nothing scheduled on this date is a normal outcome, not an error.
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": fmt.Sprintf("no appointments available on %s", date),
		})
		return
	}

	bookings, err := h.Stores.Bookings.ByDate(ctx, date)
	if err != nil {
		h.serverError(c, err, "failed to load bookings")
		return
	}

	for i := range treatments {
		treatments[i].AvailableSlots = availableSlots(treatments[i], bookings)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": treatments})
}

// GetServices handles GET /services with optional name and date filters.
func (h *Handler) GetServices(c *gin.Context) {
	filter := store.TreatmentFilter{
		Name: c.Query("name"),
		Date: c.Query("date"),
	}
	treatments, err := h.Stores.Treatments.List(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, err, "failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": treatments})
}

// GetAllAppointments handles GET /all-appointments: the distinct treatment
// names, for building booking forms.
func (h *Handler) GetAllAppointments(c *gin.Context) {
	names, err := h.Stores.Treatments.DistinctNames(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "failed to load appointment names")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": names})
}
