package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ruman-Islam/doctors-portal-server/models"
)

// GetDoctors handles GET /doctor.
func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Stores.Doctors.All(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "failed to load doctors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "doctors": doctors})
}

// PostDoctor handles POST /doctor.
func (h *Handler) PostDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		fail(c, http.StatusBadRequest, "invalid doctor payload")
		return
	}
	if doctor.Email == "" || doctor.Name == "" {
		fail(c, http.StatusBadRequest, "name and email are required")
		return
	}

	id, err := h.Stores.Doctors.Insert(c.Request.Context(), &doctor)
	if err != nil {
		h.serverError(c, err, "failed to add doctor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"insertedId": id}})
}

// DeleteDoctor handles DELETE /doctor/:email.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	deleted, err := h.Stores.Doctors.DeleteByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.serverError(c, err, "failed to delete doctor")
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "doctor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"deletedCount": deleted}})
}
