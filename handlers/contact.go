package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ruman-Islam/doctors-portal-server/models"
)

// PostContact handles POST /contact.
func (h *Handler) PostContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		fail(c, http.StatusBadRequest, "invalid contact payload")
		return
	}

	id, err := h.Stores.Contacts.Insert(c.Request.Context(), &contact)
	if err != nil {
		h.serverError(c, err, "failed to save contact message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"insertedId": id}})
}
