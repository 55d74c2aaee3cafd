package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

// CreatePaymentIntent handles POST /create-payment-intent. The price arrives
// in major currency units and is charged as price * 100 minor units.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Price <= 0 {
		fail(c, http.StatusBadRequest, "a positive price is required")
		return
	}

	amount := int64(req.Price * 100)
	clientSecret, err := h.Payments.CreateIntent(c.Request.Context(), amount)
	if err != nil {
		h.serverError(c, err, "failed to create payment intent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
