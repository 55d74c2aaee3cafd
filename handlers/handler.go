// Package handlers implements the portal's HTTP endpoints on top of the
// store interfaces, the email dispatcher and the payment provider.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Ruman-Islam/doctors-portal-server/notify"
	"github.com/Ruman-Islam/doctors-portal-server/payments"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

// Handler carries the injected dependencies shared by every endpoint.
type Handler struct {
	Stores    store.Stores
	Mailer    *notify.Dispatcher
	Payments  payments.IntentCreator
	JWTSecret string
	Log       zerolog.Logger
}

// New builds a Handler.
func New(stores store.Stores, mailer *notify.Dispatcher, pay payments.IntentCreator, jwtSecret string, log zerolog.Logger) *Handler {
	return &Handler{
		Stores:    stores,
		Mailer:    mailer,
		Payments:  pay,
		JWTSecret: jwtSecret,
		Log:       log,
	}
}

// Health responds to the liveness probes.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Doctors portal server is running")
}

// fail writes the normalized error envelope. Internal details stay in the
// logs; the client only sees the message.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// serverError logs the cause and responds with a generic 500 envelope.
func (h *Handler) serverError(c *gin.Context, err error, message string) {
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	fail(c, http.StatusInternalServerError, message)
}
