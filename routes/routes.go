// Package routes wires the endpoint table to the handlers.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Ruman-Islam/doctors-portal-server/auth"
	"github.com/Ruman-Islam/doctors-portal-server/handlers"
)

// Register attaches every route to the router.
func Register(router *gin.Engine, h *handlers.Handler) {
	requireAuth := auth.RequireAuth(h.JWTSecret)
	requireAdmin := auth.RequireAdmin(h.Stores.Users)

	router.GET("/", h.Health)
	router.GET("/test", h.Health)

	router.GET("/services", h.GetServices)
	router.GET("/available-appointments", h.GetAvailableAppointments)
	router.GET("/all-appointments", h.GetAllAppointments)
	router.POST("/contact", h.PostContact)

	router.PUT("/user/:email", h.UpsertUser)
	router.GET("/admin/:email", h.GetAdminByEmail)
	router.GET("/all-users", requireAuth, h.GetAllUsers)
	router.PUT("/user/add-admin/:email", requireAuth, requireAdmin, h.AddAdmin)
	router.PUT("/user/remove-admin/:email", requireAuth, requireAdmin, h.RemoveAdmin)

	router.POST("/booking", h.PostBooking)
	router.GET("/my-bookings", requireAuth, h.GetMyBookings)
	router.GET("/booking/:id", requireAuth, h.GetBookingByID)
	router.PATCH("/booking/:id", requireAuth, h.PayBooking)

	router.GET("/doctor", requireAuth, h.GetDoctors)
	router.POST("/doctor", requireAuth, requireAdmin, h.PostDoctor)
	router.DELETE("/doctor/:email", requireAuth, requireAdmin, h.DeleteDoctor)

	router.POST("/create-payment-intent", requireAuth, h.CreatePaymentIntent)
}
