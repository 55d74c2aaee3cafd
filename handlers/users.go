package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ruman-Islam/doctors-portal-server/auth"
	"github.com/Ruman-Islam/doctors-portal-server/models"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

// UpsertUser handles PUT /user/:email. Every upsert returns a fresh access
// token for that email, whether or not the profile already existed.
func (h *Handler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		fail(c, http.StatusBadRequest, "invalid user payload")
		return
	}

	result, err := h.Stores.Users.Upsert(c.Request.Context(), email, user)
	if err != nil {
		h.serverError(c, err, "failed to save user")
		return
	}

	token, err := auth.Sign(email, h.JWTSecret)
	if err != nil {
		h.serverError(c, err, "failed to issue access token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "accessToken": token})
}

// GetAllUsers handles GET /all-users.
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.Stores.Users.All(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// GetAdminByEmail handles GET /admin/:email. An unknown email is simply not
// an admin.
func (h *Handler) GetAdminByEmail(c *gin.Context) {
	user, err := h.Stores.Users.ByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"admin": false})
			return
		}
		h.serverError(c, err, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": user.Role == "admin"})
}

// AddAdmin handles PUT /user/add-admin/:email.
func (h *Handler) AddAdmin(c *gin.Context) {
	h.setRole(c, "admin")
}

// RemoveAdmin handles PUT /user/remove-admin/:email.
func (h *Handler) RemoveAdmin(c *gin.Context) {
	h.setRole(c, "")
}

func (h *Handler) setRole(c *gin.Context, role string) {
	email := c.Param("email")
	result, err := h.Stores.Users.SetRole(c.Request.Context(), email, role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "user not found"})
			return
		}
		h.serverError(c, err, "failed to update user role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
