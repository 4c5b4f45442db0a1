package handlers

import (
	"net/http"

	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/users/:id", h.GetUser)
}

// GetUser returns the public projection of another user
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

// GetProfile returns the authenticated user
func (h *UserHandler) GetProfile(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return httpError(services.ErrNotAuthorised)
	}
	return c.JSON(http.StatusOK, user)
}
