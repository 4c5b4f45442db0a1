package handlers

import (
	"net/http"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post. Content rules are enforced
// by the content service so its messages reach the client unchanged.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.content.CreateComment(c.Request().Context(), currentUser(c), c.Param("post_id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment soft-deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := h.content.DeleteComment(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}
