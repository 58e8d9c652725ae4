package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairclaim/portal-backend/internal/auth"
	"fairclaim/portal-backend/internal/cases"
)

type Handler struct {
	service Service
	users   cases.UserDirectory
}

func NewHandler(service Service, users cases.UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	d := rg.Group("/dashboard")
	{
		d.GET("/stats", h.Stats)
		d.GET("/user-stats", h.UserStats)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	role := auth.CurrentRole(c)
	if role == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) UserStats(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	actor, err := h.users.Lookup(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	stats, err := h.service.GetUserStats(c.Request.Context(), userID, actor.Role, actor.Phone, actor.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
