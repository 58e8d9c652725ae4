package grievances

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fairclaim/portal-backend/internal/auth"
	"fairclaim/portal-backend/internal/cases"
	"fairclaim/portal-backend/internal/classifier"
)

type Handler struct {
	service Service
	users   cases.UserDirectory
}

func NewHandler(service Service, users cases.UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	gr := rg.Group("/grievances")
	{
		gr.POST("", h.Create)
		gr.POST("/classify-preview", h.ClassifyPreview)
		gr.GET("", h.List)
		gr.GET("/:id", h.Get)
		gr.PATCH("/:id", h.Update)
		gr.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) actor(c *gin.Context) (cases.Actor, bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return cases.Actor{}, false
	}
	actor, err := h.users.Lookup(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return cases.Actor{}, false
	}
	return actor, true
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrGrievanceNotFound), errors.Is(err, cases.ErrCaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.service.CreateGrievance(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, g)
}

type classifyPreviewRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
}

func (h *Handler) ClassifyPreview(c *gin.Context) {
	var req classifyPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.PreviewClassification(req.Title, req.Description, req.Category)

	c.JSON(http.StatusOK, gin.H{
		"priority":           result.Priority,
		"confidence":         result.Confidence,
		"confidence_percent": fmt.Sprintf("%.1f%%", result.Confidence*100),
		"all_scores":         result.Scores,
		"explanation":        result.Explanation,
	})
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	filter := Filter{Page: page, PageSize: pageSize}
	if v := c.Query("case_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case_id"})
			return
		}
		filter.CaseID = &id
	}
	if v := c.Query("status"); v != "" {
		s := Status(v)
		filter.Status = &s
	}
	if v := c.Query("priority"); v != "" {
		p := classifier.Priority(v)
		filter.Priority = &p
	}

	resp, err := h.service.ListGrievances(c.Request.Context(), actor, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	g, err := h.service.GetGrievance(c.Request.Context(), actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req UpdateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.service.UpdateGrievance(c.Request.Context(), actor, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.DeleteGrievance(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
