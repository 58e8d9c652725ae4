package reports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fairclaim/portal-backend/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	r := rg.Group("/reports")
	r.Use(auth.RequireRole(auth.RoleOfficial))
	{
		r.GET("/case-register", h.CaseRegister)
	}
}

func (h *Handler) CaseRegister(c *gin.Context) {
	format := Format(c.DefaultQuery("format", string(FormatXLSX)))

	export, err := h.service.ExportCaseRegister(
		c.Request.Context(), format, c.Query("status"), c.Query("stage"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, export.ContentType, export.Content)
}
