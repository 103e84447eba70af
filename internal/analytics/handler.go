package analytics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/portal"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics/summary", h.GetSummary)
}

// GetSummary returns scan counts and average risk for the authenticated
// company. Defaults to the trailing 30 days when no range is given.
func (h *Handler) GetSummary(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		to = parsed.Add(24 * time.Hour)
	}

	summary, err := h.service.Summary(c.Request.Context(), companyID, from, to)
	if err != nil {
		h.logger.Error("failed to load usage summary", zap.Error(err), zap.String("company_id", companyID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
