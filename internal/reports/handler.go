package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/portal"
	"uhakiki/verification-portal/verification-backend/internal/scoring"
	"uhakiki/verification-portal/verification-backend/internal/verification"
)

type Handler struct {
	verifications verification.Service
	pdf           *PDFReporter
	excel         *ExcelExporter
	logger        *zap.Logger
}

func NewHandler(verifications verification.Service, logger *zap.Logger) *Handler {
	return &Handler{
		verifications: verifications,
		pdf:           NewPDFReporter(DefaultPDFOptions()),
		excel:         NewExcelExporter(),
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/verifications/:id/report.pdf", h.DownloadRecordReport)
	router.GET("/verifications/export.xlsx", h.ExportRecords)
}

// DownloadRecordReport streams the PDF report for a single record.
func (h *Handler) DownloadRecordReport(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification ID"})
		return
	}

	record, err := h.verifications.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to load record for report", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load verification"})
		return
	}
	if record == nil || record.CompanyID != companyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Verification not found"})
		return
	}

	data, err := h.pdf.GenerateRecordReport(record)
	if err != nil {
		h.logger.Error("failed to generate pdf report", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("verification-%s.pdf", id.String()[:8])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportRecords streams the company's verification history as a workbook.
// Accepts the same verdict/from/to filters as the list endpoint.
func (h *Handler) ExportRecords(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	filter := verification.RecordFilter{CompanyID: &companyID}
	if verdictStr := c.Query("verdict"); verdictStr != "" {
		verdict := scoring.Verdict(verdictStr)
		filter.Verdict = &verdict
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			end := to.Add(24 * time.Hour)
			filter.To = &end
		}
	}

	records, err := h.verifications.ListRecords(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list records for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load verifications"})
		return
	}

	data, err := h.excel.ExportRecords(records)
	if err != nil {
		h.logger.Error("failed to generate workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
		return
	}

	filename := fmt.Sprintf("verifications-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
