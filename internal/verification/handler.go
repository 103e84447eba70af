package verification

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/portal"
	"uhakiki/verification-portal/verification-backend/internal/scoring"
)

// Uploaded scan images are read fully into memory; cap the size.
const maxUploadBytes = 10 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterVerifyRoutes registers the API-key protected scan endpoint.
func (h *Handler) RegisterVerifyRoutes(rg *gin.RouterGroup) {
	rg.POST("/verify", h.Verify)
}

// RegisterRecordRoutes registers the portal-facing record reads.
func (h *Handler) RegisterRecordRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/verifications")
	{
		records.GET("", h.List)
		records.GET("/search", h.Search)
		records.GET("/:id", h.Get)
	}
}

func (h *Handler) Verify(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "company not resolved"})
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document exceeds the 10MB limit"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only JPEG and PNG images are accepted"})
		return
	}

	document, err := readUpload(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var selfie []byte
	if selfieFile, err := c.FormFile("selfie"); err == nil {
		if selfieFile.Size > maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "selfie exceeds the 10MB limit"})
			return
		}
		selfie, err = readUpload(selfieFile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	docType := DocumentType(c.PostForm("document_type"))
	if docType == "" {
		docType = TypeKCSECertificate
	}

	resp, err := h.service.VerifyDocument(c.Request.Context(), VerifyRequest{
		CompanyID:    companyID,
		DocumentName: file.Filename,
		DocumentType: docType,
		MimeType:     mimeType,
		Document:     document,
		Selfie:       selfie,
	})
	if err != nil {
		h.logger.Error("scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) List(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "company not resolved"})
		return
	}

	filter := RecordFilter{CompanyID: &companyID}

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
			filter.To = &to
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		filter.Limit, _ = strconv.Atoi(limitStr)
	}

	records, err := h.service.ListRecords(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) Get(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "company not resolved"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil || record.CompanyID != companyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) Search(c *gin.Context) {
	companyID, ok := portal.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "company not resolved"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	records, err := h.service.SearchRecords(c.Request.Context(), companyID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
