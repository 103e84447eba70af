package verification

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/portal"
)

type fakePortalService struct {
	companyID uuid.UUID
}

func (f *fakePortalService) RegisterCompany(ctx context.Context, name, email, password string) (*portal.Company, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakePortalService) IssueKey(ctx context.Context, email string) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (f *fakePortalService) ValidateKey(ctx context.Context, rawKey string) (uuid.UUID, error) {
	if rawKey == "uh_live_valid" {
		return f.companyID, nil
	}
	return uuid.Nil, fmt.Errorf("invalid api key")
}

func (f *fakePortalService) Login(ctx context.Context, email, password string) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (f *fakePortalService) ParseSession(token string) (uuid.UUID, error) {
	if token == "valid-session" {
		return f.companyID, nil
	}
	return uuid.Nil, fmt.Errorf("invalid session")
}

type fakeVerificationService struct{}

func (f *fakeVerificationService) VerifyDocument(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	return &VerifyResponse{}, nil
}

func (f *fakeVerificationService) GetRecord(ctx context.Context, id uuid.UUID) (*VerificationRecord, error) {
	return nil, nil
}

func (f *fakeVerificationService) ListRecords(ctx context.Context, filter RecordFilter) ([]VerificationRecord, error) {
	return []VerificationRecord{}, nil
}

func (f *fakeVerificationService) SearchRecords(ctx context.Context, companyID uuid.UUID, query string) ([]VerificationRecord, error) {
	return []VerificationRecord{}, nil
}

// newTestRouter mirrors the production wiring: scans behind the API key,
// record reads behind the portal session.
func newTestRouter(portalService portal.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(&fakeVerificationService{}, zap.NewNop())

	router := gin.New()
	scanAPI := router.Group("/api/v1")
	scanAPI.Use(portal.APIKeyAuth(portalService))
	handler.RegisterVerifyRoutes(scanAPI)

	recordAPI := router.Group("/api/v1")
	recordAPI.Use(portal.SessionAuth(portalService))
	handler.RegisterRecordRoutes(recordAPI)

	return router
}

func TestRecordRoutesAcceptPortalSession(t *testing.T) {
	router := newTestRouter(&fakePortalService{companyID: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("Authorization", "Bearer valid-session")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecordRoutesRejectMissingSession(t *testing.T) {
	router := newTestRouter(&fakePortalService{companyID: uuid.New()})

	// No credentials at all.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// An API key is not a portal session.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("X-API-Key", "uh_live_valid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyRequiresAPIKey(t *testing.T) {
	router := newTestRouter(&fakePortalService{companyID: uuid.New()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/verify", nil)
	req.Header.Set("X-API-Key", "uh_live_wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
