package portal

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Live API keys look like uh_live_<43 chars of url-safe entropy>. The
// first ten characters are stored in clear as a lookup prefix so key
// validation does not have to scan every stored hash.
const (
	keyLivePrefix = "uh_live_"
	keyPrefixLen  = 10
	keyEntropy    = 32
)

const sessionTTL = 24 * time.Hour

type Service interface {
	RegisterCompany(ctx context.Context, name, email, password string) (*Company, error)
	IssueKey(ctx context.Context, email string) (string, error)
	ValidateKey(ctx context.Context, rawKey string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseSession(token string) (uuid.UUID, error)
}

type portalService struct {
	repo      Repository
	jwtSecret []byte
	logger    *zap.Logger
}

func NewService(repo Repository, jwtSecret string, logger *zap.Logger) Service {
	return &portalService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

func (s *portalService) RegisterCompany(ctx context.Context, name, email, password string) (*Company, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.repo.GetCompanyByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("company with email %s already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company := &Company{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info("company registered", zap.String("company_id", company.ID.String()))
	return company, nil
}

// IssueKey generates a fresh API key for the company behind email, stores
// its bcrypt hash and returns the raw key. The raw key is never stored and
// cannot be recovered later.
func (s *portalService) IssueKey(ctx context.Context, email string) (string, error) {
	company, err := s.repo.GetCompanyByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", fmt.Errorf("company not registered")
	}

	entropy := make([]byte, keyEntropy)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate key material: %w", err)
	}
	rawKey := keyLivePrefix + base64.RawURLEncoding.EncodeToString(entropy)

	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}

	key := &APIKey{
		ID:        uuid.New(),
		CompanyID: company.ID,
		KeyHash:   string(hash),
		Prefix:    rawKey[:keyPrefixLen],
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateAPIKey(ctx, key); err != nil {
		return "", err
	}

	s.logger.Info("api key issued", zap.String("company_id", company.ID.String()), zap.String("prefix", key.Prefix))
	return rawKey, nil
}

// ValidateKey resolves a raw API key to the owning company. Lookup goes by
// prefix first, then the bcrypt hash of each candidate is checked.
func (s *portalService) ValidateKey(ctx context.Context, rawKey string) (uuid.UUID, error) {
	if len(rawKey) < keyPrefixLen {
		return uuid.Nil, fmt.Errorf("invalid api key")
	}

	candidates, err := s.repo.ListActiveKeysByPrefix(ctx, rawKey[:keyPrefixLen])
	if err != nil {
		return uuid.Nil, err
	}

	for _, candidate := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidate.KeyHash), []byte(rawKey)) == nil {
			return candidate.CompanyID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("invalid api key")
}

func (s *portalService) Login(ctx context.Context, email, password string) (string, error) {
	company, err := s.repo.GetCompanyByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	claims := jwt.RegisteredClaims{
		Subject:   company.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSession validates a portal JWT and returns the company id claim.
func (s *portalService) ParseSession(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid session token")
	}

	companyID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session subject: %w", err)
	}
	return companyID, nil
}
