package portal

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateCompany(ctx context.Context, company *Company) error
	GetCompanyByEmail(ctx context.Context, email string) (*Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error)

	CreateAPIKey(ctx context.Context, key *APIKey) error
	ListActiveKeysByPrefix(ctx context.Context, prefix string) ([]APIKey, error)
	DeactivateKey(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateCompany(ctx context.Context, company *Company) error {
	query := `
		INSERT INTO companies (id, name, email, password_hash)
		VALUES (:id, :name, :email, :password_hash)`
	_, err := r.db.NamedExecContext(ctx, query, company)
	return err
}

func (r *postgresRepository) GetCompanyByEmail(ctx context.Context, email string) (*Company, error) {
	var company Company
	err := r.db.GetContext(ctx, &company, "SELECT * FROM companies WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &company, err
}

func (r *postgresRepository) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.GetContext(ctx, &company, "SELECT * FROM companies WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &company, err
}

func (r *postgresRepository) CreateAPIKey(ctx context.Context, key *APIKey) error {
	query := `
		INSERT INTO api_keys (id, company_id, key_hash, prefix, is_active)
		VALUES (:id, :company_id, :key_hash, :prefix, :is_active)`
	_, err := r.db.NamedExecContext(ctx, query, key)
	return err
}

func (r *postgresRepository) ListActiveKeysByPrefix(ctx context.Context, prefix string) ([]APIKey, error) {
	var keys []APIKey
	err := r.db.SelectContext(ctx, &keys,
		"SELECT * FROM api_keys WHERE prefix = $1 AND is_active = true", prefix)
	return keys, err
}

func (r *postgresRepository) DeactivateKey(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE api_keys SET is_active = false WHERE id = $1", id)
	return err
}
