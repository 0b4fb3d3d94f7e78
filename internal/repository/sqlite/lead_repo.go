package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"offsite/internal/domain"
	"offsite/internal/repository"

	"github.com/google/uuid"
)

// LeadRepo implements repository.LeadRepository
type LeadRepo struct {
	db *DB
}

func NewLeadRepo(db *DB) repository.LeadRepository {
	return &LeadRepo{db: db}
}

// Create stores the lead, assigning ID, Reference and CreatedAt.
func (r *LeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	if lead.Reference == "" {
		lead.Reference = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO leads (reference, name, email, phone, company, team_size, message, source_path, created_at)
		VALUES (:reference, :name, :email, :phone, :company, :team_size, :message, :source_path, :created_at)`
	result, err := r.db.NamedExecContext(ctx, query, lead)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	id, _ := result.LastInsertId()
	lead.ID = id
	return nil
}

func (r *LeadRepo) GetByReference(ctx context.Context, reference string) (*domain.Lead, error) {
	query := `SELECT id, reference, name, email, COALESCE(phone, '') AS phone, COALESCE(company, '') AS company,
		COALESCE(team_size, 0) AS team_size, COALESCE(message, '') AS message, COALESCE(source_path, '') AS source_path, created_at
		FROM leads WHERE reference = ?`
	lead := &domain.Lead{}
	err := r.db.GetContext(ctx, lead, query, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// List returns leads newest first.
func (r *LeadRepo) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	query := `SELECT id, reference, name, email, COALESCE(phone, '') AS phone, COALESCE(company, '') AS company,
		COALESCE(team_size, 0) AS team_size, COALESCE(message, '') AS message, COALESCE(source_path, '') AS source_path, created_at
		FROM leads ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	leads := []domain.Lead{}
	if err := r.db.SelectContext(ctx, &leads, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM leads`); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}
