package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// DemandRepo implements port.CreditDemandRepository.
type DemandRepo struct {
	pool *pgxpool.Pool
}

// NewDemandRepo creates a PostgreSQL-backed demand repository.
func NewDemandRepo(pool *pgxpool.Pool) *DemandRepo {
	return &DemandRepo{pool: pool}
}

const demandColumns = `
	id, client_id, matricule, credit_type, amount, motif, guarantor_id,
	reference, status, decision_by, decision_motif, decided_at,
	created_at, updated_at, version
`

// Save inserts a new demand.
func (r *DemandRepo) Save(ctx context.Context, d *model.CreditDemand) error {
	query := `
		INSERT INTO credit_demands (` + demandColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	_, err := r.pool.Exec(ctx, query,
		d.ID(), d.ClientID(), d.Matricule(), d.CreditType().String(),
		d.Amount(), d.Motif(), nullable(d.GuarantorID()),
		d.Reference(), d.Status().String(),
		nullable(d.DecisionBy()), nullable(d.DecisionMotif()), d.DecidedAt(),
		d.CreatedAt(), d.UpdatedAt(), d.Version(),
	)
	if err != nil {
		return fmt.Errorf("save demand: %w", err)
	}
	return nil
}

// Update persists a decided demand under the optimistic version check.
func (r *DemandRepo) Update(ctx context.Context, d *model.CreditDemand) error {
	query := `
		UPDATE credit_demands SET
			status         = $2,
			decision_by    = $3,
			decision_motif = $4,
			decided_at     = $5,
			updated_at     = $6,
			version        = $7
		WHERE id = $1 AND version = $7 - 1
	`
	tag, err := r.pool.Exec(ctx, query,
		d.ID(), d.Status().String(),
		nullable(d.DecisionBy()), nullable(d.DecisionMotif()), d.DecidedAt(),
		d.UpdatedAt(), d.Version(),
	)
	if err != nil {
		return fmt.Errorf("update demand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrVersionConflict
	}
	return nil
}

// FindByID retrieves a demand by id.
func (r *DemandRepo) FindByID(ctx context.Context, id string) (*model.CreditDemand, error) {
	query := `SELECT ` + demandColumns + ` FROM credit_demands WHERE id = $1`
	d, err := scanDemandRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, valueobject.ErrNotFound
	}
	return d, err
}

// FindByClientID retrieves a member's demands, newest first.
func (r *DemandRepo) FindByClientID(ctx context.Context, clientID string) ([]*model.CreditDemand, error) {
	query := `SELECT ` + demandColumns + ` FROM credit_demands WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("query demands: %w", err)
	}
	defer rows.Close()

	var demands []*model.CreditDemand
	for rows.Next() {
		d, err := scanDemandRow(rows)
		if err != nil {
			return nil, err
		}
		demands = append(demands, d)
	}
	return demands, rows.Err()
}

// HasContract reports whether a contract already references the demand.
func (r *DemandRepo) HasContract(ctx context.Context, demandID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM credit_contracts WHERE demand_id = $1)`,
		demandID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check demand contract: %w", err)
	}
	return exists, nil
}

func scanDemandRow(s scannable) (*model.CreditDemand, error) {
	var (
		id, clientID, matricule, creditTypeStr string
		amount                                 decimal.Decimal
		motif                                  string
		guarantorID, decisionBy, decisionMotif *string
		reference, statusStr                   string
		decidedAt                              *time.Time
		createdAt, updatedAt                   time.Time
		version                                int
	)
	err := s.Scan(
		&id, &clientID, &matricule, &creditTypeStr, &amount, &motif, &guarantorID,
		&reference, &statusStr, &decisionBy, &decisionMotif, &decidedAt,
		&createdAt, &updatedAt, &version,
	)
	if err != nil {
		return nil, err
	}

	creditType, err := valueobject.NewCreditType(creditTypeStr)
	if err != nil {
		return nil, fmt.Errorf("scan demand %s: %w", id, err)
	}
	status, err := valueobject.NewDemandStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("scan demand %s: %w", id, err)
	}

	return model.ReconstructCreditDemand(
		id, clientID, matricule, creditType, amount, motif,
		deref(guarantorID), reference, status,
		deref(decisionBy), deref(decisionMotif), decidedAt,
		createdAt, updatedAt, version,
	), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
