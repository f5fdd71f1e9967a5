package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/model"
)

// RemunerationRepo implements port.GuarantorRemunerationRepository.
type RemunerationRepo struct {
	pool *pgxpool.Pool
}

// NewRemunerationRepo creates a PostgreSQL-backed remuneration repository.
func NewRemunerationRepo(pool *pgxpool.Pool) *RemunerationRepo {
	return &RemunerationRepo{pool: pool}
}

const remunerationColumns = `
	id, credit_id, guarantor_id, payment_id, amount, month_index, created_at
`

// Save inserts a remuneration row.
func (r *RemunerationRepo) Save(ctx context.Context, rem *model.GuarantorRemuneration) error {
	query := `
		INSERT INTO guarantor_remunerations (` + remunerationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.pool.Exec(ctx, query,
		rem.ID(), rem.CreditID(), rem.GuarantorID(), rem.PaymentID(),
		rem.Amount(), rem.MonthIndex(), rem.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save remuneration: %w", err)
	}
	return nil
}

// FindByCreditID retrieves a contract's remunerations, oldest first.
func (r *RemunerationRepo) FindByCreditID(ctx context.Context, creditID string) ([]*model.GuarantorRemuneration, error) {
	query := `SELECT ` + remunerationColumns + ` FROM guarantor_remunerations WHERE credit_id = $1 ORDER BY month_index`
	return r.queryRemunerations(ctx, query, creditID)
}

// FindByGuarantorID retrieves everything earned by a guarantor.
func (r *RemunerationRepo) FindByGuarantorID(ctx context.Context, guarantorID string) ([]*model.GuarantorRemuneration, error) {
	query := `SELECT ` + remunerationColumns + ` FROM guarantor_remunerations WHERE guarantor_id = $1 ORDER BY created_at`
	return r.queryRemunerations(ctx, query, guarantorID)
}

func (r *RemunerationRepo) queryRemunerations(ctx context.Context, query string, arg any) ([]*model.GuarantorRemuneration, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query remunerations: %w", err)
	}
	defer rows.Close()

	var remunerations []*model.GuarantorRemuneration
	for rows.Next() {
		var (
			id, creditID, guarantorID, paymentID string
			amount                               decimal.Decimal
			monthIndex                           int
			createdAt                            time.Time
		)
		err := rows.Scan(&id, &creditID, &guarantorID, &paymentID, &amount, &monthIndex, &createdAt)
		if err != nil {
			return nil, err
		}
		remunerations = append(remunerations, model.ReconstructGuarantorRemuneration(
			id, creditID, guarantorID, paymentID, amount, monthIndex, createdAt,
		))
	}
	return remunerations, rows.Err()
}
