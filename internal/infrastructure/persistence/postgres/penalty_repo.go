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

// PenaltyRepo implements port.CreditPenaltyRepository. A unique index on
// (credit_id, due_date) makes penalty creation idempotent per due date.
type PenaltyRepo struct {
	pool *pgxpool.Pool
}

// NewPenaltyRepo creates a PostgreSQL-backed penalty repository.
func NewPenaltyRepo(pool *pgxpool.Pool) *PenaltyRepo {
	return &PenaltyRepo{pool: pool}
}

const penaltyColumns = `
	id, credit_id, amount, days_late, due_date, paid, paid_at, created_at
`

// Save inserts the penalty unless its due date is already assessed; it
// reports whether a row was inserted.
func (r *PenaltyRepo) Save(ctx context.Context, p *model.CreditPenalty) (bool, error) {
	query := `
		INSERT INTO credit_penalties (` + penaltyColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (credit_id, due_date) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query,
		p.ID(), p.CreditID(), p.Amount(), p.DaysLate(), p.DueDate(),
		p.Paid(), p.PaidAt(), p.CreatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("save penalty: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Update refreshes a penalty's settlement state.
func (r *PenaltyRepo) Update(ctx context.Context, p *model.CreditPenalty) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE credit_penalties SET paid = $2, paid_at = $3 WHERE id = $1
	`, p.ID(), p.Paid(), p.PaidAt())
	if err != nil {
		return fmt.Errorf("update penalty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrNotFound
	}
	return nil
}

// FindByID retrieves a penalty by id.
func (r *PenaltyRepo) FindByID(ctx context.Context, id string) (*model.CreditPenalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM credit_penalties WHERE id = $1`
	p, err := scanPenaltyRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, valueobject.ErrNotFound
	}
	return p, err
}

// FindByCreditID retrieves a contract's penalties, oldest due date first.
func (r *PenaltyRepo) FindByCreditID(ctx context.Context, creditID string) ([]*model.CreditPenalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM credit_penalties WHERE credit_id = $1 ORDER BY due_date`
	rows, err := r.pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, fmt.Errorf("query penalties: %w", err)
	}
	defer rows.Close()

	var penalties []*model.CreditPenalty
	for rows.Next() {
		p, err := scanPenaltyRow(rows)
		if err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}
	return penalties, rows.Err()
}

// CountUnpaidByCreditID counts a contract's open penalties.
func (r *PenaltyRepo) CountUnpaidByCreditID(ctx context.Context, creditID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM credit_penalties WHERE credit_id = $1 AND NOT paid
	`, creditID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unpaid penalties: %w", err)
	}
	return n, nil
}

// CountUnpaidByClientID counts a member's open penalties across contracts.
func (r *PenaltyRepo) CountUnpaidByClientID(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM credit_penalties p
		JOIN credit_contracts c ON c.id = p.credit_id
		WHERE c.client_id = $1 AND NOT p.paid
	`, clientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count member penalties: %w", err)
	}
	return n, nil
}

func scanPenaltyRow(s scannable) (*model.CreditPenalty, error) {
	var (
		id, creditID string
		amount       decimal.Decimal
		daysLate     int
		dueDate      time.Time
		paid         bool
		paidAt       *time.Time
		createdAt    time.Time
	)
	err := s.Scan(&id, &creditID, &amount, &daysLate, &dueDate, &paid, &paidAt, &createdAt)
	if err != nil {
		return nil, err
	}
	return model.ReconstructCreditPenalty(id, creditID, amount, daysLate, dueDate, paid, paidAt, createdAt), nil
}
