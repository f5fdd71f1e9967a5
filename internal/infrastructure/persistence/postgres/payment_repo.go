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

// PaymentRepo implements port.CreditPaymentRepository.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `
	id, credit_id, amount, paid_at, mode, proof_url, receipt_url, reference, created_at
`

// Save inserts a payment record.
func (r *PaymentRepo) Save(ctx context.Context, p *model.CreditPayment) error {
	query := `
		INSERT INTO credit_payments (` + paymentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID(), p.CreditID(), p.Amount(), p.PaidAt(), string(p.Mode()),
		nullable(p.ProofURL()), nullable(p.ReceiptURL()), p.Reference(), p.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

// Update refreshes the mutable document fields of a payment.
func (r *PaymentRepo) Update(ctx context.Context, p *model.CreditPayment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE credit_payments SET proof_url = $2, receipt_url = $3 WHERE id = $1
	`, p.ID(), nullable(p.ProofURL()), nullable(p.ReceiptURL()))
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrNotFound
	}
	return nil
}

// FindByID retrieves a payment by id.
func (r *PaymentRepo) FindByID(ctx context.Context, id string) (*model.CreditPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM credit_payments WHERE id = $1`
	p, err := scanPaymentRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, valueobject.ErrNotFound
	}
	return p, err
}

// FindByCreditID retrieves a contract's payments, oldest first.
func (r *PaymentRepo) FindByCreditID(ctx context.Context, creditID string) ([]*model.CreditPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM credit_payments WHERE credit_id = $1 ORDER BY paid_at`
	rows, err := r.pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []*model.CreditPayment
	for rows.Next() {
		p, err := scanPaymentRow(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPaymentRow(s scannable) (*model.CreditPayment, error) {
	var (
		id, creditID         string
		amount               decimal.Decimal
		paidAt               time.Time
		mode                 string
		proofURL, receiptURL *string
		reference            string
		createdAt            time.Time
	)
	err := s.Scan(&id, &creditID, &amount, &paidAt, &mode, &proofURL, &receiptURL, &reference, &createdAt)
	if err != nil {
		return nil, err
	}
	return model.ReconstructCreditPayment(
		id, creditID, amount, paidAt, model.PaymentMode(mode),
		deref(proofURL), deref(receiptURL), reference, createdAt,
	), nil
}
