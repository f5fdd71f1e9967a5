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

// ContractRepo implements port.CreditContractRepository with optimistic
// locking on the version column.
type ContractRepo struct {
	pool *pgxpool.Pool
}

// NewContractRepo creates a PostgreSQL-backed contract repository.
func NewContractRepo(pool *pgxpool.Pool) *ContractRepo {
	return &ContractRepo{pool: pool}
}

const contractColumns = `
	id, demand_id, client_id, credit_type,
	principal, interest_rate, monthly_payment, total_amount, duration,
	guarantor_id, first_payment_date, next_due_at,
	amount_paid, amount_remaining, score, status,
	discharge_motif, discharged_by, discharged_at, quittance_ref, closed_at,
	created_at, updated_at, version
`

// Save inserts a new contract.
func (r *ContractRepo) Save(ctx context.Context, c *model.CreditContract) error {
	query := `
		INSERT INTO credit_contracts (` + contractColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,
		        $13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID(), c.DemandID(), c.ClientID(), c.CreditType().String(),
		c.Principal(), c.InterestRate(), c.MonthlyPayment(), c.TotalAmount(), c.Duration(),
		nullable(c.GuarantorID()), c.FirstPaymentDate(), c.NextDueAt(),
		c.AmountPaid(), c.AmountRemaining(), c.Score(), c.Status().String(),
		nullable(c.DischargeMotif()), nullable(c.DischargedBy()), c.DischargedAt(),
		nullable(c.QuittanceRef()), c.ClosedAt(),
		c.CreatedAt(), c.UpdatedAt(), c.Version(),
	)
	if err != nil {
		return fmt.Errorf("save contract: %w", err)
	}
	return nil
}

// Update persists a transition. The WHERE clause pins the previous version;
// zero rows affected means a concurrent writer won.
func (r *ContractRepo) Update(ctx context.Context, c *model.CreditContract) error {
	query := `
		UPDATE credit_contracts SET
			next_due_at      = $2,
			amount_paid      = $3,
			amount_remaining = $4,
			score            = $5,
			status           = $6,
			discharge_motif  = $7,
			discharged_by    = $8,
			discharged_at    = $9,
			quittance_ref    = $10,
			closed_at        = $11,
			updated_at       = $12,
			version          = $13
		WHERE id = $1 AND version = $13 - 1
	`
	tag, err := r.pool.Exec(ctx, query,
		c.ID(), c.NextDueAt(),
		c.AmountPaid(), c.AmountRemaining(), c.Score(), c.Status().String(),
		nullable(c.DischargeMotif()), nullable(c.DischargedBy()), c.DischargedAt(),
		nullable(c.QuittanceRef()), c.ClosedAt(),
		c.UpdatedAt(), c.Version(),
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrVersionConflict
	}
	return nil
}

// FindByID retrieves a contract by id.
func (r *ContractRepo) FindByID(ctx context.Context, id string) (*model.CreditContract, error) {
	query := `SELECT ` + contractColumns + ` FROM credit_contracts WHERE id = $1`
	c, err := scanContractRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, valueobject.ErrNotFound
	}
	return c, err
}

// FindByClientID retrieves a member's contracts, newest first.
func (r *ContractRepo) FindByClientID(ctx context.Context, clientID string) ([]*model.CreditContract, error) {
	query := `SELECT ` + contractColumns + ` FROM credit_contracts WHERE client_id = $1 ORDER BY created_at DESC`
	return r.queryContracts(ctx, query, clientID)
}

// FindOverdue returns payment-accepting contracts at least one whole day past
// their next due date.
func (r *ContractRepo) FindOverdue(ctx context.Context, now time.Time) ([]*model.CreditContract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM credit_contracts
		WHERE status IN ('PENDING','ACTIVE','PARTIAL')
		  AND next_due_at <= $1
		ORDER BY next_due_at
	`
	return r.queryContracts(ctx, query, now.Add(-24*time.Hour))
}

// CountOpenByClientID counts contracts still accepting payments.
func (r *ContractRepo) CountOpenByClientID(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM credit_contracts
		WHERE client_id = $1 AND status IN ('PENDING','ACTIVE','PARTIAL')
	`, clientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open contracts: %w", err)
	}
	return n, nil
}

func (r *ContractRepo) queryContracts(ctx context.Context, query string, args ...any) ([]*model.CreditContract, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*model.CreditContract
	for rows.Next() {
		c, err := scanContractRow(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func scanContractRow(s scannable) (*model.CreditContract, error) {
	var (
		id, demandID, clientID, creditTypeStr           string
		principal, interestRate, monthlyPayment, total  decimal.Decimal
		duration                                        int
		guarantorID, dischargeMotif, dischargedBy, qref *string
		firstPaymentDate, nextDueAt                     time.Time
		amountPaid, amountRemaining, score              decimal.Decimal
		statusStr                                       string
		dischargedAt, closedAt                          *time.Time
		createdAt, updatedAt                            time.Time
		version                                         int
	)
	err := s.Scan(
		&id, &demandID, &clientID, &creditTypeStr,
		&principal, &interestRate, &monthlyPayment, &total, &duration,
		&guarantorID, &firstPaymentDate, &nextDueAt,
		&amountPaid, &amountRemaining, &score, &statusStr,
		&dischargeMotif, &dischargedBy, &dischargedAt, &qref, &closedAt,
		&createdAt, &updatedAt, &version,
	)
	if err != nil {
		return nil, err
	}

	creditType, err := valueobject.NewCreditType(creditTypeStr)
	if err != nil {
		return nil, fmt.Errorf("scan contract %s: %w", id, err)
	}
	status, err := valueobject.NewContractStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("scan contract %s: %w", id, err)
	}

	return model.ReconstructCreditContract(
		id, demandID, clientID, creditType,
		principal, interestRate, monthlyPayment, total, duration,
		deref(guarantorID), firstPaymentDate, nextDueAt,
		amountPaid, amountRemaining, score, status,
		deref(dischargeMotif), deref(dischargedBy), dischargedAt,
		deref(qref), closedAt,
		createdAt, updatedAt, version,
	), nil
}
