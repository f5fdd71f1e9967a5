package port

import (
	"context"
	"time"

	"github.com/karacoop/credit-service/internal/domain/model"
)

// CreditDemandRepository persists credit demands.
type CreditDemandRepository interface {
	Save(ctx context.Context, demand *model.CreditDemand) error
	Update(ctx context.Context, demand *model.CreditDemand) error
	FindByID(ctx context.Context, id string) (*model.CreditDemand, error)
	FindByClientID(ctx context.Context, clientID string) ([]*model.CreditDemand, error)
	// HasContract reports whether a contract already references the demand.
	HasContract(ctx context.Context, demandID string) (bool, error)
}

// CreditContractRepository persists contracts with optimistic locking: Update
// fails with ErrVersionConflict when the stored version no longer matches the
// version the aggregate was loaded at.
type CreditContractRepository interface {
	Save(ctx context.Context, contract *model.CreditContract) error
	Update(ctx context.Context, contract *model.CreditContract) error
	FindByID(ctx context.Context, id string) (*model.CreditContract, error)
	FindByClientID(ctx context.Context, clientID string) ([]*model.CreditContract, error)
	// FindOverdue returns non-terminal contracts whose next due date is at
	// least one whole day before now.
	FindOverdue(ctx context.Context, now time.Time) ([]*model.CreditContract, error)
	// CountOpenByClientID counts contracts still accepting payments.
	CountOpenByClientID(ctx context.Context, clientID string) (int, error)
}

// CreditPaymentRepository persists collected payments.
type CreditPaymentRepository interface {
	Save(ctx context.Context, payment *model.CreditPayment) error
	Update(ctx context.Context, payment *model.CreditPayment) error
	FindByID(ctx context.Context, id string) (*model.CreditPayment, error)
	FindByCreditID(ctx context.Context, creditID string) ([]*model.CreditPayment, error)
}

// CreditPenaltyRepository persists penalties. Save is idempotent per
// (credit, due date): re-saving a penalty for an already-assessed due date
// is a no-op.
type CreditPenaltyRepository interface {
	// Save inserts the penalty unless one already exists for the same credit
	// and due date; it reports whether a row was inserted.
	Save(ctx context.Context, penalty *model.CreditPenalty) (inserted bool, err error)
	Update(ctx context.Context, penalty *model.CreditPenalty) error
	FindByID(ctx context.Context, id string) (*model.CreditPenalty, error)
	FindByCreditID(ctx context.Context, creditID string) ([]*model.CreditPenalty, error)
	CountUnpaidByCreditID(ctx context.Context, creditID string) (int, error)
	CountUnpaidByClientID(ctx context.Context, clientID string) (int, error)
}

// GuarantorRemunerationRepository persists guarantor remuneration rows.
type GuarantorRemunerationRepository interface {
	Save(ctx context.Context, remuneration *model.GuarantorRemuneration) error
	FindByCreditID(ctx context.Context, creditID string) ([]*model.GuarantorRemuneration, error)
	FindByGuarantorID(ctx context.Context, guarantorID string) ([]*model.GuarantorRemuneration, error)
}
