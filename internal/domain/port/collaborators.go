package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/internal/domain/model"
)

// Member is the directory's view of a cooperative member.
type Member struct {
	ID        string
	Matricule string
	FullName  string
	Email     string
	Active    bool

	// Sponsor marks the member as a qualified parrain. Only sponsors earn
	// a share of the payments they guarantee.
	Sponsor bool
	// SponsorPct is the sponsor's negotiated share of each payment, in
	// percent. Zero means the service-wide default applies.
	SponsorPct decimal.Decimal
}

// MemberDirectory resolves members from the cooperative's member registry.
type MemberDirectory interface {
	FindByID(ctx context.Context, id string) (*Member, error)
}

// CaisseClient exposes the savings ledger of the cooperative.
type CaisseClient interface {
	// LastContributionAt returns the date of the member's most recent
	// contribution to the caisse, or a zero time when none exists.
	LastContributionAt(ctx context.Context, clientID string) (time.Time, error)
	// ContributionBalance returns the member's current contribution balance.
	ContributionBalance(ctx context.Context, clientID string) (decimal.Decimal, error)
}

// DocumentStore stores uploaded proofs and generated receipts.
type DocumentStore interface {
	// StoreProof persists an uploaded payment proof and returns its location.
	StoreProof(ctx context.Context, name string, content []byte) (string, error)
	// StoreReceipt persists a generated receipt and returns its location.
	StoreReceipt(ctx context.Context, name string, content []byte) (string, error)
}

// ReceiptGenerator renders a payment receipt document.
type ReceiptGenerator interface {
	Generate(contract *model.CreditContract, payment *model.CreditPayment, memberName string) ([]byte, error)
}

// Notifier delivers member-facing notifications. Failures are logged by the
// caller, never surfaced to the member's operation.
type Notifier interface {
	NotifyPaymentReceived(ctx context.Context, member *Member, contract *model.CreditContract, payment *model.CreditPayment) error
	NotifyPenaltyAssessed(ctx context.Context, member *Member, penalty *model.CreditPenalty) error
	NotifyContractClosed(ctx context.Context, member *Member, contract *model.CreditContract) error
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
