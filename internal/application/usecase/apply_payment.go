package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/service"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
	"github.com/karacoop/credit-service/pkg/money"
)

// ApplyPaymentUseCase records a collected repayment against a contract. One
// execution assesses lateness, recomputes the reliability score, applies the
// amount, remunerates the sponsoring guarantor, and fires the best-effort
// side effects (receipt, notification).
type ApplyPaymentUseCase struct {
	contractRepo     port.CreditContractRepository
	paymentRepo      port.CreditPaymentRepository
	penaltyRepo      port.CreditPenaltyRepository
	remunerationRepo port.GuarantorRemunerationRepository
	members          port.MemberDirectory
	documents        port.DocumentStore
	receipts         port.ReceiptGenerator
	notifier         port.Notifier
	publisher        port.EventPublisher

	scoring   *service.ScoringEngine
	penalties *service.PenaltyEngine

	// remunerationPct is the guarantor's share of each payment, in percent.
	remunerationPct decimal.Decimal
	logger          *slog.Logger
}

// NewApplyPaymentUseCase wires dependencies.
func NewApplyPaymentUseCase(
	contractRepo port.CreditContractRepository,
	paymentRepo port.CreditPaymentRepository,
	penaltyRepo port.CreditPenaltyRepository,
	remunerationRepo port.GuarantorRemunerationRepository,
	members port.MemberDirectory,
	documents port.DocumentStore,
	receipts port.ReceiptGenerator,
	notifier port.Notifier,
	publisher port.EventPublisher,
	scoring *service.ScoringEngine,
	penalties *service.PenaltyEngine,
	remunerationPct decimal.Decimal,
	logger *slog.Logger,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		contractRepo:     contractRepo,
		paymentRepo:      paymentRepo,
		penaltyRepo:      penaltyRepo,
		remunerationRepo: remunerationRepo,
		members:          members,
		documents:        documents,
		receipts:         receipts,
		notifier:         notifier,
		publisher:        publisher,
		scoring:          scoring,
		penalties:        penalties,
		remunerationPct:  remunerationPct,
		logger:           logger,
	}
}

// Execute applies a payment. Receipt generation and notification are
// best-effort: their failures are logged, never surfaced.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, req dto.ApplyPaymentRequest) (dto.ApplyPaymentResponse, error) {
	now := time.Now().UTC()

	contract, err := uc.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("find contract: %w", err)
	}

	member, err := uc.members.FindByID(ctx, contract.ClientID())
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("find member: %w", err)
	}

	mode, err := model.ParsePaymentMode(req.Mode)
	if err != nil {
		return dto.ApplyPaymentResponse{}, err
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	// Lateness is judged against the due date the contract carried before
	// this payment moved it forward.
	var extraEvents []event.DomainEvent
	assessment := uc.penalties.Assess(contract.NextDueAt(), now, contract.MonthlyPayment())
	if assessment.Late {
		penaltyEvents, err := uc.recordPenalty(ctx, contract, member, assessment, now)
		if err != nil {
			return dto.ApplyPaymentResponse{}, err
		}
		extraEvents = append(extraEvents, penaltyEvents...)
	}

	unpaidPenalties, err := uc.penaltyRepo.CountUnpaidByCreditID(ctx, contract.ID())
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("count unpaid penalties: %w", err)
	}
	newScore := uc.scoring.RecomputeScore(contract.Score(), paidAt, contract.NextDueAt(), unpaidPenalties, now)

	proofURL := uc.storeProof(ctx, req)

	payment, err := model.NewCreditPayment(contract.ID(), member.Matricule, req.Amount, paidAt, mode, proofURL, now)
	if err != nil {
		return dto.ApplyPaymentResponse{}, err
	}

	updated, err := contract.ApplyPayment(payment.ID(), req.Amount, newScore, now)
	if err != nil {
		return dto.ApplyPaymentResponse{}, err
	}

	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}
	if err := uc.contractRepo.Update(ctx, updated); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("update contract: %w", err)
	}

	remEvent, err := uc.remunerateGuarantor(ctx, updated, payment, now)
	if err != nil {
		return dto.ApplyPaymentResponse{}, err
	}
	if remEvent != nil {
		extraEvents = append(extraEvents, remEvent)
	}

	payment = uc.generateReceipt(ctx, updated, payment, member)

	if err := uc.notifier.NotifyPaymentReceived(ctx, member, updated, payment); err != nil {
		uc.logger.Warn("payment notification failed",
			"contract_id", updated.ID(), "payment_id", payment.ID(), "error", err)
	}

	all := append(updated.Events(), extraEvents...)
	if err := uc.publisher.Publish(ctx, all...); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.ApplyPaymentResponse{
		Payment:  toPaymentResponse(payment),
		Contract: toContractResponse(updated),
	}, nil
}

// recordPenalty inserts the penalty for the missed due date. The repository
// keeps one penalty per (contract, due date); re-running the assessment for
// an already-penalized due date inserts nothing.
func (uc *ApplyPaymentUseCase) recordPenalty(
	ctx context.Context,
	contract *model.CreditContract,
	member *port.Member,
	assessment service.PenaltyAssessment,
	now time.Time,
) ([]event.DomainEvent, error) {
	penalty, err := model.NewCreditPenalty(contract.ID(), assessment.Amount, assessment.DaysLate, assessment.DueDate, now)
	if err != nil {
		return nil, err
	}
	inserted, err := uc.penaltyRepo.Save(ctx, penalty)
	if err != nil {
		return nil, fmt.Errorf("save penalty: %w", err)
	}
	if !inserted {
		return nil, nil
	}

	if err := uc.notifier.NotifyPenaltyAssessed(ctx, member, penalty); err != nil {
		uc.logger.Warn("penalty notification failed",
			"contract_id", contract.ID(), "penalty_id", penalty.ID(), "error", err)
	}
	return []event.DomainEvent{event.NewPenaltyCreated(
		penalty.ID(), contract.ID(), penalty.Amount(), penalty.DaysLate(), penalty.DueDate(),
	)}, nil
}

func (uc *ApplyPaymentUseCase) remunerateGuarantor(
	ctx context.Context,
	contract *model.CreditContract,
	payment *model.CreditPayment,
	now time.Time,
) (event.DomainEvent, error) {
	if contract.GuarantorID() == "" {
		return nil, nil
	}

	// Only an active member who qualifies as a parrain earns a share.
	guarantor, err := uc.members.FindByID(ctx, contract.GuarantorID())
	if err != nil {
		if errors.Is(err, valueobject.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find guarantor: %w", err)
	}
	if !guarantor.Active || !guarantor.Sponsor {
		return nil, nil
	}

	pct := guarantor.SponsorPct
	if !pct.IsPositive() {
		pct = uc.remunerationPct
	}
	if !pct.IsPositive() {
		return nil, nil
	}

	amount := money.Round(payment.Amount().Mul(pct).Div(decimal.NewFromInt(100)))
	if !amount.IsPositive() {
		return nil, nil
	}
	monthIndex := model.PaymentMonthIndex(contract.FirstPaymentDate(), payment.PaidAt())

	remuneration, err := model.NewGuarantorRemuneration(
		contract.ID(), contract.GuarantorID(), payment.ID(), amount, monthIndex, now,
	)
	if err != nil {
		return nil, err
	}
	if err := uc.remunerationRepo.Save(ctx, remuneration); err != nil {
		return nil, fmt.Errorf("save remuneration: %w", err)
	}
	return event.NewRemunerationRecorded(
		remuneration.ID(), contract.ID(), contract.GuarantorID(), payment.ID(), amount, monthIndex,
	), nil
}

func (uc *ApplyPaymentUseCase) storeProof(ctx context.Context, req dto.ApplyPaymentRequest) string {
	if len(req.Proof) == 0 {
		return ""
	}
	url, err := uc.documents.StoreProof(ctx, req.ProofName, req.Proof)
	if err != nil {
		uc.logger.Warn("proof upload failed", "contract_id", req.ContractID, "error", err)
		return ""
	}
	return url
}

func (uc *ApplyPaymentUseCase) generateReceipt(
	ctx context.Context,
	contract *model.CreditContract,
	payment *model.CreditPayment,
	member *port.Member,
) *model.CreditPayment {
	content, err := uc.receipts.Generate(contract, payment, member.FullName)
	if err != nil {
		uc.logger.Warn("receipt generation failed", "payment_id", payment.ID(), "error", err)
		return payment
	}
	url, err := uc.documents.StoreReceipt(ctx, "receipt_"+payment.Reference()+".pdf", content)
	if err != nil {
		uc.logger.Warn("receipt upload failed", "payment_id", payment.ID(), "error", err)
		return payment
	}

	withReceipt := payment.WithReceipt(url)
	if err := uc.paymentRepo.Update(ctx, withReceipt); err != nil {
		uc.logger.Warn("receipt attachment failed", "payment_id", payment.ID(), "error", err)
		return payment
	}
	return withReceipt
}
