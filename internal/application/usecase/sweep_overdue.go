package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/service"
)

// SweepOverdueUseCase scans non-terminal contracts past their due date and
// records the missing penalties. The sweep runs on a schedule so penalties
// accrue even when no payment ever arrives; per-due-date idempotency in the
// penalty store makes re-runs harmless.
type SweepOverdueUseCase struct {
	contractRepo port.CreditContractRepository
	penaltyRepo  port.CreditPenaltyRepository
	members      port.MemberDirectory
	notifier     port.Notifier
	publisher    port.EventPublisher
	penalties    *service.PenaltyEngine
	logger       *slog.Logger
}

// NewSweepOverdueUseCase wires dependencies.
func NewSweepOverdueUseCase(
	contractRepo port.CreditContractRepository,
	penaltyRepo port.CreditPenaltyRepository,
	members port.MemberDirectory,
	notifier port.Notifier,
	publisher port.EventPublisher,
	penalties *service.PenaltyEngine,
	logger *slog.Logger,
) *SweepOverdueUseCase {
	return &SweepOverdueUseCase{
		contractRepo: contractRepo,
		penaltyRepo:  penaltyRepo,
		members:      members,
		notifier:     notifier,
		publisher:    publisher,
		penalties:    penalties,
		logger:       logger,
	}
}

// Execute runs one sweep. A failure on one contract is logged and does not
// stop the others.
func (uc *SweepOverdueUseCase) Execute(ctx context.Context) (dto.OverdueSweepResponse, error) {
	now := time.Now().UTC()

	overdue, err := uc.contractRepo.FindOverdue(ctx, now)
	if err != nil {
		return dto.OverdueSweepResponse{}, fmt.Errorf("find overdue contracts: %w", err)
	}

	created := 0
	for _, contract := range overdue {
		inserted, err := uc.sweepContract(ctx, contract, now)
		if err != nil {
			uc.logger.Error("overdue sweep failed for contract",
				"contract_id", contract.ID(), "error", err)
			continue
		}
		if inserted {
			created++
		}
	}

	uc.logger.Info("overdue sweep finished", "scanned", len(overdue), "penalties_created", created)
	return dto.OverdueSweepResponse{Scanned: len(overdue), PenaltiesCreated: created}, nil
}

func (uc *SweepOverdueUseCase) sweepContract(ctx context.Context, contract *model.CreditContract, now time.Time) (bool, error) {
	assessment := uc.penalties.Assess(contract.NextDueAt(), now, contract.MonthlyPayment())
	if !assessment.Late {
		return false, nil
	}

	penalty, err := model.NewCreditPenalty(
		contract.ID(), assessment.Amount, assessment.DaysLate, assessment.DueDate, now,
	)
	if err != nil {
		return false, err
	}
	inserted, err := uc.penaltyRepo.Save(ctx, penalty)
	if err != nil {
		return false, fmt.Errorf("save penalty: %w", err)
	}
	if !inserted {
		return false, nil
	}

	if member, err := uc.members.FindByID(ctx, contract.ClientID()); err != nil {
		uc.logger.Warn("member lookup failed for penalty notification",
			"contract_id", contract.ID(), "error", err)
	} else if err := uc.notifier.NotifyPenaltyAssessed(ctx, member, penalty); err != nil {
		uc.logger.Warn("penalty notification failed",
			"contract_id", contract.ID(), "penalty_id", penalty.ID(), "error", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewPenaltyCreated(
		penalty.ID(), contract.ID(), penalty.Amount(), penalty.DaysLate(), penalty.DueDate(),
	)); err != nil {
		return true, fmt.Errorf("publish penalty event: %w", err)
	}
	return true, nil
}
