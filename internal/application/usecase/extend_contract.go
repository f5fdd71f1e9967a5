package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/service"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// ExtendContractUseCase supersedes a running contract with a new one whose
// principal is the remaining balance plus any additional amount granted.
// Eligibility gates the extension the same way it gates a new demand.
type ExtendContractUseCase struct {
	contractRepo port.CreditContractRepository
	engine       *service.SimulationEngine
	eligibility  *CheckEligibilityUseCase
	publisher    port.EventPublisher
}

// NewExtendContractUseCase wires dependencies.
func NewExtendContractUseCase(
	contractRepo port.CreditContractRepository,
	engine *service.SimulationEngine,
	eligibility *CheckEligibilityUseCase,
	publisher port.EventPublisher,
) *ExtendContractUseCase {
	return &ExtendContractUseCase{
		contractRepo: contractRepo,
		engine:       engine,
		eligibility:  eligibility,
		publisher:    publisher,
	}
}

// Execute marks the old contract EXTENDED and creates its successor.
func (uc *ExtendContractUseCase) Execute(ctx context.Context, req dto.ExtendContractRequest) (dto.ContractResponse, error) {
	now := time.Now().UTC()

	old, err := uc.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}

	elig, err := uc.eligibility.Execute(ctx, old.ClientID(), old.GuarantorID(), now)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("check eligibility: %w", err)
	}
	if !elig.Eligible {
		return dto.ContractResponse{}, valueobject.NewPreconditionError(
			"member not eligible for extension: " + strings.Join(elig.Reasons, "; "))
	}

	principal := old.AmountRemaining()
	if req.AdditionalAmount.IsPositive() {
		principal = principal.Add(req.AdditionalAmount)
	}
	if !principal.IsPositive() {
		return dto.ContractResponse{}, valueobject.NewPreconditionError(
			"nothing remains to extend")
	}

	res, err := uc.engine.Standard(service.SimulationInput{
		CreditType:       old.CreditType(),
		Principal:        principal,
		MonthlyRate:      req.MonthlyRate,
		FirstPaymentDate: req.FirstPaymentDate,
	}, req.MonthlyPayment)
	if err != nil {
		return dto.ContractResponse{}, err
	}
	if !res.Valid {
		return dto.ContractResponse{}, valueobject.NewValidationError(res.Reason)
	}

	successor, err := model.NewExtensionContract(
		old, principal, req.MonthlyRate, res.MonthlyPayment, res.TotalAmount,
		res.Duration, req.FirstPaymentDate, now,
	)
	if err != nil {
		return dto.ContractResponse{}, err
	}

	extended, err := old.MarkExtended(successor.ID(), now)
	if err != nil {
		return dto.ContractResponse{}, err
	}

	if err := uc.contractRepo.Save(ctx, successor); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("save successor contract: %w", err)
	}
	if err := uc.contractRepo.Update(ctx, extended); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("update extended contract: %w", err)
	}

	all := append(extended.Events(), successor.Events()...)
	if err := uc.publisher.Publish(ctx, all...); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toContractResponse(successor), nil
}
