package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/service"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// CreateContractUseCase turns an approved demand into a pending contract.
// The repayment plan is re-simulated server-side from the agreed installment
// so that stored totals never depend on client-supplied figures.
type CreateContractUseCase struct {
	demandRepo   port.CreditDemandRepository
	contractRepo port.CreditContractRepository
	engine       *service.SimulationEngine
	publisher    port.EventPublisher
}

// NewCreateContractUseCase wires dependencies.
func NewCreateContractUseCase(
	demandRepo port.CreditDemandRepository,
	contractRepo port.CreditContractRepository,
	engine *service.SimulationEngine,
	publisher port.EventPublisher,
) *CreateContractUseCase {
	return &CreateContractUseCase{
		demandRepo:   demandRepo,
		contractRepo: contractRepo,
		engine:       engine,
		publisher:    publisher,
	}
}

// Execute creates a contract from an approved, not-yet-contracted demand.
func (uc *CreateContractUseCase) Execute(ctx context.Context, req dto.CreateContractRequest) (dto.ContractResponse, error) {
	now := time.Now().UTC()

	demand, err := uc.demandRepo.FindByID(ctx, req.DemandID)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find demand: %w", err)
	}
	if demand.Status() != valueobject.DemandStatusApproved {
		return dto.ContractResponse{}, valueobject.NewPreconditionError(
			"contract requires an approved demand")
	}

	contracted, err := uc.demandRepo.HasContract(ctx, demand.ID())
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("check existing contract: %w", err)
	}
	if contracted {
		return dto.ContractResponse{}, valueobject.NewPreconditionError(
			"demand is already backed by a contract")
	}

	res, err := uc.engine.Standard(service.SimulationInput{
		CreditType:       demand.CreditType(),
		Principal:        demand.Amount(),
		MonthlyRate:      req.MonthlyRate,
		FirstPaymentDate: req.FirstPaymentDate,
	}, req.MonthlyPayment)
	if err != nil {
		return dto.ContractResponse{}, err
	}
	if !res.Valid {
		return dto.ContractResponse{}, valueobject.NewValidationError(res.Reason)
	}

	contract, err := model.NewCreditContract(
		demand,
		req.MonthlyRate, res.MonthlyPayment, res.TotalAmount,
		res.Duration, req.FirstPaymentDate, now,
	)
	if err != nil {
		return dto.ContractResponse{}, err
	}

	if err := uc.contractRepo.Save(ctx, contract); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("save contract: %w", err)
	}
	if err := uc.publisher.Publish(ctx, contract.Events()...); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toContractResponse(contract), nil
}
