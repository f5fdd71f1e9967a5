package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// ValidateDischargeUseCase force-marks a contract DISCHARGED with an audit
// motif. The collected total is recomputed from stored payments rather than
// trusted from the contract's cached field.
type ValidateDischargeUseCase struct {
	contractRepo port.CreditContractRepository
	paymentRepo  port.CreditPaymentRepository
	publisher    port.EventPublisher
}

// NewValidateDischargeUseCase wires dependencies.
func NewValidateDischargeUseCase(
	contractRepo port.CreditContractRepository,
	paymentRepo port.CreditPaymentRepository,
	publisher port.EventPublisher,
) *ValidateDischargeUseCase {
	return &ValidateDischargeUseCase{
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		publisher:    publisher,
	}
}

// Execute discharges the contract when its payments cover the total owed.
func (uc *ValidateDischargeUseCase) Execute(ctx context.Context, req dto.ValidateDischargeRequest) (dto.ContractResponse, error) {
	now := time.Now().UTC()

	contract, err := uc.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}

	payments, err := uc.paymentRepo.FindByCreditID(ctx, contract.ID())
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("load payments: %w", err)
	}
	collected := decimal.Zero
	for _, p := range payments {
		collected = collected.Add(p.Amount())
	}

	discharged, err := contract.ValidateDischarge(req.Motif, req.Actor, collected, now)
	if err != nil {
		return dto.ContractResponse{}, err
	}

	if err := uc.contractRepo.Update(ctx, discharged); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("update contract: %w", err)
	}
	if err := uc.publisher.Publish(ctx, discharged.Events()...); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toContractResponse(discharged), nil
}
