package usecase

import (
	"context"
	"fmt"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// ContractDetailResponse bundles a contract with its payments and penalties.
type ContractDetailResponse struct {
	Contract  dto.ContractResponse  `json:"contract"`
	Payments  []dto.PaymentResponse `json:"payments"`
	Penalties []dto.PenaltyResponse `json:"penalties"`
}

// GetContractUseCase reads a contract with its payment and penalty history.
type GetContractUseCase struct {
	contractRepo port.CreditContractRepository
	paymentRepo  port.CreditPaymentRepository
	penaltyRepo  port.CreditPenaltyRepository
}

// NewGetContractUseCase wires dependencies.
func NewGetContractUseCase(
	contractRepo port.CreditContractRepository,
	paymentRepo port.CreditPaymentRepository,
	penaltyRepo port.CreditPenaltyRepository,
) *GetContractUseCase {
	return &GetContractUseCase{
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		penaltyRepo:  penaltyRepo,
	}
}

// Execute loads the contract detail.
func (uc *GetContractUseCase) Execute(ctx context.Context, contractID string) (ContractDetailResponse, error) {
	contract, err := uc.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return ContractDetailResponse{}, fmt.Errorf("find contract: %w", err)
	}

	payments, err := uc.paymentRepo.FindByCreditID(ctx, contractID)
	if err != nil {
		return ContractDetailResponse{}, fmt.Errorf("load payments: %w", err)
	}
	penalties, err := uc.penaltyRepo.FindByCreditID(ctx, contractID)
	if err != nil {
		return ContractDetailResponse{}, fmt.Errorf("load penalties: %w", err)
	}

	resp := ContractDetailResponse{
		Contract:  toContractResponse(contract),
		Payments:  make([]dto.PaymentResponse, len(payments)),
		Penalties: make([]dto.PenaltyResponse, len(penalties)),
	}
	for i, p := range payments {
		resp.Payments[i] = toPaymentResponse(p)
	}
	for i, p := range penalties {
		resp.Penalties[i] = toPenaltyResponse(p)
	}
	return resp, nil
}
