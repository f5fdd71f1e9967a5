package usecase

import (
	"context"
	"fmt"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// GetDemandUseCase reads a single demand.
type GetDemandUseCase struct {
	demandRepo port.CreditDemandRepository
}

// NewGetDemandUseCase wires dependencies.
func NewGetDemandUseCase(demandRepo port.CreditDemandRepository) *GetDemandUseCase {
	return &GetDemandUseCase{demandRepo: demandRepo}
}

// Execute loads the demand.
func (uc *GetDemandUseCase) Execute(ctx context.Context, demandID string) (dto.DemandResponse, error) {
	demand, err := uc.demandRepo.FindByID(ctx, demandID)
	if err != nil {
		return dto.DemandResponse{}, fmt.Errorf("find demand: %w", err)
	}
	return toDemandResponse(demand), nil
}
