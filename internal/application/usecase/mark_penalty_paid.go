package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// MarkPenaltyPaidUseCase settles a penalty independently of principal
// repayment.
type MarkPenaltyPaidUseCase struct {
	penaltyRepo port.CreditPenaltyRepository
}

// NewMarkPenaltyPaidUseCase wires dependencies.
func NewMarkPenaltyPaidUseCase(penaltyRepo port.CreditPenaltyRepository) *MarkPenaltyPaidUseCase {
	return &MarkPenaltyPaidUseCase{penaltyRepo: penaltyRepo}
}

// Execute marks the penalty paid.
func (uc *MarkPenaltyPaidUseCase) Execute(ctx context.Context, req dto.MarkPenaltyPaidRequest) (dto.PenaltyResponse, error) {
	now := time.Now().UTC()

	penalty, err := uc.penaltyRepo.FindByID(ctx, req.PenaltyID)
	if err != nil {
		return dto.PenaltyResponse{}, fmt.Errorf("find penalty: %w", err)
	}

	paid, err := penalty.MarkPaid(now)
	if err != nil {
		return dto.PenaltyResponse{}, err
	}

	if err := uc.penaltyRepo.Update(ctx, paid); err != nil {
		return dto.PenaltyResponse{}, fmt.Errorf("update penalty: %w", err)
	}

	return toPenaltyResponse(paid), nil
}
