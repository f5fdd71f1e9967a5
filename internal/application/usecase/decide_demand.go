package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// DecideDemandUseCase records an agent's approval or rejection of a pending
// demand.
type DecideDemandUseCase struct {
	demandRepo port.CreditDemandRepository
	publisher  port.EventPublisher
}

// NewDecideDemandUseCase wires dependencies.
func NewDecideDemandUseCase(demandRepo port.CreditDemandRepository, publisher port.EventPublisher) *DecideDemandUseCase {
	return &DecideDemandUseCase{demandRepo: demandRepo, publisher: publisher}
}

// Execute decides a pending demand exactly once.
func (uc *DecideDemandUseCase) Execute(ctx context.Context, req dto.DecideDemandRequest) (dto.DemandResponse, error) {
	now := time.Now().UTC()

	demand, err := uc.demandRepo.FindByID(ctx, req.DemandID)
	if err != nil {
		return dto.DemandResponse{}, fmt.Errorf("find demand: %w", err)
	}

	var decided *model.CreditDemand
	if req.Approve {
		decided, err = demand.Approve(req.DecidedBy, now)
	} else {
		decided, err = demand.Reject(req.DecidedBy, req.Motif, now)
	}
	if err != nil {
		return dto.DemandResponse{}, err
	}

	if err := uc.demandRepo.Update(ctx, decided); err != nil {
		return dto.DemandResponse{}, fmt.Errorf("update demand: %w", err)
	}
	if err := uc.publisher.Publish(ctx, decided.Events()...); err != nil {
		return dto.DemandResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDemandResponse(decided), nil
}
