package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// CreateDemandUseCase registers a member's credit request. An up-to-date
// caisse position of the client (or their guarantor) gates creation.
type CreateDemandUseCase struct {
	demandRepo  port.CreditDemandRepository
	members     port.MemberDirectory
	eligibility *CheckEligibilityUseCase
	publisher   port.EventPublisher
}

// NewCreateDemandUseCase wires dependencies.
func NewCreateDemandUseCase(
	demandRepo port.CreditDemandRepository,
	members port.MemberDirectory,
	eligibility *CheckEligibilityUseCase,
	publisher port.EventPublisher,
) *CreateDemandUseCase {
	return &CreateDemandUseCase{
		demandRepo:  demandRepo,
		members:     members,
		eligibility: eligibility,
		publisher:   publisher,
	}
}

// Execute creates a pending demand.
func (uc *CreateDemandUseCase) Execute(ctx context.Context, req dto.CreateDemandRequest) (dto.DemandResponse, error) {
	now := time.Now().UTC()

	creditType, err := valueobject.NewCreditType(req.CreditType)
	if err != nil {
		return dto.DemandResponse{}, valueobject.NewValidationError(err.Error())
	}

	member, err := uc.members.FindByID(ctx, req.ClientID)
	if err != nil {
		return dto.DemandResponse{}, fmt.Errorf("find member: %w", err)
	}

	elig, err := uc.eligibility.Execute(ctx, req.ClientID, req.GuarantorID, now)
	if err != nil {
		return dto.DemandResponse{}, fmt.Errorf("check eligibility: %w", err)
	}
	if !elig.Eligible {
		return dto.DemandResponse{}, valueobject.NewPreconditionError(
			"member not eligible: " + strings.Join(elig.Reasons, "; "))
	}

	demand, err := model.NewCreditDemand(
		req.ClientID, member.Matricule, creditType, req.Amount, req.Motif, req.GuarantorID, now,
	)
	if err != nil {
		return dto.DemandResponse{}, err
	}

	if err := uc.demandRepo.Save(ctx, demand); err != nil {
		return dto.DemandResponse{}, fmt.Errorf("save demand: %w", err)
	}
	if err := uc.publisher.Publish(ctx, demand.Events()...); err != nil {
		return dto.DemandResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDemandResponse(demand), nil
}
