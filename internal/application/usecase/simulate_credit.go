package usecase

import (
	"context"
	"fmt"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/service"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// SimulateCreditUseCase runs a repayment simulation in one of the three
// modes. Simulations read nothing and write nothing; an invalid plan is a
// valid response with Valid=false, not an error.
type SimulateCreditUseCase struct {
	engine *service.SimulationEngine
}

// NewSimulateCreditUseCase wires dependencies.
func NewSimulateCreditUseCase(engine *service.SimulationEngine) *SimulateCreditUseCase {
	return &SimulateCreditUseCase{engine: engine}
}

// Execute runs the simulation described by the request.
func (uc *SimulateCreditUseCase) Execute(_ context.Context, req dto.SimulateCreditRequest) (dto.SimulationResponse, error) {
	creditType, err := valueobject.NewCreditType(req.CreditType)
	if err != nil {
		return dto.SimulationResponse{}, valueobject.NewValidationError(err.Error())
	}

	in := service.SimulationInput{
		CreditType:       creditType,
		Principal:        req.Principal,
		MonthlyRate:      req.MonthlyRate,
		FirstPaymentDate: req.FirstPaymentDate,
	}

	var res service.SimulationResult
	switch service.SimulationMode(req.Mode) {
	case service.ModeStandard:
		res, err = uc.engine.Standard(in, req.MonthlyPayment)
	case service.ModeCustom:
		entries := make([]service.CustomInstallment, len(req.CustomInstallments))
		for i, e := range req.CustomInstallments {
			entries[i] = service.CustomInstallment{Period: e.Period, Amount: e.Amount}
		}
		res, err = uc.engine.Custom(in, entries)
	case service.ModeProposed:
		res, err = uc.engine.Proposed(in, req.Duration)
	default:
		return dto.SimulationResponse{}, valueobject.NewValidationError(
			fmt.Sprintf("unknown simulation mode: %q", req.Mode))
	}
	if err != nil {
		return dto.SimulationResponse{}, err
	}
	return toSimulationResponse(res), nil
}
