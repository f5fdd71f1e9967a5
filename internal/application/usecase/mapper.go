package usecase

import (
	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/service"
)

func toSimulationResponse(res service.SimulationResult) dto.SimulationResponse {
	rows := make([]dto.ScheduleRowResponse, len(res.Schedule))
	for i, r := range res.Schedule {
		rows[i] = dto.ScheduleRowResponse{
			Period:   r.Period,
			DueDate:  r.DueDate,
			Payment:  r.Payment,
			Interest: r.Interest,
			Balance:  r.Balance,
		}
	}
	return dto.SimulationResponse{
		Mode:                    string(res.Mode),
		Valid:                   res.Valid,
		Reason:                  res.Reason,
		Schedule:                rows,
		Duration:                res.Duration,
		MonthlyPayment:          res.MonthlyPayment,
		TotalInterest:           res.TotalInterest,
		TotalAmount:             res.TotalAmount,
		RemainingAtMaxDuration:  res.RemainingAtMaxDuration,
		SuggestedMonthlyPayment: res.SuggestedMonthlyPayment,
		TotalPlanned:            res.TotalPlanned,
		Remaining:               res.Remaining,
		Excess:                  res.Excess,
	}
}

func toDemandResponse(d *model.CreditDemand) dto.DemandResponse {
	return dto.DemandResponse{
		ID:            d.ID(),
		ClientID:      d.ClientID(),
		Matricule:     d.Matricule(),
		CreditType:    d.CreditType().String(),
		Amount:        d.Amount(),
		Motif:         d.Motif(),
		GuarantorID:   d.GuarantorID(),
		Reference:     d.Reference(),
		Status:        d.Status().String(),
		DecisionBy:    d.DecisionBy(),
		DecisionMotif: d.DecisionMotif(),
		DecidedAt:     d.DecidedAt(),
		CreatedAt:     d.CreatedAt(),
	}
}

func toContractResponse(c *model.CreditContract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:               c.ID(),
		DemandID:         c.DemandID(),
		ClientID:         c.ClientID(),
		CreditType:       c.CreditType().String(),
		Principal:        c.Principal(),
		InterestRate:     c.InterestRate(),
		MonthlyPayment:   c.MonthlyPayment(),
		TotalAmount:      c.TotalAmount(),
		Duration:         c.Duration(),
		GuarantorID:      c.GuarantorID(),
		FirstPaymentDate: c.FirstPaymentDate(),
		NextDueAt:        c.NextDueAt(),
		AmountPaid:       c.AmountPaid(),
		AmountRemaining:  c.AmountRemaining(),
		Score:            c.Score(),
		Status:           c.Status().String(),
		QuittanceRef:     c.QuittanceRef(),
		CreatedAt:        c.CreatedAt(),
		UpdatedAt:        c.UpdatedAt(),
	}
}

func toPaymentResponse(p *model.CreditPayment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID(),
		CreditID:   p.CreditID(),
		Amount:     p.Amount(),
		PaidAt:     p.PaidAt(),
		Mode:       string(p.Mode()),
		ProofURL:   p.ProofURL(),
		ReceiptURL: p.ReceiptURL(),
		Reference:  p.Reference(),
	}
}

func toPenaltyResponse(p *model.CreditPenalty) dto.PenaltyResponse {
	return dto.PenaltyResponse{
		ID:       p.ID(),
		CreditID: p.CreditID(),
		Amount:   p.Amount(),
		DaysLate: p.DaysLate(),
		DueDate:  p.DueDate(),
		Paid:     p.Paid(),
		PaidAt:   p.PaidAt(),
	}
}
