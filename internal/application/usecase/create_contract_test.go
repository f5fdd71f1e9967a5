package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/application/usecase"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/service"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

func approvedDemand(status valueobject.DemandStatus) *model.CreditDemand {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return model.ReconstructCreditDemand(
		"demand-001", "client-001", "M0042",
		valueobject.CreditTypeSpeciale,
		decimal.NewFromInt(500_000),
		"school fees", "",
		"MK_DEMANDE_CSP_M0042_100126_0900",
		status,
		"agent-7", "", &created,
		created, created, 2,
	)
}

func TestCreateContract_Execute(t *testing.T) {
	firstPayment := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates a pending contract from an approved demand", func(t *testing.T) {
		demandRepo := &mockDemandRepository{
			findByIDFunc: func(context.Context, string) (*model.CreditDemand, error) {
				return approvedDemand(valueobject.DemandStatusApproved), nil
			},
		}
		contractRepo := &mockContractRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewCreateContractUseCase(demandRepo, contractRepo, service.NewSimulationEngine(), publisher)

		resp, err := uc.Execute(context.Background(), dto.CreateContractRequest{
			DemandID:         "demand-001",
			MonthlyRate:      decimal.NewFromInt(5),
			MonthlyPayment:   decimal.NewFromInt(90_000),
			FirstPaymentDate: firstPayment,
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, 7, resp.Duration, "SPECIALE plans span exactly seven periods")
		assert.Equal(t, firstPayment.AddDate(0, 1, 0), resp.NextDueAt)
		assert.True(t, resp.AmountRemaining.Equal(resp.TotalAmount))
		require.Len(t, contractRepo.savedContracts, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("rejects a pending demand", func(t *testing.T) {
		demandRepo := &mockDemandRepository{
			findByIDFunc: func(context.Context, string) (*model.CreditDemand, error) {
				return approvedDemand(valueobject.DemandStatusPending), nil
			},
		}
		uc := usecase.NewCreateContractUseCase(demandRepo, &mockContractRepository{}, service.NewSimulationEngine(), &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateContractRequest{
			DemandID:         "demand-001",
			MonthlyRate:      decimal.NewFromInt(5),
			MonthlyPayment:   decimal.NewFromInt(90_000),
			FirstPaymentDate: firstPayment,
		})
		assert.True(t, valueobject.IsPrecondition(err))
	})

	t.Run("rejects an already-contracted demand", func(t *testing.T) {
		demandRepo := &mockDemandRepository{
			findByIDFunc: func(context.Context, string) (*model.CreditDemand, error) {
				return approvedDemand(valueobject.DemandStatusApproved), nil
			},
			hasContractFunc: func(context.Context, string) (bool, error) {
				return true, nil
			},
		}
		uc := usecase.NewCreateContractUseCase(demandRepo, &mockContractRepository{}, service.NewSimulationEngine(), &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateContractRequest{
			DemandID:         "demand-001",
			MonthlyRate:      decimal.NewFromInt(5),
			MonthlyPayment:   decimal.NewFromInt(90_000),
			FirstPaymentDate: firstPayment,
		})
		assert.True(t, valueobject.IsPrecondition(err))
	})

	t.Run("rejects an installment that cannot amortize within the cap", func(t *testing.T) {
		demandRepo := &mockDemandRepository{
			findByIDFunc: func(context.Context, string) (*model.CreditDemand, error) {
				return approvedDemand(valueobject.DemandStatusApproved), nil
			},
		}
		uc := usecase.NewCreateContractUseCase(demandRepo, &mockContractRepository{}, service.NewSimulationEngine(), &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateContractRequest{
			DemandID:         "demand-001",
			MonthlyRate:      decimal.NewFromInt(5),
			MonthlyPayment:   decimal.NewFromInt(10_000), // far below interest accrual
			FirstPaymentDate: firstPayment,
		})
		assert.True(t, valueobject.IsValidation(err))
	})
}
