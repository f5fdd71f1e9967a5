package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// CloseContractUseCase closes a discharged contract against its signed
// quittance.
type CloseContractUseCase struct {
	contractRepo port.CreditContractRepository
	members      port.MemberDirectory
	notifier     port.Notifier
	publisher    port.EventPublisher
	logger       *slog.Logger
}

// NewCloseContractUseCase wires dependencies.
func NewCloseContractUseCase(
	contractRepo port.CreditContractRepository,
	members port.MemberDirectory,
	notifier port.Notifier,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *CloseContractUseCase {
	return &CloseContractUseCase{
		contractRepo: contractRepo,
		members:      members,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute attaches the quittance reference and closes the contract.
func (uc *CloseContractUseCase) Execute(ctx context.Context, req dto.CloseContractRequest) (dto.ContractResponse, error) {
	now := time.Now().UTC()

	contract, err := uc.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}

	withQuittance, err := contract.AttachQuittance(req.QuittanceRef, now)
	if err != nil {
		return dto.ContractResponse{}, err
	}
	closed, err := withQuittance.Close(now)
	if err != nil {
		return dto.ContractResponse{}, err
	}

	if err := uc.contractRepo.Update(ctx, closed); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("update contract: %w", err)
	}

	if member, err := uc.members.FindByID(ctx, closed.ClientID()); err != nil {
		uc.logger.Warn("member lookup failed for closing notification",
			"contract_id", closed.ID(), "error", err)
	} else if err := uc.notifier.NotifyContractClosed(ctx, member, closed); err != nil {
		uc.logger.Warn("closing notification failed", "contract_id", closed.ID(), "error", err)
	}

	if err := uc.publisher.Publish(ctx, closed.Events()...); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toContractResponse(closed), nil
}
