package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/domain/port"
)

// contributionFreshness is how recently a member must have contributed to
// the caisse to be considered up to date.
const contributionFreshness = 30 * 24 * time.Hour

// CheckEligibilityUseCase answers whether a member may request or extend a
// credit. Ineligibility is an expected business outcome returned as data.
type CheckEligibilityUseCase struct {
	members port.MemberDirectory
	caisse  port.CaisseClient
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(members port.MemberDirectory, caisse port.CaisseClient) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{members: members, caisse: caisse}
}

// Execute checks the client against the caisse; a sponsoring guarantor who
// is up to date rescues a client who is not.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, clientID, guarantorID string, now time.Time) (dto.EligibilityResponse, error) {
	member, err := uc.members.FindByID(ctx, clientID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("find member: %w", err)
	}
	if !member.Active {
		return dto.EligibilityResponse{
			Eligible: false,
			Reasons:  []string{"member is not active"},
		}, nil
	}

	upToDate, reason, err := uc.upToDate(ctx, clientID, now)
	if err != nil {
		return dto.EligibilityResponse{}, err
	}
	if upToDate {
		return dto.EligibilityResponse{Eligible: true}, nil
	}
	reasons := []string{"client: " + reason}

	if guarantorID != "" {
		guarantorOK, guarantorReason, err := uc.upToDate(ctx, guarantorID, now)
		if err != nil {
			return dto.EligibilityResponse{}, err
		}
		if guarantorOK {
			return dto.EligibilityResponse{Eligible: true}, nil
		}
		reasons = append(reasons, "guarantor: "+guarantorReason)
	}

	return dto.EligibilityResponse{Eligible: false, Reasons: reasons}, nil
}

func (uc *CheckEligibilityUseCase) upToDate(ctx context.Context, clientID string, now time.Time) (bool, string, error) {
	last, err := uc.caisse.LastContributionAt(ctx, clientID)
	if err != nil {
		return false, "", fmt.Errorf("last contribution: %w", err)
	}
	if last.IsZero() {
		return false, "no caisse contribution on record", nil
	}
	if now.Sub(last) > contributionFreshness {
		return false, "last caisse contribution older than 30 days", nil
	}
	return true, "", nil
}
