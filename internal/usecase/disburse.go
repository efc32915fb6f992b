package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/integration/razorpay"
)

// DisburseUseCase drives the at-most-once-successful payout. Eligibility is
// re-checked server-side against a fresh read immediately before the gateway
// call; an ineligible lead is rejected before any record is created.
//
// Exactly one Disbursement is appended per call, success or failure, and the
// whole aggregate is persisted in a single write. A failed attempt leaves the
// lead re-eligible; a completed one is terminal.
type DisburseUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Gateway  PaymentGateway
}

func NewDisburseUseCase(leadRepo entity.LeadRepositoryInterface, gateway PaymentGateway) *DisburseUseCase {
	return &DisburseUseCase{LeadRepo: leadRepo, Gateway: gateway}
}

func (uc *DisburseUseCase) Execute(ctx context.Context, input DisburseInput) (*DisburseOutput, error) {
	lead, err := uc.LeadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !lead.EligibleForDisbursement() {
		return nil, &DomainError{
			Code:    "NOT_ELIGIBLE",
			Message: "lead is not eligible for disbursement (requires an approved loan with verified bank details and no non-failed disbursement)",
		}
	}

	disb := entity.Disbursement{
		ID:          uuid.New().String(),
		Amount:      lead.Value,
		Status:      entity.DisbursementInitiated,
		InitiatedBy: input.Actor.ID,
		InitiatedAt: time.Now(),
	}

	payCtx, cancel := context.WithTimeout(ctx, paymentTimeout)
	result, err := uc.Gateway.Transfer(payCtx, razorpay.TransferInput{
		Amount:        lead.Value,
		BankDetails:   *lead.BankDetails,
		LeadID:        lead.ID,
		CustomerEmail: lead.Email,
	})
	cancel()

	now := time.Now()
	disb.CompletedAt = &now

	switch {
	case err != nil:
		disb.Status = entity.DisbursementFailed
		disb.FailureReason = err.Error()
		uc.recordFailure(lead, &disb, input.Actor.ID, now)

	case !result.Success:
		disb.Status = entity.DisbursementFailed
		disb.FailureReason = result.Error
		disb.GatewayResponse = result.Raw
		uc.recordFailure(lead, &disb, input.Actor.ID, now)

	default:
		disb.Status = entity.DisbursementCompleted
		disb.ReferenceID = result.ReferenceID
		disb.GatewayResponse = result.Raw
		lead.Disbursements = append(lead.Disbursements, disb)
		lead.ApplyStatus(entity.HistoryEntry{
			Status:    entity.StatusDisbursed,
			Timestamp: now,
			UserID:    input.Actor.ID,
			Remarks:   fmt.Sprintf("Disbursed ₹%.2f (reference %s)", disb.Amount, disb.ReferenceID),
		})
	}

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}

	log.Info().
		Str("lead_id", lead.ID).
		Str("disbursement_id", disb.ID).
		Str("status", disb.Status).
		Float64("amount", disb.Amount).
		Msg("disbursement attempt recorded")

	return &DisburseOutput{Lead: lead, Disbursement: disb}, nil
}

// recordFailure appends the failed attempt and its audit entry. The pipeline
// status stays put so the lead remains retryable.
func (uc *DisburseUseCase) recordFailure(lead *entity.Lead, disb *entity.Disbursement, actorID string, at time.Time) {
	lead.Disbursements = append(lead.Disbursements, *disb)
	lead.AppendHistory(entity.HistoryEntry{
		Status:    lead.Status,
		Timestamp: at,
		UserID:    actorID,
		Remarks:   "Disbursement failed: " + disb.FailureReason,
	})
}
