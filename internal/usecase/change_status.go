package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/integration/blandai"
	"github.com/justtry/crm/internal/infra/queue"
)

// ChangeStatusUseCase is the workflow coordinator: it applies a status change,
// appends the audit entry, and fans out the approval side effects.
//
// Ordering inside one call is strict: the status entry is durably written
// before any dispatch is attempted, and each dispatch outcome is written after
// that dispatch resolves. Nothing is guaranteed across concurrent calls on the
// same lead beyond the version check in the repository.
//
// Calling this twice with the same status is NOT idempotent: two history
// entries, side effects fired twice. That matches the observed product
// behavior and is deliberately preserved.
type ChangeStatusUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Calls    CallService
	Emails   EmailService
	Queue    FollowUpProducer
}

func NewChangeStatusUseCase(
	leadRepo entity.LeadRepositoryInterface,
	calls CallService,
	emails EmailService,
	producer FollowUpProducer,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		LeadRepo: leadRepo,
		Calls:    calls,
		Emails:   emails,
		Queue:    producer,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	if strings.TrimSpace(input.NewStatus) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "status must not be empty"}
	}
	if !input.Actor.Role.CanChangeStatus() {
		return nil, &DomainError{Code: "FORBIDDEN", Message: "role may not change lead status"}
	}

	lead, err := uc.LeadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	lead.ApplyStatus(entity.HistoryEntry{
		Status:    input.NewStatus,
		Timestamp: time.Now(),
		UserID:    input.Actor.ID,
		Remarks:   input.Remarks,
	})

	// Commit the status change before any side effect fires.
	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}

	var warnings []string
	if input.NewStatus == entity.ApprovalStatusFor(lead.ServiceType) {
		warnings = uc.dispatchApproval(ctx, lead, input.NewStatus)
	}

	return &ChangeStatusOutput{Lead: lead, Warnings: warnings}, nil
}

// dispatchApproval fires the AI call and the email independently: one failing
// does not block the other, and neither rolls back the committed status. Each
// successful dispatch gets its own system history entry with the external
// reference id.
func (uc *ChangeStatusUseCase) dispatchApproval(ctx context.Context, lead *entity.Lead, status string) []string {
	var warnings []string

	if lead.Phone != "" {
		callCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		out, err := uc.Calls.PlaceCall(callCtx, blandai.PlaceCallInput{
			Phone:       lead.Phone,
			Name:        lead.Name,
			ServiceType: string(lead.ServiceType),
			Status:      status,
			LeadID:      lead.ID,
		})
		cancel()
		if err != nil || out == nil || !out.Success {
			warnings = append(warnings, "status updated but AI call could not be placed: "+dispatchReason(err, out))
			log.Warn().Str("lead_id", lead.ID).Err(err).Msg("approval call dispatch failed")
		} else {
			uc.recordDispatch(ctx, lead, status, fmt.Sprintf("AI call placed (call id %s)", out.CallID), &warnings)
		}
	}

	if lead.Email != "" {
		mailCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		emailID, err := uc.Emails.SendStatusEmail(mailCtx, lead.Email, lead.Name, lead.ServiceType, status, lead.ID)
		cancel()
		if err != nil {
			warnings = append(warnings, "status updated but email could not be sent: "+err.Error())
			log.Warn().Str("lead_id", lead.ID).Err(err).Msg("approval email dispatch failed")
		} else {
			uc.recordDispatch(ctx, lead, status, fmt.Sprintf("Approval email sent (email id %s)", emailID), &warnings)
		}
	}

	if uc.Queue != nil {
		qCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		err := uc.Queue.PublishFollowUp(qCtx, queue.FollowUpPayload{
			LeadID:     lead.ID,
			LeadName:   lead.Name,
			AssignedTo: lead.AssignedTo,
			Status:     status,
		})
		cancel()
		if err != nil {
			warnings = append(warnings, "status updated but follow-up task could not be scheduled")
			log.Warn().Str("lead_id", lead.ID).Err(err).Msg("follow-up publish failed")
		}
	}

	return warnings
}

// recordDispatch writes the dispatch-outcome entry. The entry keeps the lead's
// current status; only the remarks carry the outcome.
func (uc *ChangeStatusUseCase) recordDispatch(ctx context.Context, lead *entity.Lead, status, remarks string, warnings *[]string) {
	lead.AppendHistory(entity.HistoryEntry{
		Status:    status,
		Timestamp: time.Now(),
		UserID:    entity.SystemUserID,
		Remarks:   remarks,
	})
	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		*warnings = append(*warnings, "dispatch succeeded but its audit entry could not be saved")
		log.Error().Str("lead_id", lead.ID).Err(err).Msg("dispatch outcome write failed")
	}
}

func dispatchReason(err error, out *blandai.PlaceCallOutput) string {
	if err != nil {
		return err.Error()
	}
	if out != nil && out.Message != "" {
		return out.Message
	}
	return "provider reported failure"
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, entity.ErrLeadNotFound):
		return &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
	case errors.Is(err, entity.ErrVersionConflict):
		return &DomainError{Code: "CONFLICT", Message: "lead was modified concurrently, reload and retry"}
	default:
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead: " + err.Error()}
	}
}
