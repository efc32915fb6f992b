package usecase

import (
	"context"
	"time"

	"github.com/justtry/crm/internal/entity"
)

type CreateLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewCreateLeadUseCase(leadRepo entity.LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{LeadRepo: leadRepo}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	assignedTo := input.AssignedTo
	if assignedTo == "" && input.Actor.Role == entity.RoleSales {
		assignedTo = input.Actor.ID
	}

	lead, err := entity.NewLead(
		input.Name, input.Email, input.Phone,
		entity.ServiceType(input.ServiceType), input.SubCategory,
		input.Value, assignedTo, input.Actor.ID,
	)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}
	return lead, nil
}

// AssignLeadUseCase reassigns ownership with a plain overwrite; the only
// trace is the history remark.
type AssignLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewAssignLeadUseCase(leadRepo entity.LeadRepositoryInterface) *AssignLeadUseCase {
	return &AssignLeadUseCase{LeadRepo: leadRepo}
}

func (uc *AssignLeadUseCase) Execute(ctx context.Context, input AssignLeadInput) (*entity.Lead, error) {
	if input.AssignedTo == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "assignedTo is required"}
	}

	lead, err := uc.LeadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	lead.AssignedTo = input.AssignedTo
	lead.AppendHistory(entity.HistoryEntry{
		Status:    lead.Status,
		Timestamp: time.Now(),
		UserID:    input.Actor.ID,
		Remarks:   "Reassigned to " + input.AssignedTo,
	})

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}
	return lead, nil
}
