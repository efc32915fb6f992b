package usecase

import (
	"context"
	"time"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/integration/cibil"
)

// RecordCreditCheckUseCase runs a bureau lookup and wraps the result into an
// "Eligibility Check" history entry. The lead's pipeline status is untouched;
// the latest entry carrying cibilData is the score shown to agents.
type RecordCreditCheckUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Bureau   CreditBureau
}

func NewRecordCreditCheckUseCase(leadRepo entity.LeadRepositoryInterface, bureau CreditBureau) *RecordCreditCheckUseCase {
	return &RecordCreditCheckUseCase{LeadRepo: leadRepo, Bureau: bureau}
}

func (uc *RecordCreditCheckUseCase) Execute(ctx context.Context, input CreditCheckInput) (*entity.Lead, error) {
	if errs := ValidateCreditCheckRequest(input.Request); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	lead, err := uc.LeadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	result, err := uc.Bureau.Check(checkCtx, cibil.CheckInput{
		Name:    input.Request.Name,
		Email:   input.Request.Email,
		Phone:   input.Request.Phone,
		PAN:     input.Request.PAN,
		DOB:     input.Request.DOB,
		Address: input.Request.Address,
	})
	if err != nil {
		// Nothing was recorded; the caller may simply retry.
		return nil, &TechnicalError{Code: "CREDIT_BUREAU_ERROR", Message: "credit check failed: " + err.Error()}
	}

	lead.AppendHistory(entity.HistoryEntry{
		Status:    entity.StatusEligibilityCheck,
		Timestamp: time.Now(),
		UserID:    input.Actor.ID,
		CibilData: result,
	})

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}

	return lead, nil
}
