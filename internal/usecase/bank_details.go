package usecase

import (
	"context"
	"time"

	"github.com/justtry/crm/internal/entity"
)

// SubmitBankDetailsUseCase attaches or replaces the lead's bank details. A
// replacement always clears the verification stamp: edited details must go
// through back-office verification again before any payout.
type SubmitBankDetailsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewSubmitBankDetailsUseCase(leadRepo entity.LeadRepositoryInterface) *SubmitBankDetailsUseCase {
	return &SubmitBankDetailsUseCase{LeadRepo: leadRepo}
}

func (uc *SubmitBankDetailsUseCase) Execute(ctx context.Context, input BankDetailsInput) (*entity.Lead, error) {
	if errs := ValidateBankDetailsInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	lead, err := uc.LeadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	lead.SetBankDetails(entity.BankDetails{
		AccountHolderName: input.AccountHolderName,
		AccountNumber:     input.AccountNumber,
		BankName:          input.BankName,
		IFSCCode:          input.IFSCCode,
		BranchName:        input.BranchName,
		AccountType:       input.AccountType,
	})

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}
	return lead, nil
}

// VerifyBankDetailsUseCase stamps verifiedBy/verifiedAt. Verification is a
// one-way flag reserved for back-office and admin actors.
type VerifyBankDetailsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewVerifyBankDetailsUseCase(leadRepo entity.LeadRepositoryInterface) *VerifyBankDetailsUseCase {
	return &VerifyBankDetailsUseCase{LeadRepo: leadRepo}
}

func (uc *VerifyBankDetailsUseCase) Execute(ctx context.Context, leadID string, actor Actor) (*entity.Lead, error) {
	if !actor.Role.CanVerify() {
		return nil, &DomainError{Code: "FORBIDDEN", Message: "only back-office or admin may verify bank details"}
	}

	lead, err := uc.LeadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := lead.MarkBankDetailsVerified(actor.ID, time.Now()); err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}
	return lead, nil
}
