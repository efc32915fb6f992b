package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justtry/crm/internal/entity"
)

// SendCustomEmailUseCase sends agent-authored content to the lead. Unlike the
// approval dispatch, the email IS the action here, so a send failure is a hard
// error and nothing is recorded.
type SendCustomEmailUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Emails   EmailService
}

func NewSendCustomEmailUseCase(leadRepo entity.LeadRepositoryInterface, emails EmailService) *SendCustomEmailUseCase {
	return &SendCustomEmailUseCase{LeadRepo: leadRepo, Emails: emails}
}

func (uc *SendCustomEmailUseCase) Execute(ctx context.Context, input CustomEmailInput) (*entity.Lead, error) {
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.HTMLBody) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "subject and body are required"}
	}

	lead, err := uc.LeadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if lead.Email == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "lead has no email address"}
	}

	mailCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	emailID, err := uc.Emails.SendCustomEmail(mailCtx, lead.Email, lead.Name, input.Subject, input.HTMLBody, lead.ID)
	if err != nil {
		return nil, &TechnicalError{Code: "EMAIL_FAILED", Message: "failed to send email: " + err.Error()}
	}

	lead.AppendHistory(entity.HistoryEntry{
		Status:    entity.StatusCustomEmailSent,
		Timestamp: time.Now(),
		UserID:    input.Actor.ID,
		Remarks:   fmt.Sprintf("%q sent (email id %s)", input.Subject, emailID),
	})

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return nil, mapRepoError(err)
	}
	return lead, nil
}
