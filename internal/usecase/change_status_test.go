package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/integration/blandai"
	"github.com/justtry/crm/internal/usecase"
)

func salesActor() usecase.Actor {
	return usecase.Actor{ID: "user-sales", Name: "Priya", Role: entity.RoleSales}
}

func loanLead() *entity.Lead {
	lead, _ := entity.NewLead("Ravi Kumar", "ravi@example.com", "9876543210", entity.ServiceLoan, "Personal Loan", 500000, "user-sales", "user-sales")
	return lead
}

func TestChangeStatusAppendsEntryAndSaves(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), nil)

	output, err := uc.Execute(ctx, usecase.ChangeStatusInput{
		LeadID:    lead.ID,
		NewStatus: "KYC Pending",
		Remarks:   "docs requested",
		Actor:     salesActor(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "KYC Pending", output.Lead.Status)
	assert.Len(t, output.Lead.History, 2)
	last := output.Lead.History[len(output.Lead.History)-1]
	assert.Equal(t, "KYC Pending", last.Status)
	assert.Equal(t, "user-sales", last.UserID)
	assert.Equal(t, "docs requested", last.Remarks)
	assert.Empty(t, output.Warnings)

	mockRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestChangeStatusRejectsEmptyStatus(t *testing.T) {
	uc := usecase.NewChangeStatusUseCase(new(MockLeadRepository), new(MockCallService), new(MockEmailService), nil)

	_, err := uc.Execute(context.Background(), usecase.ChangeStatusInput{
		LeadID:    "lead-1",
		NewStatus: "   ",
		Actor:     salesActor(),
	})

	assert.True(t, usecase.IsDomainError(err))
}

func TestChangeStatusRejectsUnknownRole(t *testing.T) {
	uc := usecase.NewChangeStatusUseCase(new(MockLeadRepository), new(MockCallService), new(MockEmailService), nil)

	_, err := uc.Execute(context.Background(), usecase.ChangeStatusInput{
		LeadID:    "lead-1",
		NewStatus: "Approved",
		Actor:     usecase.Actor{ID: "x", Role: entity.Role("guest")},
	})

	assert.True(t, usecase.IsDomainError(err))
}

func TestChangeStatusLeadNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), nil)

	_, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: "missing", NewStatus: "Approved", Actor: salesActor()})

	assert.True(t, usecase.IsDomainError(err))
	de := err.(*usecase.DomainError)
	assert.Equal(t, "LEAD_NOT_FOUND", de.Code)
}

func TestChangeStatusAcceptsArbitraryStatusString(t *testing.T) {
	// Corrections and off-pipeline statuses are accepted; only emptiness is
	// rejected.
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), nil)

	output, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "On Hold (manual)", Actor: salesActor()})

	assert.NoError(t, err)
	assert.Equal(t, "On Hold (manual)", output.Lead.Status)
}

func TestApprovalTriggersCallEmailAndFollowUp(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	mockCalls := new(MockCallService)
	mockCalls.On("PlaceCall", mock.Anything, mock.Anything).Return(&blandai.PlaceCallOutput{Success: true, CallID: "call-789"}, nil)

	mockEmails := new(MockEmailService)
	mockEmails.On("SendStatusEmail", mock.Anything, "ravi@example.com", "Ravi Kumar", entity.ServiceLoan, "Approved", lead.ID).
		Return("smtp-abc-123", nil)

	mockQueue := new(MockFollowUpProducer)
	mockQueue.On("PublishFollowUp", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, mockCalls, mockEmails, mockQueue)

	output, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()})

	assert.NoError(t, err)
	assert.Empty(t, output.Warnings)
	mockCalls.AssertNumberOfCalls(t, "PlaceCall", 1)
	mockEmails.AssertNumberOfCalls(t, "SendStatusEmail", 1)
	mockQueue.AssertNumberOfCalls(t, "PublishFollowUp", 1)

	// Status write, then one dispatch-outcome write per successful dispatch.
	mockRepo.AssertNumberOfCalls(t, "Save", 3)

	// Creation entry, the approval, then one system entry per dispatch with the
	// external reference.
	history := output.Lead.History
	assert.Len(t, history, 4)
	assert.Equal(t, "Approved", history[1].Status)
	assert.Equal(t, "user-sales", history[1].UserID)
	assert.Equal(t, entity.SystemUserID, history[2].UserID)
	assert.Contains(t, history[2].Remarks, "call-789")
	assert.Equal(t, entity.SystemUserID, history[3].UserID)
	assert.Contains(t, history[3].Remarks, "smtp-abc-123")
	assert.Equal(t, "Approved", output.Lead.Status)
}

func TestNonApprovalStatusFiresNothing(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	mockCalls := new(MockCallService)
	mockEmails := new(MockEmailService)
	mockQueue := new(MockFollowUpProducer)

	uc := usecase.NewChangeStatusUseCase(mockRepo, mockCalls, mockEmails, mockQueue)

	// "Rejected" is a valid loan status but not the approval trigger.
	_, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Rejected", Actor: salesActor()})

	assert.NoError(t, err)
	mockCalls.AssertNotCalled(t, "PlaceCall")
	mockEmails.AssertNotCalled(t, "SendStatusEmail")
	mockQueue.AssertNotCalled(t, "PublishFollowUp")
}

func TestApprovalTriggerMatchesServiceType(t *testing.T) {
	// "Approved" fires the loan pipeline only; an investment lead's trigger is
	// "Activated".
	ctx := context.Background()
	lead, _ := entity.NewLead("Asha", "asha@example.com", "9000000001", entity.ServiceInvestment, "Stocks/Demat", 250000, "user-sales", "user-sales")

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	mockCalls := new(MockCallService)
	mockCalls.On("PlaceCall", mock.Anything, mock.Anything).Return(&blandai.PlaceCallOutput{Success: true, CallID: "call-1"}, nil)
	mockEmails := new(MockEmailService)
	mockEmails.On("SendStatusEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("smtp-1", nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, mockCalls, mockEmails, nil)

	_, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()})
	assert.NoError(t, err)
	mockCalls.AssertNotCalled(t, "PlaceCall")

	_, err = uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Activated", Actor: salesActor()})
	assert.NoError(t, err)
	mockCalls.AssertNumberOfCalls(t, "PlaceCall", 1)
}

func TestDispatchFailuresBecomeWarnings(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	mockCalls := new(MockCallService)
	mockCalls.On("PlaceCall", mock.Anything, mock.Anything).Return(nil, errors.New("provider timeout"))

	mockEmails := new(MockEmailService)
	mockEmails.On("SendStatusEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("smtp down"))

	uc := usecase.NewChangeStatusUseCase(mockRepo, mockCalls, mockEmails, nil)

	output, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()})

	// The status change itself succeeded; failures surface as warnings only.
	assert.NoError(t, err)
	assert.Equal(t, "Approved", output.Lead.Status)
	assert.Len(t, output.Warnings, 2)

	// No dispatch-outcome entries for failed dispatches: only the status write.
	mockRepo.AssertNumberOfCalls(t, "Save", 1)
	assert.Len(t, output.Lead.History, 2)
}

func TestCallOnlyPlacedWhenPhonePresent(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()
	lead.Phone = ""

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	mockCalls := new(MockCallService)
	mockEmails := new(MockEmailService)
	mockEmails.On("SendStatusEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("smtp-1", nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, mockCalls, mockEmails, nil)

	_, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()})

	assert.NoError(t, err)
	mockCalls.AssertNotCalled(t, "PlaceCall")
	mockEmails.AssertNumberOfCalls(t, "SendStatusEmail", 1)
}

func TestChangeStatusIsNotIdempotent(t *testing.T) {
	// Repeating the same approval fires the side effects again and appends a
	// fresh set of entries. Callers must not retry blindly.
	ctx := context.Background()
	lead := loanLead()
	lead.Email = ""
	lead.Phone = ""

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), nil)

	input := usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()}
	_, err := uc.Execute(ctx, input)
	assert.NoError(t, err)
	_, err = uc.Execute(ctx, input)
	assert.NoError(t, err)

	assert.Len(t, lead.History, 3) // creation + two approvals
	mockRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestChangeStatusVersionConflict(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(entity.ErrVersionConflict)

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), nil)

	_, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()})

	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, "CONFLICT", err.(*usecase.DomainError).Code)
}

func TestFollowUpPublishFailureIsSoft(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()
	lead.Phone = ""
	lead.Email = ""

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	mockQueue := new(MockFollowUpProducer)
	mockQueue.On("PublishFollowUp", mock.Anything, mock.Anything).Return(errors.New("broker gone"))

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), mockQueue)

	output, err := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "Approved", Actor: salesActor()})

	assert.NoError(t, err)
	assert.Len(t, output.Warnings, 1)
}

func TestStatusEntryTimestampsAreSet(t *testing.T) {
	ctx := context.Background()
	lead := loanLead()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("GetByID", ctx, lead.ID).Return(lead, nil)
	mockRepo.On("Save", ctx, lead).Return(nil)

	uc := usecase.NewChangeStatusUseCase(mockRepo, new(MockCallService), new(MockEmailService), nil)

	before := time.Now()
	output, _ := uc.Execute(ctx, usecase.ChangeStatusInput{LeadID: lead.ID, NewStatus: "KYC Pending", Actor: salesActor()})

	last := output.Lead.History[len(output.Lead.History)-1]
	assert.False(t, last.Timestamp.Before(before.Add(-time.Second)))
}
