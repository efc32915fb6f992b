package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/integration/blandai"
	"github.com/justtry/crm/internal/infra/integration/cibil"
	"github.com/justtry/crm/internal/infra/integration/razorpay"
	"github.com/justtry/crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockCallService
type MockCallService struct {
	mock.Mock
}

func (m *MockCallService) PlaceCall(ctx context.Context, input blandai.PlaceCallInput) (*blandai.PlaceCallOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blandai.PlaceCallOutput), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendStatusEmail(ctx context.Context, to, name string, serviceType entity.ServiceType, status, leadID string) (string, error) {
	args := m.Called(ctx, to, name, serviceType, status, leadID)
	return args.String(0), args.Error(1)
}

func (m *MockEmailService) SendCustomEmail(ctx context.Context, to, name, subject, htmlBody, leadID string) (string, error) {
	args := m.Called(ctx, to, name, subject, htmlBody, leadID)
	return args.String(0), args.Error(1)
}

// MockCreditBureau
type MockCreditBureau struct {
	mock.Mock
}

func (m *MockCreditBureau) Check(ctx context.Context, input cibil.CheckInput) (*entity.CibilData, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CibilData), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Transfer(ctx context.Context, input razorpay.TransferInput) (*razorpay.TransferResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.TransferResult), args.Error(1)
}

// MockFollowUpProducer
type MockFollowUpProducer struct {
	mock.Mock
}

func (m *MockFollowUpProducer) PublishFollowUp(ctx context.Context, payload queue.FollowUpPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
