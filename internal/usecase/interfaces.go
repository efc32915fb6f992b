package usecase

import (
	"context"
	"time"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/integration/blandai"
	"github.com/justtry/crm/internal/infra/integration/cibil"
	"github.com/justtry/crm/internal/infra/integration/razorpay"
	"github.com/justtry/crm/internal/infra/queue"
)

// Collaborator calls never run unbounded; a timeout counts as a collaborator
// failure and gets the same best-effort handling.
const (
	dispatchTimeout = 15 * time.Second
	paymentTimeout  = 30 * time.Second
)

type CallService interface {
	PlaceCall(ctx context.Context, input blandai.PlaceCallInput) (*blandai.PlaceCallOutput, error)
}

type EmailService interface {
	SendStatusEmail(ctx context.Context, to, name string, serviceType entity.ServiceType, status, leadID string) (string, error)
	SendCustomEmail(ctx context.Context, to, name, subject, htmlBody, leadID string) (string, error)
}

type CreditBureau interface {
	Check(ctx context.Context, input cibil.CheckInput) (*entity.CibilData, error)
}

type PaymentGateway interface {
	Transfer(ctx context.Context, input razorpay.TransferInput) (*razorpay.TransferResult, error)
}

type FollowUpProducer interface {
	PublishFollowUp(ctx context.Context, payload queue.FollowUpPayload) error
}
