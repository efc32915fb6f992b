package cibil

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/justtry/crm/internal/entity"
)

type CheckInput struct {
	Name    string
	Email   string
	Phone   string
	PAN     string
	DOB     string
	Address string
}

// MockClient generates development credit reports: base score 700 with a ±75
// jitter clamped to the 550..850 bureau range. A real bureau client would
// satisfy the same Check signature.
type MockClient struct {
	rng *rand.Rand
}

func NewMockClient() *MockClient {
	return &MockClient{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (c *MockClient) Check(ctx context.Context, input CheckInput) (*entity.CibilData, error) {
	log.Info().
		Str("name", input.Name).
		Bool("pan_present", input.PAN != "").
		Msg("CIBIL lookup (mock)")

	score := 700 + c.rng.Intn(151) - 75
	if score < 550 {
		score = 550
	}
	if score > 850 {
		score = 850
	}

	totalAccounts := c.rng.Intn(10) + 1
	overdueAccounts := c.rng.Intn(totalAccounts*3/10 + 1)
	now := time.Now()

	return &entity.CibilData{
		Score:            score,
		RiskCategory:     RiskCategory(score),
		CreditReportDate: now.Format("2006-01-02"),
		TotalAccounts:    totalAccounts,
		OverdueAccounts:  overdueAccounts,
		GeneratedAt:      now.Format(time.RFC3339),
		DataSource:       "Mock Data (Development)",
		ConfidenceScore:  c.rng.Intn(30) + 70,
	}, nil
}

func RiskCategory(score int) string {
	switch {
	case score >= 750:
		return "Low Risk"
	case score >= 650:
		return "Medium Risk"
	default:
		return "High Risk"
	}
}
