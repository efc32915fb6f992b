package cibil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockClientScoreStaysInBureauRange(t *testing.T) {
	c := NewMockClient()

	for i := 0; i < 200; i++ {
		report, err := c.Check(context.Background(), CheckInput{Name: "Ravi", PAN: "ABCDE1234F"})
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, report.Score, 550)
		assert.LessOrEqual(t, report.Score, 850)
		assert.NotEmpty(t, report.RiskCategory)
		assert.LessOrEqual(t, report.OverdueAccounts, report.TotalAccounts)
	}
}

func TestRiskCategoryBands(t *testing.T) {
	assert.Equal(t, "Low Risk", RiskCategory(750))
	assert.Equal(t, "Low Risk", RiskCategory(850))
	assert.Equal(t, "Medium Risk", RiskCategory(749))
	assert.Equal(t, "Medium Risk", RiskCategory(650))
	assert.Equal(t, "High Risk", RiskCategory(649))
	assert.Equal(t, "High Risk", RiskCategory(550))
}
