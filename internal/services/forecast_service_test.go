package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"freshsales/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateForecast(t *testing.T) {
	opps := []*models.Opportunity{
		{Stage: models.StageProposal, Probability: 60, ExpectedValue: floatPtr(100000)},
		{Stage: models.StageNegotiation, Probability: 80, ExpectedValue: floatPtr(50000)},
	}
	// 100000*0.60 + 50000*0.80
	assert.InDelta(t, 100000, CalculateForecast(opps), 0.001)
}

func TestCalculateForecastSkipsClosedAndMissing(t *testing.T) {
	opps := []*models.Opportunity{
		{Stage: models.StageQualification, Probability: 25, ExpectedValue: floatPtr(40000)},
		{Stage: models.StageClosedWon, Probability: 100, ExpectedValue: floatPtr(999999)},
		{Stage: models.StageClosedLost, Probability: 0, ExpectedValue: floatPtr(888888)},
		{Stage: models.StageProposal, Probability: 60, ExpectedValue: nil},
		nil,
	}
	assert.InDelta(t, 10000, CalculateForecast(opps), 0.001)
}

func TestCalculateForecastEmpty(t *testing.T) {
	assert.Zero(t, CalculateForecast(nil))
	assert.Zero(t, CalculateForecast([]*models.Opportunity{}))
}

func TestCalculateForecastZeroProbability(t *testing.T) {
	opps := []*models.Opportunity{
		{Stage: models.StageNewLead, Probability: 0, ExpectedValue: floatPtr(75000)},
	}
	assert.Zero(t, CalculateForecast(opps))
}
