package services

import "freshsales/internal/models"

// CalculateForecast returns the probability-weighted pipeline value over all
// open opportunities: sum of expected_value * probability/100. Closed stages
// contribute nothing (won deals are realized revenue, lost deals are gone), as
// does a missing expected value.
func CalculateForecast(opportunities []*models.Opportunity) float64 {
	var total float64
	for _, opp := range opportunities {
		if opp == nil || opp.Stage.IsClosed() || opp.ExpectedValue == nil {
			continue
		}
		total += *opp.ExpectedValue * float64(opp.Probability) / 100
	}
	return total
}
