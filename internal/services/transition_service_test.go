package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshsales/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func intPtr(v int) *int { return &v }

func TestCanTransition(t *testing.T) {
	open := []models.Stage{
		models.StageNewLead,
		models.StageQualification,
		models.StageNeedsAnalysis,
		models.StageProposal,
		models.StageNegotiation,
		models.StageRenewal,
	}

	for _, from := range open {
		for _, to := range models.AllStages {
			assert.True(t, CanTransition(from, to), "%s -> %s must be allowed", from, to)
		}
	}

	for _, from := range []models.Stage{models.StageClosedWon, models.StageClosedLost} {
		for _, to := range models.AllStages {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestApplySetsDefaultProbability(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc := &TransitionService{Now: fixedClock(now)}

	opp := &models.Opportunity{
		ID:          1,
		Stage:       models.StageNewLead,
		Probability: 10,
	}
	require.NoError(t, svc.Apply(opp, models.StageNegotiation, nil))

	assert.Equal(t, models.StageNegotiation, opp.Stage)
	assert.Equal(t, 80, opp.Probability)
	assert.Equal(t, now, opp.StageChangedAt)
	require.Len(t, opp.Activities, 1)
	assert.Equal(t, models.ActivityTypeStageChanged, opp.Activities[0].Type)
	assert.Equal(t, "New Lead → Negotiation", opp.Activities[0].Title)
	assert.Equal(t, now, opp.Activities[0].CreatedAt)
}

func TestApplyProbabilityOverride(t *testing.T) {
	svc := NewTransitionService()

	opp := &models.Opportunity{ID: 1, Stage: models.StageProposal, Probability: 60}
	require.NoError(t, svc.Apply(opp, models.StageNegotiation, intPtr(95)))
	assert.Equal(t, 95, opp.Probability)

	err := svc.Apply(opp, models.StageRenewal, intPtr(101))
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = svc.Apply(opp, models.StageRenewal, intPtr(-1))
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, models.StageNegotiation, opp.Stage, "rejected override must not move the stage")
}

func TestApplyUnknownStage(t *testing.T) {
	svc := NewTransitionService()
	opp := &models.Opportunity{ID: 1, Stage: models.StageNewLead, Probability: 10}

	err := svc.Apply(opp, models.Stage("DISCOVERY"), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, models.StageNewLead, opp.Stage)
	assert.Empty(t, opp.Activities)
}

func TestApplyClosedOpportunityIsImmutable(t *testing.T) {
	svc := NewTransitionService()

	for _, from := range []models.Stage{models.StageClosedWon, models.StageClosedLost} {
		opp := &models.Opportunity{
			ID:          4,
			Stage:       from,
			Probability: from.DefaultProbability(),
		}
		before := *opp

		for _, to := range models.AllStages {
			err := svc.Apply(opp, to, nil)
			require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)

			var ite *InvalidTransitionError
			require.ErrorAs(t, err, &ite)
			assert.Equal(t, opp.ID, ite.OpportunityID)
			assert.Equal(t, from, ite.From)
		}

		assert.Equal(t, before, *opp, "closed opportunity must stay untouched")
		assert.Empty(t, opp.Activities)
	}
}

// A transition into the current stage is still a transition: it refreshes the
// timestamp and leaves a trace in the activity trail.
func TestApplySameStageRefreshes(t *testing.T) {
	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	svc := &TransitionService{Now: fixedClock(first)}
	opp := &models.Opportunity{ID: 2, Stage: models.StageProposal, Probability: 55, StageChangedAt: first.Add(-time.Hour)}

	require.NoError(t, svc.Apply(opp, models.StageProposal, nil))
	assert.Equal(t, first, opp.StageChangedAt)
	assert.Equal(t, 60, opp.Probability, "same-stage transition resets to the default")

	svc.Now = fixedClock(second)
	require.NoError(t, svc.Apply(opp, models.StageProposal, nil))
	assert.Equal(t, second, opp.StageChangedAt)
	require.Len(t, opp.Activities, 2)
	assert.Equal(t, "Proposal → Proposal", opp.Activities[1].Title)
}

// Closing as lost zeroes the probability and freezes the aggregate.
func TestApplyCloseLost(t *testing.T) {
	svc := NewTransitionService()
	opp := &models.Opportunity{ID: 9, Stage: models.StageNegotiation, Probability: 80}

	require.NoError(t, svc.Apply(opp, models.StageClosedLost, nil))
	assert.Equal(t, 0, opp.Probability)
	assert.True(t, opp.IsClosed())

	err := svc.Apply(opp, models.StageNegotiation, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "already closed")
}
