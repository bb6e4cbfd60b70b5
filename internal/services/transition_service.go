package services

import (
	"fmt"
	"time"

	"freshsales/internal/models"
)

// TransitionService applies stage changes to an opportunity aggregate. It is
// pure pipeline logic: no storage, no knowledge of leads or customers. The
// caller persists the mutated aggregate and reacts to won closes.
type TransitionService struct {
	// Now is the single time source for StageChangedAt and activity
	// timestamps; tests swap it for a fixed clock.
	Now func() time.Time
}

func NewTransitionService() *TransitionService {
	return &TransitionService{Now: time.Now}
}

// Apply validates and performs the transition to target, resetting probability
// to the target stage's default unless override (0-100) is given. Every
// accepted call, including a same-stage one, refreshes StageChangedAt and
// appends exactly one stage-change activity.
func (s *TransitionService) Apply(opp *models.Opportunity, target models.Stage, override *int) error {
	if !target.IsValid() {
		return invalidArgumentf("unknown stage %q", string(target))
	}
	if override != nil && (*override < 0 || *override > 100) {
		return invalidArgumentf("probability must be between 0 and 100, got %d", *override)
	}
	if opp.Stage.IsClosed() {
		return &InvalidTransitionError{OpportunityID: opp.ID, From: opp.Stage, To: target}
	}
	if !CanTransition(opp.Stage, target) {
		return &InvalidTransitionError{OpportunityID: opp.ID, From: opp.Stage, To: target}
	}

	now := s.Now()
	previous := opp.Stage
	opp.Stage = target
	if override != nil {
		opp.Probability = *override
	} else {
		opp.Probability = target.DefaultProbability()
	}
	opp.StageChangedAt = now
	opp.Activities = append(opp.Activities, models.Activity{
		OpportunityID: opp.ID,
		Type:          models.ActivityTypeStageChanged,
		Title:         fmt.Sprintf("%s → %s", previous.DisplayName(), target.DisplayName()),
		CreatedAt:     now,
	})
	return nil
}
