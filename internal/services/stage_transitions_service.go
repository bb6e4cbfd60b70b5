package services

import "freshsales/internal/models"

// Allowed stage transitions. The pipeline is not strictly sequential: reps may
// jump forward or backward between any open stages, drop to CLOSED_LOST at any
// point, or close a deal as won from any open stage. A stage may transition to
// itself (the audit trail still records it). Nothing leaves a closed stage.
// NB: reopening a lost deal is deliberately not in the table; if that policy
// ever changes, CLOSED_LOST gets a target set here.
var stageTransitions = buildStageTransitions()

func buildStageTransitions() map[models.Stage]map[models.Stage]bool {
	table := make(map[models.Stage]map[models.Stage]bool, len(models.AllStages))
	for _, from := range models.AllStages {
		targets := map[models.Stage]bool{}
		if !from.IsClosed() {
			for _, to := range models.AllStages {
				targets[to] = true
			}
		}
		table[from] = targets
	}
	return table
}

// CanTransition reports whether from → to is a legal stage change.
func CanTransition(from, to models.Stage) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return stageTransitions[from][to]
}
