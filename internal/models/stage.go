package models

import "fmt"

// Stage is one step of the sales pipeline. The set is fixed; stages are not
// user-configurable.
type Stage string

const (
	StageNewLead       Stage = "NEW_LEAD"
	StageQualification Stage = "QUALIFICATION"
	StageNeedsAnalysis Stage = "NEEDS_ANALYSIS"
	StageProposal      Stage = "PROPOSAL"
	StageNegotiation   Stage = "NEGOTIATION"
	StageRenewal       Stage = "RENEWAL"
	StageClosedWon     Stage = "CLOSED_WON"
	StageClosedLost    Stage = "CLOSED_LOST"
)

// StageDefinition carries the static metadata attached to a stage.
type StageDefinition struct {
	Stage              Stage
	DisplayName        string
	DefaultProbability int
	Closed             bool
	Won                bool
}

// stageDefinitions is the single source of truth for stage metadata.
var stageDefinitions = map[Stage]StageDefinition{
	StageNewLead:       {Stage: StageNewLead, DisplayName: "New Lead", DefaultProbability: 10},
	StageQualification: {Stage: StageQualification, DisplayName: "Qualification", DefaultProbability: 25},
	StageNeedsAnalysis: {Stage: StageNeedsAnalysis, DisplayName: "Needs Analysis", DefaultProbability: 40},
	StageProposal:      {Stage: StageProposal, DisplayName: "Proposal", DefaultProbability: 60},
	StageNegotiation:   {Stage: StageNegotiation, DisplayName: "Negotiation", DefaultProbability: 80},
	StageRenewal:       {Stage: StageRenewal, DisplayName: "Renewal", DefaultProbability: 75},
	StageClosedWon:     {Stage: StageClosedWon, DisplayName: "Closed Won", DefaultProbability: 100, Closed: true, Won: true},
	StageClosedLost:    {Stage: StageClosedLost, DisplayName: "Closed Lost", DefaultProbability: 0, Closed: true},
}

// AllStages in pipeline order. StageInitial is where every new opportunity starts.
var AllStages = []Stage{
	StageNewLead,
	StageQualification,
	StageNeedsAnalysis,
	StageProposal,
	StageNegotiation,
	StageRenewal,
	StageClosedWon,
	StageClosedLost,
}

const StageInitial = StageNewLead

func (s Stage) IsValid() bool {
	_, ok := stageDefinitions[s]
	return ok
}

func (s Stage) IsClosed() bool {
	return stageDefinitions[s].Closed
}

func (s Stage) IsWon() bool {
	return stageDefinitions[s].Won
}

func (s Stage) DefaultProbability() int {
	return stageDefinitions[s].DefaultProbability
}

func (s Stage) DisplayName() string {
	if def, ok := stageDefinitions[s]; ok {
		return def.DisplayName
	}
	return string(s)
}

// ParseStage validates a wire value against the closed enum.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown stage %q", raw)
	}
	return s, nil
}
