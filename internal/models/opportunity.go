package models

import (
	"time"
)

// Activity types appended to an opportunity's audit trail.
const (
	ActivityTypeNote         = "note"
	ActivityTypeStageChanged = "stage_changed"
)

// Activity is one immutable audit record. Activities belong to exactly one
// opportunity and are never updated or deleted.
type Activity struct {
	ID            int64     `json:"id"`
	OpportunityID int64     `json:"opportunity_id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
}

// Opportunity is a deal moving through the pipeline. Exactly one of CustomerID
// and LeadID is set: lead-sourced opportunities carry LeadID until they are won
// and converted, customer-sourced ones (upsell/cross-sell/renewal) carry
// CustomerID from the start.
type Opportunity struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Stage             Stage      `json:"stage"`
	Probability       int        `json:"probability"`
	ExpectedValue     *float64   `json:"expected_value,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	StageChangedAt    time.Time  `json:"stage_changed_at"`
	CustomerID        *int64     `json:"customer_id,omitempty"`
	LeadID            *int64     `json:"lead_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	Activities        []Activity `json:"activities,omitempty"`
}

// IsClosed reports whether the opportunity sits in a terminal stage.
func (o *Opportunity) IsClosed() bool {
	return o.Stage.IsClosed()
}
