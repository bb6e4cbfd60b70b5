package models

import "time"

// Lead statuses. "converted" is terminal: the record is kept for audit but the
// business relationship continues on the customer created from it.
const (
	LeadStatusNew       = "new"
	LeadStatusQualified = "qualified"
	LeadStatusActive    = "active"
	LeadStatusConverted = "converted"
)

// Lead is an unconverted prospect. The qualification attributes (business type,
// size, volume, pain points) are copied onto the customer when the linked
// opportunity is won.
type Lead struct {
	ID            int64   `json:"id"`
	CompanyName   string  `json:"company_name"`
	ContactName   string  `json:"contact_name,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Status        string  `json:"status"`
	BusinessType  *string `json:"business_type,omitempty"`
	KitchenSize   *string `json:"kitchen_size,omitempty"`
	EmployeeCount *int    `json:"employee_count,omitempty"`
	BranchCount   *int    `json:"branch_count,omitempty"`
	IsChain       *bool   `json:"is_chain,omitempty"`
	// EstimatedVolume is the expected annual volume in EUR.
	EstimatedVolume *float64 `json:"estimated_volume,omitempty"`

	// Pain-point flags captured during qualification.
	PainStaffShortage        *bool   `json:"pain_staff_shortage,omitempty"`
	PainHighCosts            *bool   `json:"pain_high_costs,omitempty"`
	PainFoodWaste            *bool   `json:"pain_food_waste,omitempty"`
	PainQualityInconsistency *bool   `json:"pain_quality_inconsistency,omitempty"`
	PainTimePressure         *bool   `json:"pain_time_pressure,omitempty"`
	PainSupplierQuality      *bool   `json:"pain_supplier_quality,omitempty"`
	PainUnreliableDelivery   *bool   `json:"pain_unreliable_delivery,omitempty"`
	PainPoorService          *bool   `json:"pain_poor_service,omitempty"`
	PainNotes                *string `json:"pain_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
