package models

import "time"

// Customer statuses. A customer converted from a won deal starts as "prospect";
// activation requires a first fulfilled order and happens outside this service.
const (
	CustomerStatusProspect = "prospect"
	CustomerStatusActive   = "active"
)

// Customer is a counterparty with a won deal behind it. OriginalLeadID keeps
// the lead → customer trace after conversion.
type Customer struct {
	ID              int64    `json:"id"`
	CompanyName     string   `json:"company_name"`
	Status          string   `json:"status"`
	OriginalLeadID  *int64   `json:"original_lead_id,omitempty"`
	BusinessType    *string  `json:"business_type,omitempty"`
	KitchenSize     *string  `json:"kitchen_size,omitempty"`
	EmployeeCount   *int     `json:"employee_count,omitempty"`
	BranchCount     *int     `json:"branch_count,omitempty"`
	IsChain         *bool    `json:"is_chain,omitempty"`
	EstimatedVolume *float64 `json:"estimated_volume,omitempty"`

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
}
