package services

import (
	"errors"
	"fmt"
	"time"

	"freshsales/internal/models"
)

// ConversionService materializes a customer from the lead behind a won
// opportunity. The whole sequence (create customer, re-point opportunity, mark
// lead converted) runs in a single unit of work.
type ConversionService struct {
	Tx  ConversionUnit
	Now func() time.Time
}

func NewConversionService(tx ConversionUnit) *ConversionService {
	return &ConversionService{Tx: tx, Now: time.Now}
}

// HandleWon converts the lead behind opportunity id into a customer and
// returns it. Customer-sourced opportunities (no lead) return (nil, nil):
// there is nothing to convert and nothing is changed. Any failure inside the
// sequence rolls back all of it and surfaces as a ConversionError.
func (s *ConversionService) HandleWon(opportunityID int64) (*models.Customer, error) {
	var created *models.Customer

	err := s.Tx.RunInTx(func(st ConversionStores) error {
		opp, err := st.Opportunities().GetByID(opportunityID)
		if err != nil {
			return err
		}
		if opp == nil {
			return &NotFoundError{Entity: "opportunity", ID: opportunityID}
		}
		if opp.LeadID == nil {
			// Upsell/cross-sell/renewal on an existing customer.
			return nil
		}

		lead, err := st.Leads().GetByID(*opp.LeadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return &NotFoundError{Entity: "lead", ID: *opp.LeadID}
		}

		now := s.Now()
		customer := customerFromLead(lead, now)
		customerID, err := st.Customers().Create(customer)
		if err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		customer.ID = customerID

		opp.CustomerID = &customerID
		opp.LeadID = nil
		opp.Activities = append(opp.Activities, models.Activity{
			OpportunityID: opp.ID,
			Type:          models.ActivityTypeNote,
			Title:         fmt.Sprintf("Converted to customer %q (id=%d)", customer.CompanyName, customerID),
			CreatedAt:     now,
		})
		if err := st.Opportunities().Update(opp); err != nil {
			return fmt.Errorf("re-point opportunity: %w", err)
		}

		lead.Status = models.LeadStatusConverted
		lead.UpdatedAt = now
		if err := st.Leads().Update(lead); err != nil {
			return fmt.Errorf("mark lead converted: %w", err)
		}

		created = customer
		return nil
	})
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) && notFound.Entity == "opportunity" {
			return nil, err
		}
		return nil, &ConversionError{OpportunityID: opportunityID, Err: err}
	}
	return created, nil
}

// customerFromLead copies the qualification attributes verbatim. Attributes
// absent on the lead stay absent on the customer. The new customer is a
// prospect: activation waits for a first fulfilled order elsewhere.
func customerFromLead(lead *models.Lead, now time.Time) *models.Customer {
	leadID := lead.ID
	return &models.Customer{
		CompanyName:     lead.CompanyName,
		Status:          models.CustomerStatusProspect,
		OriginalLeadID:  &leadID,
		BusinessType:    clonePtr(lead.BusinessType),
		KitchenSize:     clonePtr(lead.KitchenSize),
		EmployeeCount:   clonePtr(lead.EmployeeCount),
		BranchCount:     clonePtr(lead.BranchCount),
		IsChain:         clonePtr(lead.IsChain),
		EstimatedVolume: clonePtr(lead.EstimatedVolume),

		PainStaffShortage:        clonePtr(lead.PainStaffShortage),
		PainHighCosts:            clonePtr(lead.PainHighCosts),
		PainFoodWaste:            clonePtr(lead.PainFoodWaste),
		PainQualityInconsistency: clonePtr(lead.PainQualityInconsistency),
		PainTimePressure:         clonePtr(lead.PainTimePressure),
		PainSupplierQuality:      clonePtr(lead.PainSupplierQuality),
		PainUnreliableDelivery:   clonePtr(lead.PainUnreliableDelivery),
		PainPoorService:          clonePtr(lead.PainPoorService),
		PainNotes:                clonePtr(lead.PainNotes),

		CreatedAt: now,
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
