package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"freshsales/internal/models"
)

// UpdateOpportunityRequest carries a partial update of business fields. Nil
// means "leave untouched". Probability is deliberately absent: it only changes
// together with a stage transition.
type UpdateOpportunityRequest struct {
	Name              *string    `json:"name,omitempty"`
	Description       *string    `json:"description,omitempty"`
	ExpectedValue     *float64   `json:"expected_value,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
}

// OpportunityService is the public face of the pipeline: CRUD, stage changes,
// the forecast, and the won-conversion hook.
type OpportunityService struct {
	Opps        OpportunityStore
	Leads       LeadStore
	Customers   CustomerStore
	Transitions *TransitionService
	Conversion  *ConversionService
	Notifier    DealWonNotifier
	Now         func() time.Time

	// Stage changes against the same opportunity serialize so that the
	// activity trail and StageChangedAt stay monotonic. Different ids do
	// not contend.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewOpportunityService(
	opps OpportunityStore,
	leads LeadStore,
	customers CustomerStore,
	transitions *TransitionService,
	conversion *ConversionService,
	notifier DealWonNotifier,
) *OpportunityService {
	return &OpportunityService{
		Opps:        opps,
		Leads:       leads,
		Customers:   customers,
		Transitions: transitions,
		Conversion:  conversion,
		Notifier:    notifier,
		Now:         time.Now,
		locks:       make(map[int64]*sync.Mutex),
	}
}

func (s *OpportunityService) lockFor(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Create stores a new opportunity. Exactly one source reference (customer or
// lead) is required and must resolve. The stage always starts at the head of
// the pipeline with that stage's default probability, whatever the caller sent.
func (s *OpportunityService) Create(opp *models.Opportunity) error {
	if opp.Name == "" {
		return invalidArgumentf("name is required")
	}
	if (opp.CustomerID == nil) == (opp.LeadID == nil) {
		return invalidArgumentf("exactly one of customer_id and lead_id is required")
	}
	if opp.CustomerID != nil {
		customer, err := s.Customers.GetByID(*opp.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return &NotFoundError{Entity: "customer", ID: *opp.CustomerID}
		}
	}
	if opp.LeadID != nil {
		lead, err := s.Leads.GetByID(*opp.LeadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return &NotFoundError{Entity: "lead", ID: *opp.LeadID}
		}
	}

	now := s.Now()
	opp.Stage = models.StageInitial
	opp.Probability = models.StageInitial.DefaultProbability()
	opp.CreatedAt = now
	opp.StageChangedAt = now
	opp.Activities = []models.Activity{{
		Type:      models.ActivityTypeNote,
		Title:     "Opportunity created",
		CreatedAt: now,
	}}

	id, err := s.Opps.Create(opp)
	if err != nil {
		return err
	}
	opp.ID = id
	return nil
}

func (s *OpportunityService) GetByID(id int64) (*models.Opportunity, error) {
	opp, err := s.Opps.GetByID(id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, &NotFoundError{Entity: "opportunity", ID: id}
	}
	return opp, nil
}

func (s *OpportunityService) List(limit, offset int) ([]*models.Opportunity, error) {
	return s.Opps.List(limit, offset)
}

func (s *OpportunityService) ListByStage(stage models.Stage) ([]*models.Opportunity, error) {
	if !stage.IsValid() {
		return nil, invalidArgumentf("unknown stage %q", string(stage))
	}
	return s.Opps.ListByStage(stage)
}

// Update changes business fields only. Stage and probability move exclusively
// through ChangeStage.
func (s *OpportunityService) Update(id int64, req *UpdateOpportunityRequest) (*models.Opportunity, error) {
	opp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, invalidArgumentf("name cannot be empty")
		}
		opp.Name = *req.Name
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.ExpectedValue != nil {
		opp.ExpectedValue = req.ExpectedValue
	}
	if req.ExpectedCloseDate != nil {
		opp.ExpectedCloseDate = req.ExpectedCloseDate
	}
	opp.Activities = append(opp.Activities, models.Activity{
		OpportunityID: opp.ID,
		Type:          models.ActivityTypeNote,
		Title:         "Opportunity updated",
		CreatedAt:     s.Now(),
	})
	if err := s.Opps.Update(opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *OpportunityService) Delete(id int64) error {
	opp, err := s.Opps.GetByID(id)
	if err != nil {
		return err
	}
	if opp == nil {
		return &NotFoundError{Entity: "opportunity", ID: id}
	}
	return s.Opps.Delete(id)
}

// ChangeStage moves the opportunity to target, optionally overriding the
// stage's default probability. Landing on the won stage triggers the lead
// conversion right after the transition is persisted; a conversion failure
// comes back as a ConversionError while the stage change itself stands.
func (s *OpportunityService) ChangeStage(id int64, target models.Stage, override *int) (*models.Opportunity, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	opp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Transitions.Apply(opp, target, override); err != nil {
		return nil, err
	}
	if err := s.Opps.Update(opp); err != nil {
		return nil, err
	}
	log.Printf("opportunity %d stage changed to %s (probability %d%%)", id, target, opp.Probability)

	if !target.IsWon() {
		return opp, nil
	}

	customer, err := s.Conversion.HandleWon(id)
	if err != nil {
		return opp, err
	}
	if customer == nil {
		// Customer-sourced deal, nothing converted.
		return opp, nil
	}

	// Conversion re-pointed the aggregate; hand back the fresh state.
	opp, getErr := s.GetByID(id)
	if getErr != nil {
		return nil, getErr
	}

	if s.Notifier != nil {
		if notifyErr := s.Notifier.NotifyDealWon(opp, customer); notifyErr != nil {
			log.Printf("deal-won notification for opportunity %d failed: %v", id, notifyErr)
		}
	}
	return opp, nil
}

// Forecast computes the probability-weighted value of the open pipeline. It
// reads a snapshot and may run alongside writers.
func (s *OpportunityService) Forecast() (float64, error) {
	open, err := s.Opps.ListOpen()
	if err != nil {
		return 0, fmt.Errorf("load open opportunities: %w", err)
	}
	return CalculateForecast(open), nil
}
