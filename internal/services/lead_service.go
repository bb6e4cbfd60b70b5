package services

import (
	"time"

	"freshsales/internal/models"
)

// LeadService is thin CRUD over the lead store. Lead qualification itself is
// out of band; this service mostly feeds the pipeline with sources to convert.
type LeadService struct {
	Store LeadStore
	Now   func() time.Time
}

func NewLeadService(store LeadStore) *LeadService {
	return &LeadService{Store: store, Now: time.Now}
}

func (s *LeadService) Create(lead *models.Lead) error {
	if lead.CompanyName == "" {
		return invalidArgumentf("company_name is required")
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	now := s.Now()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now
	_, err := s.Store.Create(lead)
	return err
}

func (s *LeadService) GetByID(id int64) (*models.Lead, error) {
	lead, err := s.Store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, &NotFoundError{Entity: "lead", ID: id}
	}
	return lead, nil
}

func (s *LeadService) Update(lead *models.Lead) error {
	current, err := s.GetByID(lead.ID)
	if err != nil {
		return err
	}
	// A converted lead is frozen for audit.
	if current.Status == models.LeadStatusConverted {
		return invalidArgumentf("lead %d is converted and can no longer be edited", lead.ID)
	}
	if lead.CompanyName == "" {
		return invalidArgumentf("company_name is required")
	}
	lead.CreatedAt = current.CreatedAt
	lead.UpdatedAt = s.Now()
	return s.Store.Update(lead)
}

func (s *LeadService) List(limit, offset int) ([]*models.Lead, error) {
	return s.Store.List(limit, offset)
}
