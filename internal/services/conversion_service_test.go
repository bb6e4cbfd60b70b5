package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"freshsales/internal/models"
	"freshsales/internal/repositories"
	"freshsales/internal/services"
)

type ConversionServiceSuite struct {
	suite.Suite
	mem *repositories.Memory
	svc *services.ConversionService
	now time.Time
}

func TestConversionServiceSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceSuite))
}

func (s *ConversionServiceSuite) SetupTest() {
	s.mem = repositories.NewMemory()
	s.now = time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	s.svc = services.NewConversionService(s.mem)
	s.svc.Now = func() time.Time { return s.now }
}

func (s *ConversionServiceSuite) seedLead() *models.Lead {
	businessType := "restaurant"
	employeeCount := 35
	isChain := true
	volume := 250000.0
	staffShortage := true
	notes := "struggles to keep kitchen staffed on weekends"
	lead := &models.Lead{
		CompanyName:       "Gasthaus Sonne",
		ContactName:       "M. Keller",
		Email:             "keller@sonne.example",
		Status:            models.LeadStatusQualified,
		BusinessType:      &businessType,
		EmployeeCount:     &employeeCount,
		IsChain:           &isChain,
		EstimatedVolume:   &volume,
		PainStaffShortage: &staffShortage,
		PainNotes:         &notes,
		CreatedAt:         s.now.Add(-72 * time.Hour),
		UpdatedAt:         s.now.Add(-72 * time.Hour),
	}
	id, err := s.mem.Leads().Create(lead)
	s.Require().NoError(err)
	lead.ID = id
	return lead
}

func (s *ConversionServiceSuite) seedWonOpportunity(leadID *int64, customerID *int64) *models.Opportunity {
	value := 120000.0
	opp := &models.Opportunity{
		Name:           "Annual supply contract",
		Stage:          models.StageClosedWon,
		Probability:    100,
		ExpectedValue:  &value,
		StageChangedAt: s.now,
		LeadID:         leadID,
		CustomerID:     customerID,
		CreatedAt:      s.now.Add(-48 * time.Hour),
	}
	id, err := s.mem.Opportunities().Create(opp)
	s.Require().NoError(err)
	opp.ID = id
	return opp
}

func (s *ConversionServiceSuite) TestConvertsLeadToCustomer() {
	lead := s.seedLead()
	opp := s.seedWonOpportunity(&lead.ID, nil)

	customer, err := s.svc.HandleWon(opp.ID)
	s.Require().NoError(err)
	s.Require().NotNil(customer)

	s.Run("customer carries the lead's attributes", func() {
		s.Equal("Gasthaus Sonne", customer.CompanyName)
		s.Equal(models.CustomerStatusProspect, customer.Status)
		s.Require().NotNil(customer.OriginalLeadID)
		s.Equal(lead.ID, *customer.OriginalLeadID)
		s.Require().NotNil(customer.BusinessType)
		s.Equal("restaurant", *customer.BusinessType)
		s.Require().NotNil(customer.EmployeeCount)
		s.Equal(35, *customer.EmployeeCount)
		s.Require().NotNil(customer.EstimatedVolume)
		s.Equal(250000.0, *customer.EstimatedVolume)
		s.Require().NotNil(customer.PainStaffShortage)
		s.True(*customer.PainStaffShortage)
		s.Require().NotNil(customer.PainNotes)
		s.Nil(customer.KitchenSize, "attributes absent on the lead stay absent")
		s.Equal(s.now, customer.CreatedAt)
	})

	s.Run("opportunity is re-pointed to the customer", func() {
		stored, err := s.mem.Opportunities().GetByID(opp.ID)
		s.Require().NoError(err)
		s.Require().NotNil(stored.CustomerID)
		s.Equal(customer.ID, *stored.CustomerID)
		s.Nil(stored.LeadID)

		s.Require().NotEmpty(stored.Activities)
		last := stored.Activities[len(stored.Activities)-1]
		s.Equal(models.ActivityTypeNote, last.Type)
		s.Contains(last.Title, "Converted to customer")
	})

	s.Run("lead is marked converted", func() {
		stored, err := s.mem.Leads().GetByID(lead.ID)
		s.Require().NoError(err)
		s.Equal(models.LeadStatusConverted, stored.Status)
		s.Equal(s.now, stored.UpdatedAt)
	})

	s.Run("customer is persisted", func() {
		stored, err := s.mem.Customers().GetByID(customer.ID)
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.Equal(customer.CompanyName, stored.CompanyName)
	})
}

func (s *ConversionServiceSuite) TestCustomerSourcedDealIsNoop() {
	existing := &models.Customer{CompanyName: "Hotel Adler", Status: models.CustomerStatusActive, CreatedAt: s.now}
	customerID, err := s.mem.Customers().Create(existing)
	s.Require().NoError(err)

	opp := s.seedWonOpportunity(nil, &customerID)

	customer, err := s.svc.HandleWon(opp.ID)
	s.Require().NoError(err)
	s.Nil(customer)

	customers, err := s.mem.Customers().List(0, 0)
	s.Require().NoError(err)
	s.Len(customers, 1, "no second customer record")
}

func (s *ConversionServiceSuite) TestUnknownOpportunity() {
	_, err := s.svc.HandleWon(404)
	s.Require().ErrorIs(err, services.ErrNotFound)
	s.NotErrorIs(err, services.ErrConversionFailed)
}

func (s *ConversionServiceSuite) TestMissingLeadIsConversionFailure() {
	missing := int64(99)
	opp := s.seedWonOpportunity(&missing, nil)

	_, err := s.svc.HandleWon(opp.ID)
	s.Require().ErrorIs(err, services.ErrConversionFailed)

	var convErr *services.ConversionError
	s.Require().ErrorAs(err, &convErr)
	s.Equal(opp.ID, convErr.OpportunityID)
}

// failingCustomerStore rejects every insert; the wrapping ConversionStores
// passes everything else through to the real memory stores.
type failingCustomerStore struct {
	services.CustomerStore
}

func (failingCustomerStore) Create(*models.Customer) (int64, error) {
	return 0, errors.New("customers relation unavailable")
}

type failingStores struct {
	services.ConversionStores
}

func (f failingStores) Customers() services.CustomerStore {
	return failingCustomerStore{f.ConversionStores.Customers()}
}

type failingUnit struct {
	mem *repositories.Memory
}

func (u failingUnit) RunInTx(fn func(services.ConversionStores) error) error {
	return u.mem.RunInTx(func(st services.ConversionStores) error {
		return fn(failingStores{st})
	})
}

func (s *ConversionServiceSuite) TestFailureRollsBackEverything() {
	lead := s.seedLead()
	opp := s.seedWonOpportunity(&lead.ID, nil)
	activitiesBefore := len(opp.Activities)

	s.svc.Tx = failingUnit{mem: s.mem}

	customer, err := s.svc.HandleWon(opp.ID)
	s.Require().ErrorIs(err, services.ErrConversionFailed)
	s.Nil(customer)

	storedLead, err := s.mem.Leads().GetByID(lead.ID)
	s.Require().NoError(err)
	s.Equal(models.LeadStatusQualified, storedLead.Status, "lead must keep its status")

	storedOpp, err := s.mem.Opportunities().GetByID(opp.ID)
	s.Require().NoError(err)
	s.Require().NotNil(storedOpp.LeadID)
	s.Equal(lead.ID, *storedOpp.LeadID)
	s.Nil(storedOpp.CustomerID)
	s.Len(storedOpp.Activities, activitiesBefore, "no conversion activity after rollback")

	customers, err := s.mem.Customers().List(0, 0)
	s.Require().NoError(err)
	s.Empty(customers)
}
