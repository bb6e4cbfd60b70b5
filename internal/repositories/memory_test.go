package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"freshsales/internal/models"
	"freshsales/internal/services"
)

type MemorySuite struct {
	suite.Suite
	mem *Memory
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) SetupTest() {
	s.mem = NewMemory()
}

func (s *MemorySuite) newOpportunity(name string, stage models.Stage) *models.Opportunity {
	return &models.Opportunity{
		Name:           name,
		Stage:          stage,
		Probability:    stage.DefaultProbability(),
		StageChangedAt: time.Now(),
		CreatedAt:      time.Now(),
	}
}

func (s *MemorySuite) TestOpportunityCRUD() {
	store := s.mem.Opportunities()

	opp := s.newOpportunity("First deal", models.StageNewLead)
	opp.Activities = []models.Activity{{Type: models.ActivityTypeNote, Title: "Opportunity created"}}

	id, err := store.Create(opp)
	s.Require().NoError(err)
	s.Equal(int64(1), id)
	s.NotZero(opp.Activities[0].ID, "initial activity gets an id")

	s.Run("get returns a copy", func() {
		got, err := store.GetByID(id)
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal("First deal", got.Name)

		got.Name = "mutated"
		again, err := store.GetByID(id)
		s.Require().NoError(err)
		s.Equal("First deal", again.Name)
	})

	s.Run("missing row is nil, not an error", func() {
		got, err := store.GetByID(777)
		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("update assigns ids to new activities only", func() {
		got, err := store.GetByID(id)
		s.Require().NoError(err)
		firstActivityID := got.Activities[0].ID

		got.Activities = append(got.Activities, models.Activity{Type: models.ActivityTypeStageChanged, Title: "New Lead → Proposal"})
		s.Require().NoError(store.Update(got))

		stored, err := store.GetByID(id)
		s.Require().NoError(err)
		s.Require().Len(stored.Activities, 2)
		s.Equal(firstActivityID, stored.Activities[0].ID)
		s.Greater(stored.Activities[1].ID, firstActivityID)
		s.Equal(id, stored.Activities[1].OpportunityID)
	})

	s.Run("delete removes the row", func() {
		s.Require().NoError(store.Delete(id))
		got, err := store.GetByID(id)
		s.Require().NoError(err)
		s.Nil(got)
	})
}

func (s *MemorySuite) TestOpportunityLists() {
	store := s.mem.Opportunities()

	stages := []models.Stage{
		models.StageNewLead,
		models.StageProposal,
		models.StageClosedWon,
		models.StageClosedLost,
		models.StageProposal,
	}
	for i, stage := range stages {
		_, err := store.Create(s.newOpportunity(string(rune('A'+i)), stage))
		s.Require().NoError(err)
	}

	s.Run("list is newest first with paging", func() {
		all, err := store.List(0, 0)
		s.Require().NoError(err)
		s.Require().Len(all, 5)
		s.Equal(int64(5), all[0].ID)

		page, err := store.List(2, 1)
		s.Require().NoError(err)
		s.Require().Len(page, 2)
		s.Equal(int64(4), page[0].ID)
		s.Equal(int64(3), page[1].ID)

		empty, err := store.List(10, 99)
		s.Require().NoError(err)
		s.Empty(empty)
	})

	s.Run("list by stage", func() {
		proposals, err := store.ListByStage(models.StageProposal)
		s.Require().NoError(err)
		s.Len(proposals, 2)
	})

	s.Run("list open excludes closed stages", func() {
		open, err := store.ListOpen()
		s.Require().NoError(err)
		s.Require().Len(open, 3)
		for _, o := range open {
			s.False(o.Stage.IsClosed())
		}
	})
}

func (s *MemorySuite) TestLeadAndCustomerStores() {
	leadID, err := s.mem.Leads().Create(&models.Lead{CompanyName: "Kantine West", Status: models.LeadStatusNew})
	s.Require().NoError(err)

	lead, err := s.mem.Leads().GetByID(leadID)
	s.Require().NoError(err)
	s.Require().NotNil(lead)

	lead.Status = models.LeadStatusQualified
	s.Require().NoError(s.mem.Leads().Update(lead))
	stored, err := s.mem.Leads().GetByID(leadID)
	s.Require().NoError(err)
	s.Equal(models.LeadStatusQualified, stored.Status)

	customerID, err := s.mem.Customers().Create(&models.Customer{CompanyName: "Kantine West", Status: models.CustomerStatusProspect})
	s.Require().NoError(err)
	customer, err := s.mem.Customers().GetByID(customerID)
	s.Require().NoError(err)
	s.Require().NotNil(customer)
	s.Equal(models.CustomerStatusProspect, customer.Status)

	missing, err := s.mem.Customers().GetByID(42)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *MemorySuite) TestRunInTxCommit() {
	err := s.mem.RunInTx(func(st services.ConversionStores) error {
		if _, err := st.Leads().Create(&models.Lead{CompanyName: "Committed"}); err != nil {
			return err
		}
		_, err := st.Customers().Create(&models.Customer{CompanyName: "Committed"})
		return err
	})
	s.Require().NoError(err)

	leads, err := s.mem.Leads().List(0, 0)
	s.Require().NoError(err)
	s.Len(leads, 1)
	customers, err := s.mem.Customers().List(0, 0)
	s.Require().NoError(err)
	s.Len(customers, 1)
}

func (s *MemorySuite) TestRunInTxRollback() {
	leadID, err := s.mem.Leads().Create(&models.Lead{CompanyName: "Before", Status: models.LeadStatusNew})
	s.Require().NoError(err)

	boom := errors.New("boom")
	err = s.mem.RunInTx(func(st services.ConversionStores) error {
		lead, err := st.Leads().GetByID(leadID)
		if err != nil {
			return err
		}
		lead.Status = models.LeadStatusConverted
		if err := st.Leads().Update(lead); err != nil {
			return err
		}
		if _, err := st.Customers().Create(&models.Customer{CompanyName: "Doomed"}); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	lead, err := s.mem.Leads().GetByID(leadID)
	s.Require().NoError(err)
	s.Equal(models.LeadStatusNew, lead.Status, "update rolled back")

	customers, err := s.mem.Customers().List(0, 0)
	s.Require().NoError(err)
	s.Empty(customers, "insert rolled back")

	// id counters are restored too, so a later insert reuses the id
	customerID, err := s.mem.Customers().Create(&models.Customer{CompanyName: "After"})
	s.Require().NoError(err)
	s.Equal(int64(1), customerID)
}
