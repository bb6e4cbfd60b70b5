package repositories

import (
	"sort"
	"sync"

	"freshsales/internal/models"
	"freshsales/internal/services"
)

// Memory is an in-memory implementation of the storage collaborator. Tests
// and local development run against it; production wiring uses the postgres
// repositories. All stores hand out deep copies, never internal pointers.
type Memory struct {
	mu sync.RWMutex

	opps      map[int64]*models.Opportunity
	leads     map[int64]*models.Lead
	customers map[int64]*models.Customer

	nextOppID      int64
	nextLeadID     int64
	nextCustomerID int64
	nextActivityID int64

	// txMu serializes conversion units of work.
	txMu sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{
		opps:      make(map[int64]*models.Opportunity),
		leads:     make(map[int64]*models.Lead),
		customers: make(map[int64]*models.Customer),
	}
}

func (m *Memory) Opportunities() services.OpportunityStore { return &memOpportunityStore{m} }
func (m *Memory) Leads() services.LeadStore                { return &memLeadStore{m} }
func (m *Memory) Customers() services.CustomerStore        { return &memCustomerStore{m} }

// RunInTx snapshots all three stores, runs fn, and restores the snapshot when
// fn fails. Conversions are serialized by txMu, so the snapshot cannot
// clobber a concurrent conversion.
func (m *Memory) RunInTx(fn func(s services.ConversionStores) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapOpps := make(map[int64]*models.Opportunity, len(m.opps))
	for id, o := range m.opps {
		snapOpps[id] = o.Clone()
	}
	snapLeads := make(map[int64]*models.Lead, len(m.leads))
	for id, l := range m.leads {
		snapLeads[id] = l.Clone()
	}
	snapCustomers := make(map[int64]*models.Customer, len(m.customers))
	for id, c := range m.customers {
		snapCustomers[id] = c.Clone()
	}
	snapIDs := [4]int64{m.nextOppID, m.nextLeadID, m.nextCustomerID, m.nextActivityID}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.opps = snapOpps
		m.leads = snapLeads
		m.customers = snapCustomers
		m.nextOppID, m.nextLeadID, m.nextCustomerID, m.nextActivityID =
			snapIDs[0], snapIDs[1], snapIDs[2], snapIDs[3]
		m.mu.Unlock()
		return err
	}
	return nil
}

// ---- opportunities ----

type memOpportunityStore struct{ m *Memory }

func (s *memOpportunityStore) Create(opp *models.Opportunity) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.nextOppID++
	opp.ID = s.m.nextOppID
	for i := range opp.Activities {
		s.m.nextActivityID++
		opp.Activities[i].ID = s.m.nextActivityID
		opp.Activities[i].OpportunityID = opp.ID
	}
	s.m.opps[opp.ID] = opp.Clone()
	return opp.ID, nil
}

func (s *memOpportunityStore) GetByID(id int64) (*models.Opportunity, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.m.opps[id].Clone(), nil
}

func (s *memOpportunityStore) Update(opp *models.Opportunity) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for i := range opp.Activities {
		if opp.Activities[i].ID == 0 {
			s.m.nextActivityID++
			opp.Activities[i].ID = s.m.nextActivityID
			opp.Activities[i].OpportunityID = opp.ID
		}
	}
	s.m.opps[opp.ID] = opp.Clone()
	return nil
}

func (s *memOpportunityStore) Delete(id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.opps, id)
	return nil
}

func (s *memOpportunityStore) List(limit, offset int) ([]*models.Opportunity, error) {
	return s.list(func(*models.Opportunity) bool { return true }, limit, offset), nil
}

func (s *memOpportunityStore) ListByStage(stage models.Stage) ([]*models.Opportunity, error) {
	return s.list(func(o *models.Opportunity) bool { return o.Stage == stage }, 0, 0), nil
}

func (s *memOpportunityStore) ListOpen() ([]*models.Opportunity, error) {
	return s.list(func(o *models.Opportunity) bool { return !o.Stage.IsClosed() }, 0, 0), nil
}

// list returns matches newest first; limit 0 means no limit.
func (s *memOpportunityStore) list(match func(*models.Opportunity) bool, limit, offset int) []*models.Opportunity {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []*models.Opportunity
	for _, o := range s.m.opps {
		if match(o) {
			out = append(out, o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset > 0 {
		if offset >= len(out) {
			return nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ---- leads ----

type memLeadStore struct{ m *Memory }

func (s *memLeadStore) Create(lead *models.Lead) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.nextLeadID++
	lead.ID = s.m.nextLeadID
	s.m.leads[lead.ID] = lead.Clone()
	return lead.ID, nil
}

func (s *memLeadStore) GetByID(id int64) (*models.Lead, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.m.leads[id].Clone(), nil
}

func (s *memLeadStore) Update(lead *models.Lead) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.leads[lead.ID] = lead.Clone()
	return nil
}

func (s *memLeadStore) List(limit, offset int) ([]*models.Lead, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []*models.Lead
	for _, l := range s.m.leads {
		out = append(out, l.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- customers ----

type memCustomerStore struct{ m *Memory }

func (s *memCustomerStore) Create(customer *models.Customer) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.nextCustomerID++
	customer.ID = s.m.nextCustomerID
	s.m.customers[customer.ID] = customer.Clone()
	return customer.ID, nil
}

func (s *memCustomerStore) GetByID(id int64) (*models.Customer, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.m.customers[id].Clone(), nil
}

func (s *memCustomerStore) Update(customer *models.Customer) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.customers[customer.ID] = customer.Clone()
	return nil
}

func (s *memCustomerStore) List(limit, offset int) ([]*models.Customer, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []*models.Customer
	for _, c := range s.m.customers {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
