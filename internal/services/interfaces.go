package services

import "freshsales/internal/models"

// Storage collaborator contracts. Implementations live in
// internal/repositories (postgres for production, memory for tests). Lookups
// return (nil, nil) when the row does not exist; ids are generated by the
// store at creation time.

type OpportunityStore interface {
	// Create stores a new opportunity together with its initial activities
	// and returns the generated id.
	Create(opp *models.Opportunity) (int64, error)
	GetByID(id int64) (*models.Opportunity, error)
	// Update persists the aggregate's fields and inserts any activities
	// appended since the last load (those with a zero id).
	Update(opp *models.Opportunity) error
	Delete(id int64) error
	List(limit, offset int) ([]*models.Opportunity, error)
	ListByStage(stage models.Stage) ([]*models.Opportunity, error)
	// ListOpen returns all opportunities in non-closed stages.
	ListOpen() ([]*models.Opportunity, error)
}

type LeadStore interface {
	Create(lead *models.Lead) (int64, error)
	GetByID(id int64) (*models.Lead, error)
	Update(lead *models.Lead) error
	List(limit, offset int) ([]*models.Lead, error)
}

type CustomerStore interface {
	Create(customer *models.Customer) (int64, error)
	GetByID(id int64) (*models.Customer, error)
	Update(customer *models.Customer) error
	List(limit, offset int) ([]*models.Customer, error)
}

// ConversionStores exposes the stores participating in one atomic
// won-conversion unit of work.
type ConversionStores interface {
	Opportunities() OpportunityStore
	Leads() LeadStore
	Customers() CustomerStore
}

// ConversionUnit runs fn atomically: either every write made through the
// passed stores is applied, or none is.
type ConversionUnit interface {
	RunInTx(fn func(s ConversionStores) error) error
}

// DealWonNotifier is told about completed won-conversions. Notification
// failures are logged by the caller and never fail the stage change.
type DealWonNotifier interface {
	NotifyDealWon(opp *models.Opportunity, customer *models.Customer) error
}
