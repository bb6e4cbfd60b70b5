package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"freshsales/internal/services"
)

// ConversionTx runs the won-conversion unit of work in one database
// transaction, so the customer insert, the opportunity re-point and the lead
// status flip commit or roll back together.
type ConversionTx struct {
	db *sql.DB
}

func NewConversionTx(db *sql.DB) *ConversionTx {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ConversionTx{db: db}
}

type txStores struct {
	opps      *OpportunityRepository
	leads     *LeadRepository
	customers *CustomerRepository
}

func (s *txStores) Opportunities() services.OpportunityStore { return s.opps }
func (s *txStores) Leads() services.LeadStore                { return s.leads }
func (s *txStores) Customers() services.CustomerStore        { return s.customers }

func (t *ConversionTx) RunInTx(fn func(s services.ConversionStores) error) error {
	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("begin conversion tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stores := &txStores{
		opps:      newOpportunityRepositoryTx(tx),
		leads:     newLeadRepositoryTx(tx),
		customers: newCustomerRepositoryTx(tx),
	}
	if err := fn(stores); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit conversion tx: %w", err)
	}
	return nil
}
