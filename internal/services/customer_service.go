package services

import "freshsales/internal/models"

// CustomerService reads customers for the API. Customers are created by the
// won-conversion or by upstream systems; this service never invents them.
type CustomerService struct {
	Store CustomerStore
}

func NewCustomerService(store CustomerStore) *CustomerService {
	return &CustomerService{Store: store}
}

func (s *CustomerService) GetByID(id int64) (*models.Customer, error) {
	customer, err := s.Store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &NotFoundError{Entity: "customer", ID: id}
	}
	return customer, nil
}

func (s *CustomerService) List(limit, offset int) ([]*models.Customer, error) {
	return s.Store.List(limit, offset)
}
