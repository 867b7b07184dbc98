package core

import (
	"context"

	"hotelres/internal/record"
	recordcore "hotelres/internal/record/core"
	"hotelres/pkg/domain"
)

// CustomerService owns the customers collection.
type CustomerService struct {
	customers *record.Collection[domain.Customer]
	opts      options
}

// NewCustomerService binds the customers collection of backend.
func NewCustomerService(backend recordcore.Backend, opts ...Option) *CustomerService {
	o := buildOptions(opts)
	return &CustomerService{
		customers: record.NewCollection[domain.Customer](backend, domain.CollectionCustomers, o.logger),
		opts:      o,
	}
}

// CreateCustomer validates and stores a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	var created domain.Customer
	err := s.opts.run(ctx, "customer.create", func(ctx context.Context) error {
		customer.ID = s.opts.assignID(customer.ID)
		if err := domain.ValidateCustomer(customer); err != nil {
			return err
		}
		customers := s.customers.Load(ctx)
		if indexCustomer(customers, customer.ID) >= 0 {
			return domain.Conflict(domain.EntityCustomer, customer.ID, domain.ErrDuplicateID)
		}
		customers = append(customers, customer)
		if err := s.customers.Save(ctx, customers); err != nil {
			return domain.Storage(domain.EntityCustomer, customer.ID, err)
		}
		created = customer
		return nil
	})
	return created, err
}

// GetCustomer returns the customer with id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	var found domain.Customer
	err := s.opts.run(ctx, "customer.get", func(ctx context.Context) error {
		customers := s.customers.Load(ctx)
		idx := indexCustomer(customers, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityCustomer, id)
		}
		found = customers[idx]
		return nil
	})
	return found, err
}

// ListCustomers returns every stored customer in collection order.
func (s *CustomerService) ListCustomers(ctx context.Context) []domain.Customer {
	var customers []domain.Customer
	_ = s.opts.run(ctx, "customer.list", func(ctx context.Context) error {
		customers = s.customers.Load(ctx)
		return nil
	})
	return customers
}

// UpdateCustomer applies the non-nil fields of update, all or none.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, update domain.CustomerUpdate) (domain.Customer, error) {
	var updated domain.Customer
	err := s.opts.run(ctx, "customer.update", func(ctx context.Context) error {
		customers := s.customers.Load(ctx)
		idx := indexCustomer(customers, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityCustomer, id)
		}
		if err := update.Validate(id); err != nil {
			return err
		}
		c := &customers[idx]
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.Email != nil {
			c.Email = *update.Email
		}
		if err := s.customers.Save(ctx, customers); err != nil {
			return domain.Storage(domain.EntityCustomer, id, err)
		}
		updated = *c
		return nil
	})
	return updated, err
}

// DeleteCustomer removes the customer. Reservations referencing it are kept.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.opts.run(ctx, "customer.delete", func(ctx context.Context) error {
		customers := s.customers.Load(ctx)
		idx := indexCustomer(customers, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityCustomer, id)
		}
		customers = append(customers[:idx], customers[idx+1:]...)
		if err := s.customers.Save(ctx, customers); err != nil {
			return domain.Storage(domain.EntityCustomer, id, err)
		}
		return nil
	})
}

func indexCustomer(customers []domain.Customer, id string) int {
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}
	return -1
}
