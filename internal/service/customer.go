package service

import (
	"context"
	"log/slog"

	"github.com/bookzapp/bookz-server/internal/domain"
	"github.com/bookzapp/bookz-server/internal/store"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// CreateCustomerRequest registers a new borrower. The phone may arrive
// in any loose format; it is canonicalised before storage.
type CreateCustomerRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=40"`
	LastName   string `json:"last_name" validate:"required,max=40"`
	MiddleName string `json:"middle_name,omitempty" validate:"max=40"`
	Email      string `json:"email" validate:"required,email,max=100"`
	Phone      string `json:"phone" validate:"required,phone"`
}

// CustomerName carries the unique full-name triple of a customer.
type CustomerName struct {
	FirstName  string `json:"first_name" validate:"required,max=40"`
	LastName   string `json:"last_name" validate:"required,max=40"`
	MiddleName string `json:"middle_name,omitempty" validate:"max=40"`
}

func (n CustomerName) fullName() domain.FullName {
	return domain.FullName{
		FirstName:  n.FirstName,
		LastName:   n.LastName,
		MiddleName: n.MiddleName,
	}
}

type changePhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type changeEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

// CustomerService manages borrower records. Format validation fails
// fast, before any transaction is opened.
type CustomerService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store store.Store, logger *slog.Logger, validator *validation.Validator) *CustomerService {
	return &CustomerService{
		store:     store,
		logger:    logger,
		validator: validator,
	}
}

// CreateCustomer registers a customer. Email, phone, and the full-name
// triple are each unique; the store reports which one collided.
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	customer, err := s.store.CreateCustomer(ctx, &domain.Customer{
		FullName: domain.FullName{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			MiddleName: req.MiddleName,
		},
		Email: req.Email,
		Phone: domain.CanonicalPhone(req.Phone),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", "customer_id", customer.ID, "email", customer.Email)
	return customer, nil
}

// ChangePhone updates a customer's phone number, canonicalising it
// first.
func (s *CustomerService) ChangePhone(ctx context.Context, id int64, phone string) (*domain.Customer, error) {
	if err := s.validator.Validate(changePhoneRequest{Phone: phone}); err != nil {
		return nil, err
	}

	var updated *domain.Customer
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		customer, err := tx.GetCustomer(ctx, id, true)
		if err != nil {
			return err
		}
		customer.Phone = domain.CanonicalPhone(phone)
		updated, err = tx.UpdateCustomer(ctx, customer)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer phone changed", "customer_id", id)
	return updated, nil
}

// ChangeEmail updates a customer's email address.
func (s *CustomerService) ChangeEmail(ctx context.Context, id int64, email string) (*domain.Customer, error) {
	if err := s.validator.Validate(changeEmailRequest{Email: email}); err != nil {
		return nil, err
	}

	var updated *domain.Customer
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		customer, err := tx.GetCustomer(ctx, id, true)
		if err != nil {
			return err
		}
		customer.Email = email
		updated, err = tx.UpdateCustomer(ctx, customer)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer email changed", "customer_id", id)
	return updated, nil
}

// GetCustomer returns a customer with borrowed copies.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.store.GetCustomer(ctx, id, false)
}

// GetCustomerByEmail returns a customer by email.
func (s *CustomerService) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.store.GetCustomerByEmail(ctx, email)
}

// GetCustomerByPhone returns a customer by phone. The lookup value is
// canonicalised the same way stored phones are, so any loose format
// matches.
func (s *CustomerService) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return s.store.GetCustomerByPhone(ctx, domain.CanonicalPhone(phone))
}

// GetCustomerByName returns a customer by the unique full-name triple.
func (s *CustomerService) GetCustomerByName(ctx context.Context, req CustomerName) (*domain.Customer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.store.GetCustomerByName(ctx, req.fullName())
}
