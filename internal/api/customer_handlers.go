package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookzapp/bookz-server/internal/domain"
	"github.com/bookzapp/bookz-server/internal/service"
)

func (s *Server) registerCustomerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createCustomer",
		Method:      http.MethodPost,
		Path:        "/customer",
		Summary:     "Register customer",
		Tags:        []string{"Customers"},
	}, s.handleCreateCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCustomer",
		Method:      http.MethodGet,
		Path:        "/customer/{id}",
		Summary:     "Get customer",
		Description: "Returns a customer with currently borrowed copies",
		Tags:        []string{"Customers"},
	}, s.handleGetCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCustomerByEmail",
		Method:      http.MethodGet,
		Path:        "/customer/email/{email}",
		Summary:     "Find customer by email",
		Tags:        []string{"Customers"},
	}, s.handleGetCustomerByEmail)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCustomerByPhone",
		Method:      http.MethodGet,
		Path:        "/customer/phone/{phone}",
		Summary:     "Find customer by phone",
		Description: "The phone may be given in any loose format",
		Tags:        []string{"Customers"},
	}, s.handleGetCustomerByPhone)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCustomerByFullName",
		Method:      http.MethodPost,
		Path:        "/customer/fullname",
		Summary:     "Find customer by full name",
		Tags:        []string{"Customers"},
	}, s.handleGetCustomerByFullName)

	huma.Register(s.api, huma.Operation{
		OperationID: "changeCustomerPhone",
		Method:      http.MethodPatch,
		Path:        "/customer/{id}/phone",
		Summary:     "Change customer phone",
		Tags:        []string{"Customers"},
	}, s.handleChangeCustomerPhone)

	huma.Register(s.api, huma.Operation{
		OperationID: "changeCustomerEmail",
		Method:      http.MethodPatch,
		Path:        "/customer/{id}/email",
		Summary:     "Change customer email",
		Tags:        []string{"Customers"},
	}, s.handleChangeCustomerEmail)
}

// === DTOs ===

type CreateCustomerInput struct {
	Body service.CreateCustomerRequest
}

type CustomerIDInput struct {
	ID int64 `path:"id" doc:"Customer ID"`
}

type CustomerEmailInput struct {
	Email string `path:"email" doc:"Email address"`
}

type CustomerPhoneInput struct {
	Phone string `path:"phone" doc:"Phone number, any format"`
}

type CustomerNameInput struct {
	Body service.CustomerName
}

type ChangeCustomerPhoneInput struct {
	ID   int64 `path:"id" doc:"Customer ID"`
	Body struct {
		Phone string `json:"phone" doc:"New phone number, any loose format"`
	}
}

type ChangeCustomerEmailInput struct {
	ID   int64 `path:"id" doc:"Customer ID"`
	Body struct {
		Email string `json:"email" format:"email" doc:"New email address"`
	}
}

type CustomerOutput struct {
	Body domain.Customer
}

// === Handlers ===

func (s *Server) handleCreateCustomer(ctx context.Context, input *CreateCustomerInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.CreateCustomer(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}

func (s *Server) handleGetCustomer(ctx context.Context, input *CustomerIDInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}

func (s *Server) handleGetCustomerByEmail(ctx context.Context, input *CustomerEmailInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.GetCustomerByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}

func (s *Server) handleGetCustomerByPhone(ctx context.Context, input *CustomerPhoneInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.GetCustomerByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}

func (s *Server) handleGetCustomerByFullName(ctx context.Context, input *CustomerNameInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.GetCustomerByName(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}

func (s *Server) handleChangeCustomerPhone(ctx context.Context, input *ChangeCustomerPhoneInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.ChangePhone(ctx, input.ID, input.Body.Phone)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}

func (s *Server) handleChangeCustomerEmail(ctx context.Context, input *ChangeCustomerEmailInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.ChangeEmail(ctx, input.ID, input.Body.Email)
	if err != nil {
		return nil, err
	}
	return &CustomerOutput{Body: *customer}, nil
}
