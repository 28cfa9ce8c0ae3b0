package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/service"
)

func (s *Server) registerCopyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createBookCopy",
		Method:      http.MethodPost,
		Path:        "/book-copy",
		Summary:     "Create book copy",
		Tags:        []string{"Book copies"},
	}, s.handleCreateCopy)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookCopy",
		Method:      http.MethodGet,
		Path:        "/book-copy/{id}",
		Summary:     "Get book copy",
		Tags:        []string{"Book copies"},
	}, s.handleGetCopy)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBookCopy",
		Method:      http.MethodDelete,
		Path:        "/book-copy/{id}",
		Summary:     "Delete book copy",
		Description: "Deletes a copy and frees its slot. A borrowed copy cannot be deleted.",
		Tags:        []string{"Book copies"},
	}, s.handleDeleteCopy)

	huma.Register(s.api, huma.Operation{
		OperationID: "changeBookCopyStatus",
		Method:      http.MethodPatch,
		Path:        "/book-copy/{id}/status/{status}",
		Summary:     "Change copy status",
		Description: "Moves a copy between lending states, allocating or releasing its slot as needed",
		Tags:        []string{"Book copies"},
	}, s.handleChangeCopyStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "changeBookCopyStatement",
		Method:      http.MethodPatch,
		Path:        "/book-copy/{id}/statement/{statement}",
		Summary:     "Change copy condition",
		Description: "Grades the physical condition. Transitions run one way.",
		Tags:        []string{"Book copies"},
	}, s.handleChangeCopyStatement)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookCopiesByStatus",
		Method:      http.MethodGet,
		Path:        "/book-copy/status/{status}",
		Summary:     "List copies by status",
		Tags:        []string{"Book copies"},
	}, s.handleListCopiesByStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookCopiesByStatement",
		Method:      http.MethodGet,
		Path:        "/book-copy/statement/{statement}",
		Summary:     "List copies by condition",
		Tags:        []string{"Book copies"},
	}, s.handleListCopiesByStatement)
}

// === DTOs ===

type CreateCopyInput struct {
	Body service.CreateCopyRequest
}

type CopyIDInput struct {
	ID int64 `path:"id" doc:"Copy ID"`
}

type ChangeCopyStatusInput struct {
	ID     int64  `path:"id" doc:"Copy ID"`
	Status string `path:"status" enum:"available,borrowed,lost,unknown" doc:"Target status"`
	Body   struct {
		CustomerID *int64 `json:"customer_id,omitempty" doc:"Borrower, required when status is borrowed"`
	} `required:"false"`
}

type ChangeCopyStatementInput struct {
	ID        int64  `path:"id" doc:"Copy ID"`
	Statement string `path:"statement" enum:"new,good,damaged,repair,unusable" doc:"Target condition"`
}

type CopyStatusInput struct {
	Status string `path:"status" enum:"available,borrowed,lost,unknown" doc:"Status filter"`
}

type CopyStatementInput struct {
	Statement string `path:"statement" enum:"new,good,damaged,repair,unusable" doc:"Condition filter"`
}

type CopyOutput struct {
	Body domain.BookCopy
}

type CopiesOutput struct {
	Body struct {
		Copies []*domain.BookCopy `json:"copies" doc:"Matching copies"`
		Count  int                `json:"count" doc:"Number of matching copies"`
	}
}

// === Handlers ===

func (s *Server) handleCreateCopy(ctx context.Context, input *CreateCopyInput) (*CopyOutput, error) {
	copy, err := s.services.Copy.CreateCopy(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Body: *copy}, nil
}

func (s *Server) handleGetCopy(ctx context.Context, input *CopyIDInput) (*CopyOutput, error) {
	copy, err := s.services.Copy.GetCopy(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Body: *copy}, nil
}

func (s *Server) handleDeleteCopy(ctx context.Context, input *CopyIDInput) (*CopyOutput, error) {
	copy, err := s.services.Copy.DeleteCopy(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Body: *copy}, nil
}

func (s *Server) handleChangeCopyStatus(ctx context.Context, input *ChangeCopyStatusInput) (*CopyOutput, error) {
	status, err := domain.ParseCopyStatus(input.Status)
	if err != nil {
		return nil, apperrors.Validationf("unknown copy status %q", input.Status)
	}

	copy, err := s.services.Copy.ChangeStatus(ctx, input.ID, status, input.Body.CustomerID)
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Body: *copy}, nil
}

func (s *Server) handleChangeCopyStatement(ctx context.Context, input *ChangeCopyStatementInput) (*CopyOutput, error) {
	statement, err := domain.ParseCopyStatement(input.Statement)
	if err != nil {
		return nil, apperrors.Validationf("unknown copy statement %q", input.Statement)
	}

	copy, err := s.services.Copy.ChangeStatement(ctx, input.ID, statement)
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Body: *copy}, nil
}

func (s *Server) handleListCopiesByStatus(ctx context.Context, input *CopyStatusInput) (*CopiesOutput, error) {
	status, err := domain.ParseCopyStatus(input.Status)
	if err != nil {
		return nil, apperrors.Validationf("unknown copy status %q", input.Status)
	}

	copies, err := s.services.Copy.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	out := &CopiesOutput{}
	out.Body.Copies = copies
	out.Body.Count = len(copies)
	return out, nil
}

func (s *Server) handleListCopiesByStatement(ctx context.Context, input *CopyStatementInput) (*CopiesOutput, error) {
	statement, err := domain.ParseCopyStatement(input.Statement)
	if err != nil {
		return nil, apperrors.Validationf("unknown copy statement %q", input.Statement)
	}

	copies, err := s.services.Copy.ListByStatement(ctx, statement)
	if err != nil {
		return nil, err
	}

	out := &CopiesOutput{}
	out.Body.Copies = copies
	out.Body.Count = len(copies)
	return out, nil
}
