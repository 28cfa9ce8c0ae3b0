package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookzapp/bookz-server/internal/domain"
	"github.com/bookzapp/bookz-server/internal/service"
)

func (s *Server) registerAuthorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createAuthor",
		Method:      http.MethodPost,
		Path:        "/author",
		Summary:     "Create author",
		Tags:        []string{"Authors"},
	}, s.handleCreateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthor",
		Method:      http.MethodGet,
		Path:        "/author/{id}",
		Summary:     "Get author",
		Description: "Returns an author with linked books",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAuthor",
		Method:      http.MethodPut,
		Path:        "/author/{id}",
		Summary:     "Rename author",
		Tags:        []string{"Authors"},
	}, s.handleUpdateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAuthor",
		Method:      http.MethodDelete,
		Path:        "/author/{id}",
		Summary:     "Delete author",
		Description: "Fails while any linked book remains in the database",
		Tags:        []string{"Authors"},
	}, s.handleDeleteAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthorByFullName",
		Method:      http.MethodPost,
		Path:        "/author/fullname",
		Summary:     "Find author by full name",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthorByFullName)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAuthorsWithoutBook",
		Method:      http.MethodDelete,
		Path:        "/author/without-book",
		Summary:     "Delete authors without books",
		Tags:        []string{"Authors"},
	}, s.handleDeleteAuthorsWithoutBook)
}

// === DTOs ===

type AuthorNameInput struct {
	Body service.AuthorName
}

type AuthorIDInput struct {
	ID int64 `path:"id" doc:"Author ID"`
}

type UpdateAuthorInput struct {
	ID   int64 `path:"id" doc:"Author ID"`
	Body service.AuthorName
}

type AuthorOutput struct {
	Body domain.Author
}

type AuthorsOutput struct {
	Body struct {
		Authors []*domain.Author `json:"authors" doc:"Deleted authors"`
		Count   int              `json:"count" doc:"Number of deleted authors"`
	}
}

// === Handlers ===

func (s *Server) handleCreateAuthor(ctx context.Context, input *AuthorNameInput) (*AuthorOutput, error) {
	author, err := s.services.Author.CreateAuthor(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: *author}, nil
}

func (s *Server) handleGetAuthor(ctx context.Context, input *AuthorIDInput) (*AuthorOutput, error) {
	author, err := s.services.Author.GetAuthor(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: *author}, nil
}

func (s *Server) handleUpdateAuthor(ctx context.Context, input *UpdateAuthorInput) (*AuthorOutput, error) {
	author, err := s.services.Author.UpdateAuthor(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: *author}, nil
}

func (s *Server) handleDeleteAuthor(ctx context.Context, input *AuthorIDInput) (*AuthorOutput, error) {
	author, err := s.services.Author.DeleteAuthor(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: *author}, nil
}

func (s *Server) handleGetAuthorByFullName(ctx context.Context, input *AuthorNameInput) (*AuthorOutput, error) {
	author, err := s.services.Author.GetAuthorByName(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: *author}, nil
}

func (s *Server) handleDeleteAuthorsWithoutBook(ctx context.Context, _ *struct{}) (*AuthorsOutput, error) {
	deleted, err := s.services.Author.DeleteAuthorsWithoutBook(ctx)
	if err != nil {
		return nil, err
	}

	out := &AuthorsOutput{}
	out.Body.Authors = deleted
	out.Body.Count = len(deleted)
	return out, nil
}
