package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookzapp/bookz-server/internal/domain"
	"github.com/bookzapp/bookz-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/book",
		Summary:     "Create book",
		Description: "Creates a book with its authors and optionally places an initial batch of copies",
		Tags:        []string{"Books"},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/book/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/book/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book with all its copies. Refused while any copy is borrowed.",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookByISBN",
		Method:      http.MethodGet,
		Path:        "/book/isbn/{isbn}",
		Summary:     "Get book by ISBN",
		Tags:        []string{"Books"},
	}, s.handleGetBookByISBN)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBooksWithoutCopies",
		Method:      http.MethodDelete,
		Path:        "/book/without-copies",
		Summary:     "Delete books without copies",
		Tags:        []string{"Books"},
	}, s.handleDeleteBooksWithoutCopies)
}

// === DTOs ===

type CreateBookInput struct {
	Body service.CreateBookRequest
}

type BookIDInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

type BookISBNInput struct {
	ISBN string `path:"isbn" doc:"ISBN"`
}

type BookOutput struct {
	Body domain.Book
}

type BooksOutput struct {
	Body struct {
		Books []*domain.Book `json:"books" doc:"Deleted books"`
		Count int            `json:"count" doc:"Number of deleted books"`
	}
}

// === Handlers ===

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.CreateBook(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Book.DeleteBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleGetBookByISBN(ctx context.Context, input *BookISBNInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBookByISBN(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleDeleteBooksWithoutCopies(ctx context.Context, _ *struct{}) (*BooksOutput, error) {
	deleted, err := s.services.Book.DeleteBooksWithoutCopies(ctx)
	if err != nil {
		return nil, err
	}

	out := &BooksOutput{}
	out.Body.Books = deleted
	out.Body.Count = len(deleted)
	return out, nil
}
