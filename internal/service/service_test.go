package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookzapp/bookz-server/internal/store/memstore"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// env wires every service over a shared in-memory store.
type env struct {
	store      *memstore.Store
	depository *DepositoryService
	authors    *AuthorService
	books      *BookService
	copies     *CopyService
	customers  *CustomerService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validation.New()

	return &env{
		store:      s,
		depository: NewDepositoryService(s, logger, v),
		authors:    NewAuthorService(s, logger, v),
		books:      NewBookService(s, logger, v),
		copies:     NewCopyService(s, logger, v),
		customers:  NewCustomerService(s, logger, v),
	}
}

// withGrid initialises a small grid and returns the slot count.
func (e *env) withGrid(t *testing.T, slots int) {
	t.Helper()
	total, err := e.depository.InitGrid(context.Background(), InitGridRequest{
		Lines: 1, Columns: 1, Shelves: 1, Positions: slots,
	})
	require.NoError(t, err)
	require.Equal(t, slots, total)
}

func (e *env) freeSlots(t *testing.T) int {
	t.Helper()
	summary, err := e.depository.Status(context.Background())
	require.NoError(t, err)
	return summary.Free
}

func bookRequest(isbn string, copies int) CreateBookRequest {
	return CreateBookRequest{
		Title:              "Kobzar",
		Publisher:          "Veselka",
		PlaceOfPublication: "Kyiv",
		PublishedYear:      1985,
		ISBN:               isbn,
		Pages:              320,
		Authors: []AuthorName{
			{FirstName: "Taras", LastName: "Shevchenko"},
		},
		NewCopies: copies,
	}
}

func customerRequest(email, phone string) CreateCustomerRequest {
	return CreateCustomerRequest{
		FirstName: "Olena",
		LastName:  "Kovalenko",
		Email:     email,
		Phone:     phone,
	}
}
