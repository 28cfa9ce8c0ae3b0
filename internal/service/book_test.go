package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
)

func TestCreateBookAllocatesSlots(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 10)
	ctx := context.Background()

	book, err := e.books.CreateBook(ctx, bookRequest("9780000000100", 3))
	require.NoError(t, err)

	require.Len(t, book.Copies, 3)
	seen := make(map[int64]bool)
	for _, c := range book.Copies {
		assert.Equal(t, domain.CopyAvailable, c.Status)
		assert.Equal(t, domain.StatementNew, c.Statement)
		require.NotNil(t, c.PlacementID)
		assert.False(t, seen[*c.PlacementID], "slot %d used twice", *c.PlacementID)
		seen[*c.PlacementID] = true
	}

	assert.Equal(t, 7, e.freeSlots(t))
	require.Len(t, book.Authors, 1)
	assert.Equal(t, "Shevchenko Taras", book.Authors[0].FullName.String())
}

func TestCreateBookDeduplicatesAuthors(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 10)
	ctx := context.Background()

	_, err := e.books.CreateBook(ctx, bookRequest("9780000000101", 0))
	require.NoError(t, err)

	req := bookRequest("9780000000102", 0)
	req.Title = "Haidamaky"
	second, err := e.books.CreateBook(ctx, req)
	require.NoError(t, err)

	author, err := e.authors.GetAuthorByName(ctx, req.Authors[0])
	require.NoError(t, err)
	assert.Len(t, author.Books, 2)
	require.Len(t, second.Authors, 1)
	assert.Equal(t, author.ID, second.Authors[0].ID)
}

func TestCreateBookDuplicateISBNWritesNothing(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 10)
	ctx := context.Background()

	_, err := e.books.CreateBook(ctx, bookRequest("9780000000103", 2))
	require.NoError(t, err)
	freeBefore := e.freeSlots(t)

	dup := bookRequest("9780000000103", 2)
	dup.Title = "Other Title"
	dup.Authors = []AuthorName{{FirstName: "Lesya", LastName: "Ukrainka"}}
	_, err = e.books.CreateBook(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrBookAlreadyExists)

	assert.Equal(t, freeBefore, e.freeSlots(t))
	_, err = e.authors.GetAuthorByName(ctx, dup.Authors[0])
	assert.ErrorIs(t, err, apperrors.ErrAuthorNotFound)
}

func TestCreateBookCapacityExhaustionRollsBack(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 2)
	ctx := context.Background()

	_, err := e.books.CreateBook(ctx, bookRequest("9780000000104", 3))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	// Nothing may survive the failed transaction: no book, no author,
	// no occupied slot.
	assert.Equal(t, 2, e.freeSlots(t))
	_, err = e.books.GetBookByISBN(ctx, "9780000000104")
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	_, err = e.authors.GetAuthorByName(ctx, AuthorName{FirstName: "Taras", LastName: "Shevchenko"})
	assert.ErrorIs(t, err, apperrors.ErrAuthorNotFound)
}

func TestDeleteBookReleasesSlots(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 5)
	ctx := context.Background()

	book, err := e.books.CreateBook(ctx, bookRequest("9780000000105", 2))
	require.NoError(t, err)
	require.Equal(t, 3, e.freeSlots(t))

	deleted, err := e.books.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, deleted.ID)
	assert.Equal(t, 5, e.freeSlots(t))

	_, err = e.books.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestDeleteBookRefusesWhileBorrowed(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 5)
	ctx := context.Background()

	book, err := e.books.CreateBook(ctx, bookRequest("9780000000106", 2))
	require.NoError(t, err)
	customer, err := e.customers.CreateCustomer(ctx, customerRequest("olena@example.com", "0441234567"))
	require.NoError(t, err)

	borrowedCopy := book.Copies[0]
	_, err = e.copies.ChangeStatus(ctx, borrowedCopy.ID, domain.CopyBorrowed, &customer.ID)
	require.NoError(t, err)

	_, err = e.books.DeleteBook(ctx, book.ID)
	require.ErrorIs(t, err, apperrors.ErrBookCopyBorrowed)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []int64{borrowedCopy.ID}, details["copy_ids"])

	// The book and both copies must still be there.
	got, err := e.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, got.Copies, 2)
}

func TestDeleteBooksWithoutCopies(t *testing.T) {
	e := newEnv(t)
	e.withGrid(t, 5)
	ctx := context.Background()

	stocked, err := e.books.CreateBook(ctx, bookRequest("9780000000107", 1))
	require.NoError(t, err)
	bare, err := e.books.CreateBook(ctx, bookRequest("9780000000108", 0))
	require.NoError(t, err)

	deleted, err := e.books.DeleteBooksWithoutCopies(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, bare.ID, deleted[0].ID)

	_, err = e.books.GetBook(ctx, stocked.ID)
	assert.NoError(t, err)
}

func TestCreateBookValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	req := bookRequest("123", 0) // ISBN too short
	_, err := e.books.CreateBook(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	req = bookRequest("9780000000109", 0)
	req.Authors = nil
	_, err = e.books.CreateBook(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
