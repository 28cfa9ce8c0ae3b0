package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
)

func TestUniqueConstraints(t *testing.T) {
	s := New()
	ctx := context.Background()

	name := domain.FullName{FirstName: "Ivan", LastName: "Franko"}
	_, err := s.CreateAuthor(ctx, name)
	require.NoError(t, err)
	_, err = s.CreateAuthor(ctx, name)
	assert.ErrorIs(t, err, apperrors.ErrAuthorAlreadyExists)

	_, err = s.CreateBook(ctx, &domain.Book{Title: "Zakhar Berkut", ISBN: "9780000000010"})
	require.NoError(t, err)
	_, err = s.CreateBook(ctx, &domain.Book{Title: "Other", ISBN: "9780000000010"})
	assert.ErrorIs(t, err, apperrors.ErrBookAlreadyExists)

	c := &domain.Customer{
		FullName: domain.FullName{FirstName: "Olena", LastName: "Kovalenko"},
		Email:    "olena@example.com",
		Phone:    "+380 44 123 45 67",
	}
	_, err = s.CreateCustomer(ctx, c)
	require.NoError(t, err)
	_, err = s.CreateCustomer(ctx, &domain.Customer{
		FullName: domain.FullName{FirstName: "Inna", LastName: "Bondar"},
		Email:    "olena@example.com",
		Phone:    "+380 66 644 32 27",
	})
	assert.ErrorIs(t, err, apperrors.ErrCustomerEmailExists)
}

func TestWithinTxRollsBack(t *testing.T) {
	s := New()
	ctx := context.Background()

	boom := apperrors.Internal("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.CreateAuthor(ctx, domain.FullName{FirstName: "A", LastName: "B"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ids, err := s.AuthorIDsWithoutBooks(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.CreateAuthor(ctx, domain.FullName{FirstName: "A", LastName: "B"})
		return err
	})
	require.NoError(t, err)

	ids, err = s.AuthorIDsWithoutBooks(ctx, false)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestGridAllocation(t *testing.T) {
	s := New()
	ctx := context.Background()

	total, err := s.ReplaceGrid(ctx, 1, 2, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	err = s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		ids, err := tx.FindFreeSlots(ctx, 4)
		if err != nil {
			return err
		}
		return tx.SetPlacementStatus(ctx, ids, domain.PlacementOccupied)
	})
	require.NoError(t, err)

	_, err = s.FindFreeSlots(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	summary, err := s.CapacitySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Occupied)
	assert.Equal(t, 2, summary.Free)
}

func TestCopyPlacementUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.ReplaceGrid(ctx, 1, 1, 1, 2)
	require.NoError(t, err)
	book, err := s.CreateBook(ctx, &domain.Book{Title: "T", ISBN: "9780000000011"})
	require.NoError(t, err)

	slots, err := s.FindFreeSlots(ctx, 1)
	require.NoError(t, err)

	_, err = s.CreateCopies(ctx, []*domain.BookCopy{
		{BookID: book.ID, Status: domain.CopyAvailable, Statement: domain.StatementNew, PlacementID: &slots[0]},
	})
	require.NoError(t, err)

	_, err = s.CreateCopies(ctx, []*domain.BookCopy{
		{BookID: book.ID, Status: domain.CopyAvailable, Statement: domain.StatementNew, PlacementID: &slots[0]},
	})
	require.Error(t, err)
	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeConflict, domainErr.Code)
}
