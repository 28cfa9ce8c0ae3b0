package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
)

// newTestStore connects to the database named by BOOKZ_TEST_DATABASE_URL
// and truncates all tables. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("BOOKZ_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BOOKZ_TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(context.Background(), Config{URL: url}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.pool.Exec(context.Background(),
		"TRUNCATE book_copies, book_authors, books, authors, customers, placements RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return s
}

func testBook(isbn string) *domain.Book {
	price := 24.50
	return &domain.Book{
		Title:              "The Master and Margarita",
		Publisher:          "Dnipro",
		PlaceOfPublication: "Kyiv",
		PublishedYear:      1988,
		ISBN:               isbn,
		Pages:              384,
		Price:              &price,
		Language:           "ukr",
	}
}

func TestAuthorRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	name := domain.FullName{FirstName: "Mykhailo", LastName: "Bulgakov"}
	created, err := s.CreateAuthor(ctx, name)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = s.CreateAuthor(ctx, name)
	assert.ErrorIs(t, err, apperrors.ErrAuthorAlreadyExists)

	got, err := s.GetAuthor(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, name, got.FullName)
	assert.Empty(t, got.Books)

	byName, err := s.GetAuthorByName(ctx, name, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	updated, err := s.UpdateAuthor(ctx, created.ID,
		domain.FullName{FirstName: "Mikhail", LastName: "Bulgakov"})
	require.NoError(t, err)
	assert.Equal(t, "Mikhail", updated.FirstName)

	_, err = s.GetAuthor(ctx, 9999, false)
	assert.ErrorIs(t, err, apperrors.ErrAuthorNotFound)
}

func TestBookWithAuthorsAndCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author, err := s.CreateAuthor(ctx,
		domain.FullName{FirstName: "Lesya", LastName: "Ukrainka"})
	require.NoError(t, err)

	book, err := s.CreateBook(ctx, testBook("9789660353435"))
	require.NoError(t, err)
	require.NoError(t, s.LinkBookAuthor(ctx, book.ID, author.ID))

	_, err = s.CreateBook(ctx, testBook("9789660353435"))
	assert.ErrorIs(t, err, apperrors.ErrBookAlreadyExists)

	copies, err := s.CreateCopies(ctx, []*domain.BookCopy{
		{BookID: book.ID, Status: domain.CopyUnknown, Statement: domain.StatementNew},
		{BookID: book.ID, Status: domain.CopyUnknown, Statement: domain.StatementNew},
	})
	require.NoError(t, err)
	require.Len(t, copies, 2)

	got, err := s.GetBook(ctx, book.ID, false)
	require.NoError(t, err)
	require.Len(t, got.Authors, 1)
	assert.Equal(t, author.ID, got.Authors[0].ID)
	assert.Len(t, got.Copies, 2)

	byISBN, err := s.GetBookByISBN(ctx, "9789660353435")
	require.NoError(t, err)
	assert.Equal(t, book.ID, byISBN.ID)

	hydrated, err := s.GetAuthor(ctx, author.ID, false)
	require.NoError(t, err)
	require.Len(t, hydrated.Books, 1)
	assert.Equal(t, book.ID, hydrated.Books[0].ID)
}

func TestWithoutBooksAndWithoutCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	linked, err := s.CreateAuthor(ctx, domain.FullName{FirstName: "Ivan", LastName: "Franko"})
	require.NoError(t, err)
	orphan, err := s.CreateAuthor(ctx, domain.FullName{FirstName: "Taras", LastName: "Shevchenko"})
	require.NoError(t, err)

	withCopies, err := s.CreateBook(ctx, testBook("9780000000001"))
	require.NoError(t, err)
	bare, err := s.CreateBook(ctx, testBook("9780000000002"))
	require.NoError(t, err)
	require.NoError(t, s.LinkBookAuthor(ctx, withCopies.ID, linked.ID))

	_, err = s.CreateCopies(ctx, []*domain.BookCopy{
		{BookID: withCopies.ID, Status: domain.CopyUnknown, Statement: domain.StatementNew},
	})
	require.NoError(t, err)

	authorIDs, err := s.AuthorIDsWithoutBooks(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{orphan.ID}, authorIDs)

	bookIDs, err := s.BookIDsWithoutCopies(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{bare.ID}, bookIDs)

	deleted, err := s.DeleteAuthors(ctx, authorIDs)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, orphan.ID, deleted[0].ID)
}

func TestGridAndCapacity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	total, err := s.ReplaceGrid(ctx, 2, 3, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 60, total)

	summary, err := s.CapacitySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, &store.DepositorySummary{
		TotalSlots: 60, Occupied: 0, Free: 60,
		MaxLine: "B", MaxColumn: 3, MaxShelf: "B", MaxPosition: 5,
	}, summary)

	err = s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		ids, err := tx.FindFreeSlots(ctx, 10)
		if err != nil {
			return err
		}
		return tx.SetPlacementStatus(ctx, ids, domain.PlacementOccupied)
	})
	require.NoError(t, err)

	summary, err = s.CapacitySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Occupied)
	assert.Equal(t, 50, summary.Free)

	err = s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.FindFreeSlots(ctx, 51)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)
}

// TestFindFreeSlotsConcurrent races transactions over a grid with room
// for only some of them. Row locks must serialize the allocations so
// that no slot is handed out twice.
func TestFindFreeSlotsConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.ReplaceGrid(ctx, 1, 1, 1, 12)
	require.NoError(t, err)

	const (
		workers   = 6
		perWorker = 3
	)

	var (
		mu        sync.Mutex
		allocated []int64
		failures  int
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
				ids, err := tx.FindFreeSlots(ctx, perWorker)
				if err != nil {
					return err
				}
				if err := tx.SetPlacementStatus(ctx, ids, domain.PlacementOccupied); err != nil {
					return err
				}
				mu.Lock()
				allocated = append(allocated, ids...)
				mu.Unlock()
				return nil
			})
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)
			}
		}()
	}
	wg.Wait()

	// 12 slots cannot satisfy 6 allocations of 3; locked-and-taken rows
	// may also shrink a late reader's result set, so the winner count is
	// bounded, not exact.
	assert.GreaterOrEqual(t, failures, 2)
	assert.Equal(t, (workers-failures)*perWorker, len(allocated))

	seen := make(map[int64]bool)
	for _, id := range allocated {
		assert.False(t, seen[id], "slot %d allocated twice", id)
		seen[id] = true
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &domain.Customer{
		FullName: domain.FullName{FirstName: "Olena", LastName: "Kovalenko"},
		Email:    "olena@example.com",
		Phone:    "+380 44 123 45 67",
	}
	created, err := s.CreateCustomer(ctx, c)
	require.NoError(t, err)

	dup := &domain.Customer{
		FullName: domain.FullName{FirstName: "Inna", LastName: "Kovalenko"},
		Email:    "olena@example.com",
		Phone:    "+380 66 644 32 27",
	}
	_, err = s.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrCustomerEmailExists)

	dup.Email = "inna@example.com"
	dup.Phone = created.Phone
	_, err = s.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrCustomerPhoneExists)

	dup.Phone = "+380 66 644 32 27"
	dup.FullName = created.FullName
	_, err = s.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrCustomerFullNameExists)

	byEmail, err := s.GetCustomerByEmail(ctx, "olena@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byPhone, err := s.GetCustomerByPhone(ctx, "+380 44 123 45 67")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPhone.ID)

	byName, err := s.GetCustomerByName(ctx, created.FullName)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	created.Email = "olena.k@example.com"
	updated, err := s.UpdateCustomer(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "olena.k@example.com", updated.Email)
}

func TestCopyPlacementUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.ReplaceGrid(ctx, 1, 1, 1, 2)
	require.NoError(t, err)

	book, err := s.CreateBook(ctx, testBook("9780000000003"))
	require.NoError(t, err)

	var slot int64 = 1
	copies, err := s.CreateCopies(ctx, []*domain.BookCopy{
		{BookID: book.ID, Status: domain.CopyAvailable, Statement: domain.StatementNew, PlacementID: &slot},
	})
	require.NoError(t, err)

	_, err = s.CreateCopies(ctx, []*domain.BookCopy{
		{BookID: book.ID, Status: domain.CopyAvailable, Statement: domain.StatementNew, PlacementID: &slot},
	})
	require.Error(t, err)
	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeConflict, domainErr.Code)

	got, err := s.GetCopy(ctx, copies[0].ID, false)
	require.NoError(t, err)
	require.NotNil(t, got.Placement)
	assert.Equal(t, "A-1-A-1", got.Placement.Coordinate())
	require.NotNil(t, got.Book)
	assert.Equal(t, book.ID, got.Book.ID)
}

func TestWithinTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	wantErr := apperrors.Internal("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.CreateAuthor(ctx, domain.FullName{FirstName: "A", LastName: "B"})
		if err != nil {
			return err
		}
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	ids, err := s.AuthorIDsWithoutBooks(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
