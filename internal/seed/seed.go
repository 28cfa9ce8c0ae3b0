// Package seed rebuilds the placement grid and fills the database with
// generated catalog data for development and manual testing.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	apperrors "github.com/bookzapp/bookz-server/internal/errors"

	"github.com/bookzapp/bookz-server/internal/domain"
	"github.com/bookzapp/bookz-server/internal/store"
)

// Options control grid dimensions and data volume.
type Options struct {
	Lines     int
	Columns   int
	Shelves   int
	Positions int

	Authors          int
	Books            int
	Customers        int
	MaxCopiesPerBook int
}

// DefaultOptions matches a mid-sized depository.
func DefaultOptions() Options {
	return Options{
		Lines:            6,
		Columns:          4,
		Shelves:          8,
		Positions:        20,
		Authors:          50,
		Books:            200,
		Customers:        100,
		MaxCopiesPerBook: 3,
	}
}

// Result summarizes what one run wrote.
type Result struct {
	Slots     int
	Authors   int
	Books     int
	Customers int
	Copies    int
}

// Seeder writes one batch of generated data in a single transaction.
// Everything existing in the placement grid is replaced; catalog rows
// are added on top of whatever is already present.
type Seeder struct {
	store  store.Store
	logger *slog.Logger
	rng    *rand.Rand
	gen    *generator
}

// New creates a seeder. Pass a fixed seed for reproducible data.
func New(st store.Store, logger *slog.Logger, randSeed int64) *Seeder {
	rng := rand.New(rand.NewSource(randSeed))
	return &Seeder{
		store:  st,
		logger: logger,
		rng:    rng,
		gen:    newGenerator(rng),
	}
}

// Run executes one seeding pass.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		slots, err := tx.ReplaceGrid(ctx, opts.Lines, opts.Columns, opts.Shelves, opts.Positions)
		if err != nil {
			return err
		}
		res.Slots = slots

		authors := make([]*domain.Author, 0, opts.Authors)
		for i := 0; i < opts.Authors; i++ {
			author, err := tx.CreateAuthor(ctx, s.gen.personName())
			if err != nil {
				return fmt.Errorf("create author: %w", err)
			}
			authors = append(authors, author)
		}
		res.Authors = len(authors)

		customers := make([]*domain.Customer, 0, opts.Customers)
		for i := 0; i < opts.Customers; i++ {
			customer, err := tx.CreateCustomer(ctx, s.gen.customer())
			if err != nil {
				return fmt.Errorf("create customer: %w", err)
			}
			customers = append(customers, customer)
		}
		res.Customers = len(customers)

		for i := 0; i < opts.Books; i++ {
			book, err := tx.CreateBook(ctx, s.gen.book())
			if err != nil {
				return fmt.Errorf("create book: %w", err)
			}
			res.Books++

			for _, author := range s.pickAuthors(authors) {
				if err := tx.LinkBookAuthor(ctx, book.ID, author.ID); err != nil {
					return err
				}
			}

			copies, err := s.makeCopies(ctx, tx, book.ID, customers, opts.MaxCopiesPerBook)
			if err != nil {
				return err
			}
			res.Copies += copies
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("database seeded",
		"slots", res.Slots,
		"authors", res.Authors,
		"books", res.Books,
		"customers", res.Customers,
		"copies", res.Copies,
	)
	return res, nil
}

// pickAuthors selects up to three distinct authors; some books carry
// none at all.
func (s *Seeder) pickAuthors(authors []*domain.Author) []*domain.Author {
	n := s.rng.Intn(4)
	if n == 0 || len(authors) == 0 {
		return nil
	}
	if n > len(authors) {
		n = len(authors)
	}
	shuffled := make([]*domain.Author, len(authors))
	copy(shuffled, authors)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

var (
	copyStatuses      = []domain.CopyStatus{domain.CopyAvailable, domain.CopyBorrowed, domain.CopyLost}
	copyStatusWeights = []int{70, 25, 5}

	copyStatements = []domain.CopyStatement{
		domain.StatementNew, domain.StatementGood,
		domain.StatementRepair, domain.StatementDamaged,
	}
	copyStatementWeights = []int{20, 50, 20, 10}
)

func (s *Seeder) makeCopies(ctx context.Context, tx store.Tx, bookID int64, customers []*domain.Customer, maxPerBook int) (int, error) {
	n := 1 + s.rng.Intn(maxPerBook)
	copies := make([]*domain.BookCopy, 0, n)

	for i := 0; i < n; i++ {
		bc := &domain.BookCopy{
			BookID:    bookID,
			Status:    pickWeighted(s.rng, copyStatuses, copyStatusWeights),
			Statement: pickWeighted(s.rng, copyStatements, copyStatementWeights),
		}

		switch bc.Status {
		case domain.CopyAvailable:
			slots, err := tx.FindFreeSlots(ctx, 1)
			switch {
			case apperrors.Is(err, apperrors.ErrInsufficientCapacity):
				// Grid is full, the copy goes unshelved.
				bc.Status = domain.CopyUnknown
			case err != nil:
				return 0, err
			default:
				bc.PlacementID = &slots[0]
				if err := tx.SetPlacementStatus(ctx, slots, domain.PlacementOccupied); err != nil {
					return 0, err
				}
			}
		case domain.CopyBorrowed:
			if len(customers) == 0 {
				bc.Status = domain.CopyUnknown
				break
			}
			bc.CustomerID = &customers[s.rng.Intn(len(customers))].ID
		}
		copies = append(copies, bc)
	}

	created, err := tx.CreateCopies(ctx, copies)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}
