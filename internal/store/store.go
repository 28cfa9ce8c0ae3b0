// Package store defines the persistence interface for the bookz server.
//
// Implementations return errors from the internal/errors package so that
// callers can branch on error codes: not-found reads yield the matching
// *_NOT_FOUND code, and unique-constraint violations are translated into
// the specific conflict code for the constraint that fired.
package store

import (
	"context"

	"github.com/bookzapp/bookz-server/internal/domain"
)

// Tx is the set of row operations available inside a transaction. Methods
// taking a forUpdate flag lock the selected rows for the remainder of the
// transaction (SELECT ... FOR UPDATE semantics); outside of a transaction
// the flag has no lasting effect.
type Tx interface {
	// Placements
	//
	// FindFreeSlots selects and locks up to n free slot ids in id order.
	// It returns ErrInsufficientCapacity when fewer than n are free.
	FindFreeSlots(ctx context.Context, n int) ([]int64, error)
	SetPlacementStatus(ctx context.Context, ids []int64, status domain.PlacementStatus) error
	GetPlacement(ctx context.Context, id int64) (*domain.Placement, error)
	// ReplaceGrid drops all placements and rebuilds the full grid
	// lines x columns x shelves x positions, all free. Existing book
	// copies lose their placement references. Returns the slot count.
	ReplaceGrid(ctx context.Context, lines, columns, shelves, positions int) (int, error)
	CapacitySummary(ctx context.Context) (*DepositorySummary, error)

	// Authors
	CreateAuthor(ctx context.Context, name domain.FullName) (*domain.Author, error)
	UpdateAuthor(ctx context.Context, id int64, name domain.FullName) (*domain.Author, error)
	GetAuthor(ctx context.Context, id int64, forUpdate bool) (*domain.Author, error)
	GetAuthorByName(ctx context.Context, name domain.FullName, forUpdate bool) (*domain.Author, error)
	DeleteAuthors(ctx context.Context, ids []int64) ([]*domain.Author, error)
	AuthorIDsWithoutBooks(ctx context.Context, forUpdate bool) ([]int64, error)
	BookIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error)
	LinkBookAuthor(ctx context.Context, bookID, authorID int64) error

	// Books
	CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetBook(ctx context.Context, id int64, forUpdate bool) (*domain.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	DeleteBooks(ctx context.Context, ids []int64) ([]*domain.Book, error)
	BookIDsWithoutCopies(ctx context.Context, forUpdate bool) ([]int64, error)

	// Book copies
	CreateCopies(ctx context.Context, copies []*domain.BookCopy) ([]*domain.BookCopy, error)
	GetCopy(ctx context.Context, id int64, forUpdate bool) (*domain.BookCopy, error)
	ListCopiesByBook(ctx context.Context, bookID int64, forUpdate bool) ([]*domain.BookCopy, error)
	ListCopiesByStatus(ctx context.Context, status domain.CopyStatus) ([]*domain.BookCopy, error)
	ListCopiesByStatement(ctx context.Context, statement domain.CopyStatement) ([]*domain.BookCopy, error)
	UpdateCopy(ctx context.Context, copy *domain.BookCopy) (*domain.BookCopy, error)
	DeleteCopies(ctx context.Context, ids []int64) ([]*domain.BookCopy, error)

	// Customers
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64, forUpdate bool) (*domain.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetCustomerByName(ctx context.Context, name domain.FullName) (*domain.Customer, error)
}

// Store is the full persistence interface. Operations called directly on
// the Store run in auto-commit mode; WithinTx runs fn inside a single
// transaction, committing when fn returns nil and rolling back otherwise.
type Store interface {
	Tx

	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// DepositorySummary is a read-only aggregate of the placement grid.
type DepositorySummary struct {
	TotalSlots  int    `json:"total_slots"`
	Occupied    int    `json:"occupied"`
	Free        int    `json:"free"`
	MaxLine     string `json:"max_line"`
	MaxColumn   int    `json:"max_column"`
	MaxShelf    string `json:"max_shelf"`
	MaxPosition int    `json:"max_position"`
}
