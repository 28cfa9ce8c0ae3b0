package service

import (
	"context"
	"log/slog"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// CreateBookRequest describes a new title together with its authors and
// an optional initial batch of physical copies.
type CreateBookRequest struct {
	Title              string       `json:"title" validate:"required,max=120"`
	Publisher          string       `json:"publisher" validate:"required,max=80"`
	PlaceOfPublication string       `json:"place_of_publication" validate:"required,max=80"`
	PublishedYear      int          `json:"published_year" validate:"gte=1700,lte=2100"`
	ISBN               string       `json:"isbn" validate:"required,min=10,max=20"`
	Pages              int          `json:"pages" validate:"gte=1"`
	Price              *float64     `json:"price,omitempty" validate:"omitempty,gte=0"`
	Language           string       `json:"language,omitempty" validate:"omitempty,min=2,max=3"`
	Authors            []AuthorName `json:"authors" validate:"required,min=1,dive"`
	NewCopies          int          `json:"new_copies" validate:"gte=0"`
	CopyStatement      string       `json:"copy_statement,omitempty" validate:"omitempty,oneof=new good damaged repair unusable"`
}

// BookService manages titles and their initial copy stock.
type BookService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger, validator *validation.Validator) *BookService {
	return &BookService{
		store:     store,
		logger:    logger,
		validator: validator,
	}
}

// CreateBook inserts a book, deduplicates and links its authors, and
// places the requested number of copies on freshly allocated slots, all
// in one transaction. A known ISBN yields BOOK_ALREADY_EXISTS and
// nothing is written.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	statement := domain.StatementNew
	if req.CopyStatement != "" {
		statement = domain.CopyStatement(req.CopyStatement)
	}

	var created *domain.Book
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.GetBookByISBN(ctx, req.ISBN); err == nil {
			return apperrors.ErrBookAlreadyExists.WithDetails(map[string]any{
				"isbn": req.ISBN,
			})
		} else if !apperrors.Is(err, apperrors.ErrBookNotFound) {
			return err
		}

		book, err := tx.CreateBook(ctx, &domain.Book{
			Title:              req.Title,
			Publisher:          req.Publisher,
			PlaceOfPublication: req.PlaceOfPublication,
			PublishedYear:      req.PublishedYear,
			ISBN:               req.ISBN,
			Pages:              req.Pages,
			Price:              req.Price,
			Language:           req.Language,
		})
		if err != nil {
			return err
		}

		for _, name := range req.Authors {
			author, err := tx.GetAuthorByName(ctx, name.fullName(), true)
			if apperrors.Is(err, apperrors.ErrAuthorNotFound) {
				author, err = tx.CreateAuthor(ctx, name.fullName())
			}
			if err != nil {
				return err
			}
			if err := tx.LinkBookAuthor(ctx, book.ID, author.ID); err != nil {
				return err
			}
		}

		if req.NewCopies > 0 {
			if err := createPlacedCopies(ctx, tx, book.ID, req.NewCopies, statement); err != nil {
				return err
			}
		}

		created, err = tx.GetBook(ctx, book.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book created",
		"book_id", created.ID,
		"isbn", created.ISBN,
		"authors", len(created.Authors),
		"copies", len(created.Copies),
	)
	return created, nil
}

// createPlacedCopies allocates n free slots, inserts n available copies
// on them, and marks the slots occupied. Shared with the copy service.
func createPlacedCopies(ctx context.Context, tx store.Tx, bookID int64, n int, statement domain.CopyStatement) error {
	slots, err := tx.FindFreeSlots(ctx, n)
	if err != nil {
		return err
	}

	copies := make([]*domain.BookCopy, n)
	for i := range copies {
		slot := slots[i]
		copies[i] = &domain.BookCopy{
			BookID:      bookID,
			Status:      domain.CopyAvailable,
			Statement:   statement,
			PlacementID: &slot,
		}
	}
	if _, err := tx.CreateCopies(ctx, copies); err != nil {
		return err
	}
	return tx.SetPlacementStatus(ctx, slots, domain.PlacementOccupied)
}

// GetBook returns a book with authors and copies.
func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.store.GetBook(ctx, id, false)
}

// GetBookByISBN returns a book by its unique ISBN.
func (s *BookService) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.store.GetBookByISBN(ctx, isbn)
}

// DeleteBook removes a book together with its copies, releasing their
// slots. Any borrowed copy blocks the whole deletion.
func (s *BookService) DeleteBook(ctx context.Context, id int64) (*domain.Book, error) {
	var deleted *domain.Book
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.GetBook(ctx, id, true); err != nil {
			return err
		}

		copies, err := tx.ListCopiesByBook(ctx, id, true)
		if err != nil {
			return err
		}

		var borrowed []int64
		var slots []int64
		copyIDs := make([]int64, 0, len(copies))
		for _, c := range copies {
			copyIDs = append(copyIDs, c.ID)
			if c.Status == domain.CopyBorrowed {
				borrowed = append(borrowed, c.ID)
			}
			if c.PlacementID != nil {
				slots = append(slots, *c.PlacementID)
			}
		}
		if len(borrowed) > 0 {
			return apperrors.ErrBookCopyBorrowed.WithDetails(map[string]any{
				"copy_ids": borrowed,
			})
		}

		if _, err := tx.DeleteCopies(ctx, copyIDs); err != nil {
			return err
		}
		if err := tx.SetPlacementStatus(ctx, slots, domain.PlacementFree); err != nil {
			return err
		}

		removed, err := tx.DeleteBooks(ctx, []int64{id})
		if err != nil {
			return err
		}
		deleted = removed[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book deleted", "book_id", id, "isbn", deleted.ISBN)
	return deleted, nil
}

// DeleteBooksWithoutCopies removes every book that has no physical copy
// and returns the deleted records.
func (s *BookService) DeleteBooksWithoutCopies(ctx context.Context) ([]*domain.Book, error) {
	var deleted []*domain.Book
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		ids, err := tx.BookIDsWithoutCopies(ctx, true)
		if err != nil {
			return err
		}
		deleted, err = tx.DeleteBooks(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("books without copies deleted", "count", len(deleted))
	return deleted, nil
}
