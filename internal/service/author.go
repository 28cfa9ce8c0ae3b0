package service

import (
	"context"
	"log/slog"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// AuthorName carries the unique full-name triple of an author.
type AuthorName struct {
	FirstName  string `json:"first_name" validate:"required,max=40"`
	LastName   string `json:"last_name" validate:"required,max=80"`
	MiddleName string `json:"middle_name,omitempty" validate:"max=40"`
}

func (n AuthorName) fullName() domain.FullName {
	return domain.FullName{
		FirstName:  n.FirstName,
		LastName:   n.LastName,
		MiddleName: n.MiddleName,
	}
}

// AuthorService manages author records.
type AuthorService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewAuthorService creates a new author service.
func NewAuthorService(store store.Store, logger *slog.Logger, validator *validation.Validator) *AuthorService {
	return &AuthorService{
		store:     store,
		logger:    logger,
		validator: validator,
	}
}

// CreateAuthor creates an author. The full-name triple is unique, a
// duplicate yields AUTHOR_ALREADY_EXISTS.
func (s *AuthorService) CreateAuthor(ctx context.Context, req AuthorName) (*domain.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	author, err := s.store.CreateAuthor(ctx, req.fullName())
	if err != nil {
		return nil, err
	}

	s.logger.Info("author created", "author_id", author.ID, "name", author.FullName.String())
	return author, nil
}

// UpdateAuthor renames an author. A rename that collides with another
// author's name yields UPDATE_CONFLICT.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id int64, req AuthorName) (*domain.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var author *domain.Author
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.GetAuthor(ctx, id, true); err != nil {
			return err
		}
		var err error
		author, err = tx.UpdateAuthor(ctx, id, req.fullName())
		if apperrors.Is(err, apperrors.ErrAuthorAlreadyExists) {
			return apperrors.ErrUpdateConflict.WithCause(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("author updated", "author_id", id, "name", author.FullName.String())
	return author, nil
}

// GetAuthor returns an author with linked books.
func (s *AuthorService) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	return s.store.GetAuthor(ctx, id, false)
}

// GetAuthorByName returns an author by the unique full-name triple.
func (s *AuthorService) GetAuthorByName(ctx context.Context, req AuthorName) (*domain.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.store.GetAuthorByName(ctx, req.fullName(), false)
}

// DeleteAuthor deletes an author, refusing while any linked book
// remains in the database.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	var deleted *domain.Author
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.GetAuthor(ctx, id, true); err != nil {
			return err
		}

		bookIDs, err := tx.BookIDsByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if len(bookIDs) > 0 {
			return apperrors.ErrBookPresentInDatabase.WithDetails(map[string]any{
				"book_ids": bookIDs,
			})
		}

		removed, err := tx.DeleteAuthors(ctx, []int64{id})
		if err != nil {
			return err
		}
		deleted = removed[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("author deleted", "author_id", id)
	return deleted, nil
}

// DeleteAuthorsWithoutBook removes every author with no linked book and
// returns the deleted records.
func (s *AuthorService) DeleteAuthorsWithoutBook(ctx context.Context) ([]*domain.Author, error) {
	var deleted []*domain.Author
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		ids, err := tx.AuthorIDsWithoutBooks(ctx, true)
		if err != nil {
			return err
		}
		deleted, err = tx.DeleteAuthors(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("authors without books deleted", "count", len(deleted))
	return deleted, nil
}
