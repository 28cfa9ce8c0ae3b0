package service

import (
	"context"
	"log/slog"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// CreateCopyRequest adds one physical copy to an existing book. An
// available copy is placed on a freshly allocated slot; a borrowed one
// needs a customer.
type CreateCopyRequest struct {
	BookID     int64  `json:"book_id" validate:"required"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=available borrowed lost unknown"`
	Statement  string `json:"statement,omitempty" validate:"omitempty,oneof=new good damaged repair unusable"`
	CustomerID *int64 `json:"customer_id,omitempty"`
}

// CopyService manages the lifecycle of physical book copies: status
// transitions driving slot allocation and release, and the one-way
// condition grading.
type CopyService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCopyService creates a new copy service.
func NewCopyService(store store.Store, logger *slog.Logger, validator *validation.Validator) *CopyService {
	return &CopyService{
		store:     store,
		logger:    logger,
		validator: validator,
	}
}

// CreateCopy adds a copy to an existing book.
func (s *CopyService) CreateCopy(ctx context.Context, req CreateCopyRequest) (*domain.BookCopy, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	status := domain.CopyUnknown
	if req.Status != "" {
		status = domain.CopyStatus(req.Status)
	}
	statement := domain.StatementNew
	if req.Statement != "" {
		statement = domain.CopyStatement(req.Statement)
	}
	if status == domain.CopyBorrowed && req.CustomerID == nil {
		return nil, apperrors.ErrCustomerRequired
	}

	var created *domain.BookCopy
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.GetBook(ctx, req.BookID, true); err != nil {
			return err
		}

		copy := &domain.BookCopy{
			BookID:    req.BookID,
			Status:    status,
			Statement: statement,
		}
		switch status {
		case domain.CopyAvailable:
			slots, err := tx.FindFreeSlots(ctx, 1)
			if err != nil {
				return err
			}
			if err := tx.SetPlacementStatus(ctx, slots, domain.PlacementOccupied); err != nil {
				return err
			}
			copy.PlacementID = &slots[0]
		case domain.CopyBorrowed:
			if _, err := tx.GetCustomer(ctx, *req.CustomerID, false); err != nil {
				return err
			}
			copy.CustomerID = req.CustomerID
		}

		inserted, err := tx.CreateCopies(ctx, []*domain.BookCopy{copy})
		if err != nil {
			return err
		}
		created, err = tx.GetCopy(ctx, inserted[0].ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("copy created",
		"copy_id", created.ID,
		"book_id", created.BookID,
		"status", created.Status,
	)
	return created, nil
}

// ChangeStatus moves a copy between lending states. Borrowing hands the
// copy to a customer and frees its slot; making it available allocates
// a slot unless the copy still holds one; lost and unknown release
// everything.
func (s *CopyService) ChangeStatus(ctx context.Context, copyID int64, newStatus domain.CopyStatus, customerID *int64) (*domain.BookCopy, error) {
	if newStatus == domain.CopyBorrowed && customerID == nil {
		return nil, apperrors.ErrCustomerRequired
	}

	var updated *domain.BookCopy
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		copy, err := tx.GetCopy(ctx, copyID, true)
		if err != nil {
			return err
		}

		switch newStatus {
		case domain.CopyBorrowed:
			if _, err := tx.GetCustomer(ctx, *customerID, false); err != nil {
				return err
			}
			if err := releaseSlot(ctx, tx, copy); err != nil {
				return err
			}
			copy.CustomerID = customerID

		case domain.CopyAvailable:
			copy.CustomerID = nil
			if copy.PlacementID == nil {
				slots, err := tx.FindFreeSlots(ctx, 1)
				if err != nil {
					return err
				}
				if err := tx.SetPlacementStatus(ctx, slots, domain.PlacementOccupied); err != nil {
					return err
				}
				copy.PlacementID = &slots[0]
			}

		case domain.CopyLost, domain.CopyUnknown:
			if err := releaseSlot(ctx, tx, copy); err != nil {
				return err
			}
			copy.CustomerID = nil
		}

		copy.Status = newStatus
		if _, err := tx.UpdateCopy(ctx, copy); err != nil {
			return err
		}
		updated, err = tx.GetCopy(ctx, copyID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("copy status changed",
		"copy_id", copyID,
		"status", newStatus,
	)
	return updated, nil
}

// releaseSlot frees the slot held by a copy, if any.
func releaseSlot(ctx context.Context, tx store.Tx, copy *domain.BookCopy) error {
	if copy.PlacementID == nil {
		return nil
	}
	if err := tx.SetPlacementStatus(ctx, []int64{*copy.PlacementID}, domain.PlacementFree); err != nil {
		return err
	}
	copy.PlacementID = nil
	return nil
}

// ChangeStatement grades the condition of a copy. Transitions run one
// way: a graded copy never returns to new, and repair is terminal.
func (s *CopyService) ChangeStatement(ctx context.Context, copyID int64, newStatement domain.CopyStatement) (*domain.BookCopy, error) {
	var updated *domain.BookCopy
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		copy, err := tx.GetCopy(ctx, copyID, true)
		if err != nil {
			return err
		}

		if !copy.Statement.CanTransitionTo(newStatement) {
			return apperrors.ErrInvalidStatementChange.WithDetails(map[string]any{
				"from": copy.Statement,
				"to":   newStatement,
			})
		}

		copy.Statement = newStatement
		if _, err := tx.UpdateCopy(ctx, copy); err != nil {
			return err
		}
		updated, err = tx.GetCopy(ctx, copyID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("copy statement changed",
		"copy_id", copyID,
		"statement", newStatement,
	)
	return updated, nil
}

// DeleteCopy removes a copy and frees its slot. A borrowed copy cannot
// be deleted.
func (s *CopyService) DeleteCopy(ctx context.Context, copyID int64) (*domain.BookCopy, error) {
	var deleted *domain.BookCopy
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		copy, err := tx.GetCopy(ctx, copyID, true)
		if err != nil {
			return err
		}
		if copy.Status == domain.CopyBorrowed {
			return apperrors.ErrBookCopyBorrowed.WithDetails(map[string]any{
				"copy_ids": []int64{copyID},
			})
		}

		if err := releaseSlot(ctx, tx, copy); err != nil {
			return err
		}
		removed, err := tx.DeleteCopies(ctx, []int64{copyID})
		if err != nil {
			return err
		}
		deleted = removed[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("copy deleted", "copy_id", copyID)
	return deleted, nil
}

// GetCopy returns a copy with its book, placement, and holder.
func (s *CopyService) GetCopy(ctx context.Context, id int64) (*domain.BookCopy, error) {
	return s.store.GetCopy(ctx, id, false)
}

// ListByStatus returns all copies in a lending state.
func (s *CopyService) ListByStatus(ctx context.Context, status domain.CopyStatus) ([]*domain.BookCopy, error) {
	return s.store.ListCopiesByStatus(ctx, status)
}

// ListByStatement returns all copies in a condition grade.
func (s *CopyService) ListByStatement(ctx context.Context, statement domain.CopyStatement) ([]*domain.BookCopy, error) {
	return s.store.ListCopiesByStatement(ctx, statement)
}
