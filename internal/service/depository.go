// Package service provides the business logic layer: placement
// allocation, the book-copy lifecycle, and the author, book, and
// customer use cases. Every multi-step operation runs inside a single
// store transaction.
package service

import (
	"context"
	"log/slog"

	"github.com/bookzapp/bookz-server/internal/store"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// InitGridRequest describes the placement grid to build. Lines and
// shelves are labelled A.. so both are capped at 26.
type InitGridRequest struct {
	Lines     int `json:"lines" validate:"gte=1,lte=26"`
	Columns   int `json:"columns" validate:"gte=1"`
	Shelves   int `json:"shelves" validate:"gte=1,lte=26"`
	Positions int `json:"positions" validate:"gte=1"`
}

// DepositoryService manages the placement grid.
type DepositoryService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewDepositoryService creates a new depository service.
func NewDepositoryService(store store.Store, logger *slog.Logger, validator *validation.Validator) *DepositoryService {
	return &DepositoryService{
		store:     store,
		logger:    logger,
		validator: validator,
	}
}

// InitGrid rebuilds the placement grid. All existing placements are
// dropped and every copy loses its slot, so this is meant for a fresh
// or reset depository.
func (s *DepositoryService) InitGrid(ctx context.Context, req InitGridRequest) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	var total int
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		total, err = tx.ReplaceGrid(ctx, req.Lines, req.Columns, req.Shelves, req.Positions)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("depository grid initialised",
		"lines", req.Lines,
		"columns", req.Columns,
		"shelves", req.Shelves,
		"positions", req.Positions,
		"slots", total,
	)
	return total, nil
}

// Status returns the occupancy summary of the grid.
func (s *DepositoryService) Status(ctx context.Context) (*store.DepositorySummary, error) {
	return s.store.CapacitySummary(ctx)
}
