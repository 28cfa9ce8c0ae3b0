package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookzapp/bookz-server/internal/errors"
)

func TestInitGridAndStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	total, err := e.depository.InitGrid(ctx, InitGridRequest{
		Lines: 2, Columns: 3, Shelves: 2, Positions: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 48, total)

	summary, err := e.depository.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 48, summary.TotalSlots)
	assert.Equal(t, 48, summary.Free)
	assert.Equal(t, 0, summary.Occupied)
	assert.Equal(t, "B", summary.MaxLine)
	assert.Equal(t, 3, summary.MaxColumn)
	assert.Equal(t, "B", summary.MaxShelf)
	assert.Equal(t, 4, summary.MaxPosition)
}

func TestInitGridRejectsBadDimensions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.depository.InitGrid(ctx, InitGridRequest{
		Lines: 27, Columns: 1, Shelves: 1, Positions: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.depository.InitGrid(ctx, InitGridRequest{
		Lines: 1, Columns: 0, Shelves: 1, Positions: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
