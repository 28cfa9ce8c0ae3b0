package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
)

var placementColumns = []any{
	"id", "line_id", "column_id", "shelf_id", "position", "status",
	"created_at", "updated_at",
}

func scanPlacement(row pgx.Row) (*domain.Placement, error) {
	var p domain.Placement
	err := row.Scan(&p.ID, &p.Line, &p.Column, &p.Shelf, &p.Position, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindFreeSlots locks and returns the ids of up to n free slots in id
// order. The caller must be inside a transaction, otherwise the locks are
// released immediately.
func (q *queries) FindFreeSlots(ctx context.Context, n int) ([]int64, error) {
	sqlStr, _, err := dialect.From(tablePlacements).
		Select("id").
		Where(goqu.C("status").Eq(string(domain.PlacementFree))).
		Order(goqu.C("id").Asc()).
		Limit(uint(n)).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("find free slots: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, n)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan slot id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find free slots: %w", err)
	}

	if len(ids) < n {
		return nil, apperrors.InsufficientCapacityf(
			"need %d free placements, only %d available", n, len(ids))
	}
	return ids, nil
}

func (q *queries) SetPlacementStatus(ctx context.Context, ids []int64, status domain.PlacementStatus) error {
	if len(ids) == 0 {
		return nil
	}

	sqlStr, _, err := dialect.Update(tablePlacements).
		Set(goqu.Record{"status": string(status), "updated_at": goqu.L("now()")}).
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.q.Exec(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("set placement status: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return apperrors.NotFoundf("placement update touched %d of %d rows",
			tag.RowsAffected(), len(ids))
	}
	return nil
}

func (q *queries) GetPlacement(ctx context.Context, id int64) (*domain.Placement, error) {
	sqlStr, _, err := dialect.From(tablePlacements).
		Select(placementColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p, err := scanPlacement(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("placement %d not found", id)
		}
		return nil, fmt.Errorf("get placement: %w", err)
	}
	return p, nil
}

// ReplaceGrid rebuilds the placement grid from scratch. Book copies keep
// their rows but lose their placement references, so callers normally
// run this only against an empty or freshly reset depository.
func (q *queries) ReplaceGrid(ctx context.Context, lines, columns, shelves, positions int) (int, error) {
	if _, err := q.q.Exec(ctx,
		"UPDATE "+tableCopies+" SET placement_id = NULL WHERE placement_id IS NOT NULL"); err != nil {
		return 0, fmt.Errorf("detach copies: %w", err)
	}
	if _, err := q.q.Exec(ctx, "DELETE FROM "+tablePlacements); err != nil {
		return 0, fmt.Errorf("clear placements: %w", err)
	}

	const chunkSize = 500
	records := make([]any, 0, chunkSize)
	total := 0

	flush := func() error {
		if len(records) == 0 {
			return nil
		}
		sqlStr, _, err := dialect.Insert(tablePlacements).Rows(records...).ToSQL()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := q.q.Exec(ctx, sqlStr); err != nil {
			return fmt.Errorf("insert placements: %w", err)
		}
		records = records[:0]
		return nil
	}

	for line := 0; line < lines; line++ {
		for column := 1; column <= columns; column++ {
			for shelf := 0; shelf < shelves; shelf++ {
				for position := 1; position <= positions; position++ {
					records = append(records, goqu.Record{
						"line_id":   string(rune('A' + line)),
						"column_id": column,
						"shelf_id":  string(rune('A' + shelf)),
						"position":  position,
						"status":    string(domain.PlacementFree),
					})
					total++
					if len(records) == chunkSize {
						if err := flush(); err != nil {
							return 0, err
						}
					}
				}
			}
		}
	}
	if err := flush(); err != nil {
		return 0, err
	}

	q.logger.Info("placement grid rebuilt",
		"lines", lines, "columns", columns, "shelves", shelves,
		"positions", positions, "slots", total)
	return total, nil
}

func (q *queries) CapacitySummary(ctx context.Context) (*store.DepositorySummary, error) {
	const sqlStr = `
SELECT count(*),
       count(*) FILTER (WHERE status = 'occupied'),
       count(*) FILTER (WHERE status = 'free'),
       coalesce(max(line_id), ''),
       coalesce(max(column_id), 0),
       coalesce(max(shelf_id), ''),
       coalesce(max(position), 0)
FROM placements`

	var s store.DepositorySummary
	err := q.q.QueryRow(ctx, sqlStr).Scan(&s.TotalSlots, &s.Occupied, &s.Free,
		&s.MaxLine, &s.MaxColumn, &s.MaxShelf, &s.MaxPosition)
	if err != nil {
		return nil, fmt.Errorf("capacity summary: %w", err)
	}
	return &s, nil
}
