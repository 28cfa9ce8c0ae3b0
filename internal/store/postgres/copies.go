package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
)

var copyColumns = []any{
	"id", "book_id", "status", "statement", "placement_id", "customer_id",
	"created_at", "updated_at",
}

func scanCopy(row pgx.Row) (*domain.BookCopy, error) {
	var c domain.BookCopy
	err := row.Scan(&c.ID, &c.BookID, &c.Status, &c.Statement,
		&c.PlacementID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCopies(rows pgx.Rows) ([]*domain.BookCopy, error) {
	defer rows.Close()

	var copies []*domain.BookCopy
	for rows.Next() {
		c, err := scanCopy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan copy: %w", err)
		}
		copies = append(copies, c)
	}
	return copies, rows.Err()
}

func (q *queries) CreateCopies(ctx context.Context, copies []*domain.BookCopy) ([]*domain.BookCopy, error) {
	if len(copies) == 0 {
		return nil, nil
	}

	records := make([]any, len(copies))
	for i, c := range copies {
		records[i] = goqu.Record{
			"book_id":      c.BookID,
			"status":       string(c.Status),
			"statement":    string(c.Statement),
			"placement_id": c.PlacementID,
			"customer_id":  c.CustomerID,
		}
	}

	sqlStr, _, err := dialect.Insert(tableCopies).
		Rows(records...).
		Returning(copyColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, translateError(err)
	}
	created, err := collectCopies(rows)
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

func (q *queries) GetCopy(ctx context.Context, id int64, forUpdate bool) (*domain.BookCopy, error) {
	ds := dialect.From(tableCopies).
		Select(copyColumns...).
		Where(goqu.C("id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanCopy(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookCopyNotFound
		}
		return nil, fmt.Errorf("get copy: %w", err)
	}

	if err := q.hydrateCopies(ctx, []*domain.BookCopy{c}, true); err != nil {
		return nil, err
	}
	return c, nil
}

func (q *queries) ListCopiesByBook(ctx context.Context, bookID int64, forUpdate bool) ([]*domain.BookCopy, error) {
	ds := dialect.From(tableCopies).
		Select(copyColumns...).
		Where(goqu.C("book_id").Eq(bookID)).
		Order(goqu.C("id").Asc())
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("list copies by book: %w", err)
	}
	copies, err := collectCopies(rows)
	if err != nil {
		return nil, fmt.Errorf("list copies by book: %w", err)
	}

	if err := q.hydrateCopies(ctx, copies, false); err != nil {
		return nil, err
	}
	return copies, nil
}

func (q *queries) ListCopiesByStatus(ctx context.Context, status domain.CopyStatus) ([]*domain.BookCopy, error) {
	return q.listCopiesWhere(ctx, goqu.C("status").Eq(string(status)), "list copies by status")
}

func (q *queries) ListCopiesByStatement(ctx context.Context, statement domain.CopyStatement) ([]*domain.BookCopy, error) {
	return q.listCopiesWhere(ctx, goqu.C("statement").Eq(string(statement)), "list copies by statement")
}

func (q *queries) listCopiesWhere(ctx context.Context, cond exp.Expression, op string) ([]*domain.BookCopy, error) {
	sqlStr, _, err := dialect.From(tableCopies).
		Select(copyColumns...).
		Where(cond).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	copies, err := collectCopies(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := q.hydrateCopies(ctx, copies, true); err != nil {
		return nil, err
	}
	return copies, nil
}

func (q *queries) UpdateCopy(ctx context.Context, copy *domain.BookCopy) (*domain.BookCopy, error) {
	sqlStr, _, err := dialect.Update(tableCopies).
		Set(goqu.Record{
			"status":       string(copy.Status),
			"statement":    string(copy.Statement),
			"placement_id": copy.PlacementID,
			"customer_id":  copy.CustomerID,
			"updated_at":   goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(copy.ID)).
		Returning(copyColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	updated, err := scanCopy(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookCopyNotFound
		}
		return nil, translateError(err)
	}
	return updated, nil
}

func (q *queries) DeleteCopies(ctx context.Context, ids []int64) ([]*domain.BookCopy, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sqlStr, _, err := dialect.Delete(tableCopies).
		Where(goqu.C("id").In(ids)).
		Returning(copyColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("delete copies: %w", err)
	}
	return collectCopies(rows)
}

// hydrateCopies batch-loads the placement, customer, and optionally book
// rows referenced by copies and attaches them.
func (q *queries) hydrateCopies(ctx context.Context, copies []*domain.BookCopy, withBook bool) error {
	if len(copies) == 0 {
		return nil
	}

	placementIDs := make(map[int64]struct{})
	customerIDs := make(map[int64]struct{})
	bookIDs := make(map[int64]struct{})
	for _, c := range copies {
		if c.PlacementID != nil {
			placementIDs[*c.PlacementID] = struct{}{}
		}
		if c.CustomerID != nil {
			customerIDs[*c.CustomerID] = struct{}{}
		}
		if withBook {
			bookIDs[c.BookID] = struct{}{}
		}
	}

	placements, err := q.placementsByID(ctx, keys(placementIDs))
	if err != nil {
		return err
	}
	customers, err := q.customersByID(ctx, keys(customerIDs))
	if err != nil {
		return err
	}
	books, err := q.booksByID(ctx, keys(bookIDs))
	if err != nil {
		return err
	}

	for _, c := range copies {
		if c.PlacementID != nil {
			c.Placement = placements[*c.PlacementID]
		}
		if c.CustomerID != nil {
			c.Customer = customers[*c.CustomerID]
		}
		if withBook {
			c.Book = books[c.BookID]
		}
	}
	return nil
}

func (q *queries) placementsByID(ctx context.Context, ids []int64) (map[int64]*domain.Placement, error) {
	out := make(map[int64]*domain.Placement, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sqlStr, _, err := dialect.From(tablePlacements).
		Select(placementColumns...).
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("load placements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (q *queries) customersByID(ctx context.Context, ids []int64) (map[int64]*domain.Customer, error) {
	out := make(map[int64]*domain.Customer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sqlStr, _, err := dialect.From(tableCustomers).
		Select(customerColumns...).
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

func (q *queries) booksByID(ctx context.Context, ids []int64) (map[int64]*domain.Book, error) {
	out := make(map[int64]*domain.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sqlStr, _, err := dialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out[b.ID] = b
	}
	return out, rows.Err()
}

func keys(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
