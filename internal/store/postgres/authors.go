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

var authorColumns = []any{
	"id", "first_name", "last_name", "middle_name", "created_at", "updated_at",
}

func scanAuthor(row pgx.Row) (*domain.Author, error) {
	var a domain.Author
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.MiddleName,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAuthors(rows pgx.Rows) ([]*domain.Author, error) {
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (q *queries) CreateAuthor(ctx context.Context, name domain.FullName) (*domain.Author, error) {
	sqlStr, _, err := dialect.Insert(tableAuthors).
		Rows(goqu.Record{
			"first_name":  name.FirstName,
			"last_name":   name.LastName,
			"middle_name": name.MiddleName,
		}).
		Returning(authorColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	a, err := scanAuthor(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

func (q *queries) UpdateAuthor(ctx context.Context, id int64, name domain.FullName) (*domain.Author, error) {
	sqlStr, _, err := dialect.Update(tableAuthors).
		Set(goqu.Record{
			"first_name":  name.FirstName,
			"last_name":   name.LastName,
			"middle_name": name.MiddleName,
			"updated_at":  goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(id)).
		Returning(authorColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	a, err := scanAuthor(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, translateError(err)
	}
	return a, nil
}

func (q *queries) GetAuthor(ctx context.Context, id int64, forUpdate bool) (*domain.Author, error) {
	ds := dialect.From(tableAuthors).
		Select(authorColumns...).
		Where(goqu.C("id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	a, err := scanAuthor(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	if err := q.loadAuthorBooks(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (q *queries) GetAuthorByName(ctx context.Context, name domain.FullName, forUpdate bool) (*domain.Author, error) {
	ds := dialect.From(tableAuthors).
		Select(authorColumns...).
		Where(
			goqu.C("first_name").Eq(name.FirstName),
			goqu.C("last_name").Eq(name.LastName),
			goqu.C("middle_name").Eq(name.MiddleName),
		)
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	a, err := scanAuthor(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author by name: %w", err)
	}

	if err := q.loadAuthorBooks(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// loadAuthorBooks hydrates a.Books with the linked book rows.
func (q *queries) loadAuthorBooks(ctx context.Context, a *domain.Author) error {
	sqlStr, _, err := dialect.From(tableBooks).
		Select(prefixColumns(tableBooks, bookColumns)...).
		Join(goqu.T(tableBookAuthors),
			goqu.On(goqu.I(tableBookAuthors+".book_id").Eq(goqu.I(tableBooks+".id")))).
		Where(goqu.I(tableBookAuthors + ".author_id").Eq(a.ID)).
		Order(goqu.I(tableBooks + ".id").Asc()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("load author books: %w", err)
	}

	books, err := collectBooks(rows)
	if err != nil {
		return fmt.Errorf("load author books: %w", err)
	}
	a.Books = books
	return nil
}

func (q *queries) DeleteAuthors(ctx context.Context, ids []int64) ([]*domain.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	linkSQL, _, err := dialect.Delete(tableBookAuthors).
		Where(goqu.C("author_id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if _, err := q.q.Exec(ctx, linkSQL); err != nil {
		return nil, fmt.Errorf("delete author links: %w", err)
	}

	sqlStr, _, err := dialect.Delete(tableAuthors).
		Where(goqu.C("id").In(ids)).
		Returning(authorColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("delete authors: %w", err)
	}
	return collectAuthors(rows)
}

func (q *queries) AuthorIDsWithoutBooks(ctx context.Context, forUpdate bool) ([]int64, error) {
	// FOR UPDATE cannot lock the outer join of a LEFT JOIN, so the
	// absence of links is checked with NOT EXISTS instead.
	sub := dialect.From(tableBookAuthors).
		Select(goqu.L("1")).
		Where(goqu.I(tableBookAuthors + ".author_id").Eq(goqu.I(tableAuthors + ".id")))

	ds := dialect.From(tableAuthors).
		Select("id").
		Where(goqu.L("NOT EXISTS ?", sub)).
		Order(goqu.C("id").Asc())
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return q.collectIDs(ctx, sqlStr, "authors without books")
}

func (q *queries) BookIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error) {
	sqlStr, _, err := dialect.From(tableBookAuthors).
		Select("book_id").
		Where(goqu.C("author_id").Eq(authorID)).
		Order(goqu.C("book_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return q.collectIDs(ctx, sqlStr, "books by author")
}

func (q *queries) LinkBookAuthor(ctx context.Context, bookID, authorID int64) error {
	sqlStr, _, err := dialect.Insert(tableBookAuthors).
		Rows(goqu.Record{"book_id": bookID, "author_id": authorID}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.q.Exec(ctx, sqlStr); err != nil {
		return fmt.Errorf("link book author: %w", err)
	}
	return nil
}

func (q *queries) collectIDs(ctx context.Context, sqlStr, op string) ([]int64, error) {
	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// prefixColumns qualifies bare column names with a table for joins.
func prefixColumns(table string, cols []any) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = goqu.I(table + "." + c.(string))
	}
	return out
}
