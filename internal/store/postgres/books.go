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

var bookColumns = []any{
	"id", "title", "publisher", "place_of_publication", "published_year",
	"isbn", "pages", "price", "language", "created_at", "updated_at",
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Publisher, &b.PlaceOfPublication,
		&b.PublishedYear, &b.ISBN, &b.Pages, &b.Price, &b.Language,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]*domain.Book, error) {
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (q *queries) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	sqlStr, _, err := dialect.Insert(tableBooks).
		Rows(goqu.Record{
			"title":                book.Title,
			"publisher":            book.Publisher,
			"place_of_publication": book.PlaceOfPublication,
			"published_year":       book.PublishedYear,
			"isbn":                 book.ISBN,
			"pages":                book.Pages,
			"price":                book.Price,
			"language":             book.Language,
		}).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanBook(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

func (q *queries) GetBook(ctx context.Context, id int64, forUpdate bool) (*domain.Book, error) {
	ds := dialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	b, err := scanBook(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	if err := q.loadBookRelations(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (q *queries) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	sqlStr, _, err := dialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("isbn").Eq(isbn)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	b, err := scanBook(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book by isbn: %w", err)
	}

	if err := q.loadBookRelations(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// loadBookRelations hydrates b.Authors and b.Copies.
func (q *queries) loadBookRelations(ctx context.Context, b *domain.Book) error {
	authorsSQL, _, err := dialect.From(tableAuthors).
		Select(prefixColumns(tableAuthors, authorColumns)...).
		Join(goqu.T(tableBookAuthors),
			goqu.On(goqu.I(tableBookAuthors+".author_id").Eq(goqu.I(tableAuthors+".id")))).
		Where(goqu.I(tableBookAuthors + ".book_id").Eq(b.ID)).
		Order(goqu.I(tableAuthors + ".id").Asc()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, authorsSQL)
	if err != nil {
		return fmt.Errorf("load book authors: %w", err)
	}
	authors, err := collectAuthors(rows)
	if err != nil {
		return fmt.Errorf("load book authors: %w", err)
	}
	b.Authors = authors

	copies, err := q.ListCopiesByBook(ctx, b.ID, false)
	if err != nil {
		return err
	}
	b.Copies = copies
	return nil
}

func (q *queries) DeleteBooks(ctx context.Context, ids []int64) ([]*domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	linkSQL, _, err := dialect.Delete(tableBookAuthors).
		Where(goqu.C("book_id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if _, err := q.q.Exec(ctx, linkSQL); err != nil {
		return nil, fmt.Errorf("delete book links: %w", err)
	}

	sqlStr, _, err := dialect.Delete(tableBooks).
		Where(goqu.C("id").In(ids)).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("delete books: %w", err)
	}
	return collectBooks(rows)
}

func (q *queries) BookIDsWithoutCopies(ctx context.Context, forUpdate bool) ([]int64, error) {
	sub := dialect.From(tableCopies).
		Select(goqu.L("1")).
		Where(goqu.I(tableCopies + ".book_id").Eq(goqu.I(tableBooks + ".id")))

	ds := dialect.From(tableBooks).
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

	return q.collectIDs(ctx, sqlStr, "books without copies")
}
