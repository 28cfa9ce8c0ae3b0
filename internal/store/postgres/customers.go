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

var customerColumns = []any{
	"id", "first_name", "last_name", "middle_name", "email", "phone",
	"created_at", "updated_at",
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.MiddleName,
		&c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *queries) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	sqlStr, _, err := dialect.Insert(tableCustomers).
		Rows(goqu.Record{
			"first_name":  customer.FirstName,
			"last_name":   customer.LastName,
			"middle_name": customer.MiddleName,
			"email":       customer.Email,
			"phone":       customer.Phone,
		}).
		Returning(customerColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanCustomer(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

func (q *queries) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	sqlStr, _, err := dialect.Update(tableCustomers).
		Set(goqu.Record{
			"first_name":  customer.FirstName,
			"last_name":   customer.LastName,
			"middle_name": customer.MiddleName,
			"email":       customer.Email,
			"phone":       customer.Phone,
			"updated_at":  goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(customer.ID)).
		Returning(customerColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	updated, err := scanCustomer(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, translateError(err)
	}
	return updated, nil
}

func (q *queries) GetCustomer(ctx context.Context, id int64, forUpdate bool) (*domain.Customer, error) {
	ds := dialect.From(tableCustomers).
		Select(customerColumns...).
		Where(goqu.C("id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}
	sqlStr, _, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanCustomer(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if err := q.loadBorrowedCopies(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (q *queries) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return q.getCustomerWhere(ctx, goqu.C("email").Eq(email), "get customer by email")
}

func (q *queries) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return q.getCustomerWhere(ctx, goqu.C("phone").Eq(phone), "get customer by phone")
}

func (q *queries) GetCustomerByName(ctx context.Context, name domain.FullName) (*domain.Customer, error) {
	return q.getCustomerWhere(ctx, goqu.And(
		goqu.C("first_name").Eq(name.FirstName),
		goqu.C("last_name").Eq(name.LastName),
		goqu.C("middle_name").Eq(name.MiddleName),
	), "get customer by name")
}

func (q *queries) getCustomerWhere(ctx context.Context, cond exp.Expression, op string) (*domain.Customer, error) {
	sqlStr, _, err := dialect.From(tableCustomers).
		Select(customerColumns...).
		Where(cond).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanCustomer(q.q.QueryRow(ctx, sqlStr))
	if err != nil {
		if apperrors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := q.loadBorrowedCopies(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// loadBorrowedCopies hydrates c.BorrowedCopies with the copies currently
// held by the customer, each with its book attached.
func (q *queries) loadBorrowedCopies(ctx context.Context, c *domain.Customer) error {
	sqlStr, _, err := dialect.From(tableCopies).
		Select(copyColumns...).
		Where(goqu.C("customer_id").Eq(c.ID)).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := q.q.Query(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("load borrowed copies: %w", err)
	}
	copies, err := collectCopies(rows)
	if err != nil {
		return fmt.Errorf("load borrowed copies: %w", err)
	}

	if err := q.hydrateCopies(ctx, copies, true); err != nil {
		return err
	}
	// The holder is the customer in hand, drop the back-reference.
	for _, bc := range copies {
		bc.Customer = nil
	}
	c.BorrowedCopies = copies
	return nil
}
