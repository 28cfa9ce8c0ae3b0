package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookzapp/bookz-server/internal/errors"
)

func TestCreateCustomerCanonicalisesPhone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.customers.CreateCustomer(ctx, customerRequest("olena@example.com", "0441234567"))
	require.NoError(t, err)
	assert.Equal(t, "+380 44 123 45 67", created.Phone)
}

func TestCreateCustomerRejectsBadInput(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.customers.CreateCustomer(ctx, customerRequest("not-an-email", "0441234567"))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.customers.CreateCustomer(ctx, customerRequest("olena@example.com", "call me maybe"))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "phone")
}

func TestCreateCustomerUniqueViolations(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.customers.CreateCustomer(ctx, customerRequest("olena@example.com", "0441234567"))
	require.NoError(t, err)

	dup := customerRequest("olena@example.com", "0666443227")
	dup.FirstName = "Inna"
	_, err = e.customers.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrCustomerEmailExists)

	// Same digits in a different loose format collide after
	// canonicalisation.
	dup = customerRequest("inna@example.com", "+38 (044) 123-45-67")
	dup.FirstName = "Inna"
	_, err = e.customers.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrCustomerPhoneExists)

	dup = customerRequest("inna@example.com", "0666443227")
	_, err = e.customers.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrCustomerFullNameExists)
}

func TestChangePhoneAndEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.customers.CreateCustomer(ctx, customerRequest("olena@example.com", "0441234567"))
	require.NoError(t, err)

	updated, err := e.customers.ChangePhone(ctx, created.ID, "066-644-32-27")
	require.NoError(t, err)
	assert.Equal(t, "+380 66 644 32 27", updated.Phone)

	updated, err = e.customers.ChangeEmail(ctx, created.ID, "olena.k@example.com")
	require.NoError(t, err)
	assert.Equal(t, "olena.k@example.com", updated.Email)

	_, err = e.customers.ChangePhone(ctx, created.ID, "nope")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.customers.ChangePhone(ctx, 9999, "0441234567")
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestCustomerLookups(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.customers.CreateCustomer(ctx, customerRequest("olena@example.com", "0441234567"))
	require.NoError(t, err)

	byEmail, err := e.customers.GetCustomerByEmail(ctx, "olena@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	// Loose input format still finds the canonical stored phone.
	byPhone, err := e.customers.GetCustomerByPhone(ctx, "(044) 123 45 67")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPhone.ID)

	byName, err := e.customers.GetCustomerByName(ctx, CustomerName{
		FirstName: "Olena", LastName: "Kovalenko",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = e.customers.GetCustomerByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}
