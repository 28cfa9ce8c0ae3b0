package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookzapp/bookz-server/internal/errors"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
	Year  int    `json:"year" validate:"gte=1700,lte=2100"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{
		Email: "john.doe@example.com",
		Phone: "+38 (066) 644-32-27",
		Year:  1984,
	})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{
		Email: "not-an-email",
		Phone: "what",
		Year:  1500,
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "year")
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("0441234567"))
	assert.True(t, ValidPhone("+380 66 644 32 27"))
	assert.False(t, ValidPhone("call me maybe"))
	assert.False(t, ValidPhone(""))
}
