package validator

import (
	"testing"

	"freelink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string          `json:"name" validate:"required,min=2"`
	Email string          `json:"email" validate:"required,email"`
	Role  models.UserRole `json:"role" validate:"omitempty,is-user-role"`
}

type profileForm struct {
	Size     models.CompanySize       `form:"size" validate:"required,is-company-size"`
	Status   models.VacancyStatus     `form:"status" validate:"omitempty,is-vacancy-status"`
	Decision models.ApplicationStatus `json:"decision" validate:"omitempty,is-application-decision"`
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&signup{Name: "A", Email: "nope", Role: "admin"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be at least 2 characters long", vErr.Errors["name"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be one of: company, freelancer", vErr.Errors["role"])
	assert.Contains(t, vErr.Error(), "field 'email'")

	assert.NoError(t, v.Validate(&signup{Name: "Ana", Email: "ana@example.com"}))
	assert.NoError(t, v.Validate(&signup{Name: "Ana", Email: "ana@example.com", Role: models.UserRoleCompany}))
}

func TestValidate_ClosedEnums(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&profileForm{Size: models.CompanySizeLarge, Status: models.VacancyStatusClosed, Decision: models.ApplicationStatusRejected}))

	err := v.Validate(&profileForm{Size: "huge", Status: "archived", Decision: models.ApplicationStatusPending})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 3)
	assert.Contains(t, vErr.Errors, "size")
	assert.Contains(t, vErr.Errors, "status")
	assert.Contains(t, vErr.Errors, "decision")
}
