package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `validate:"required,min=2"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(sample{Name: "ok"}))

	err := v.Validate(sample{Name: "x"})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Name failed on the 'min' rule", he.Message)
}
