package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate returns a 400 HTTP error describing the first failed rule
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return echo.NewHTTPError(http.StatusBadRequest, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
