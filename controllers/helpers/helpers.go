package helpers

import (
	"errors"

	"github.com/gookit/validate"

	"github.com/lumibank/coreledger/models"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Validate(payload interface{}, errSrc *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				errSrc.Errors = append(errSrc.Errors, err)
			}
		}
	}
}

// StatusFor maps domain errors onto HTTP statuses: unknown resources are
// 404, rejected operations 422, anything else is a storage fault.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrAccountNotFound), errors.Is(err, models.ErrOrderNotFound):
		return 404
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidFrequency),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrTermLocked),
		errors.Is(err, models.ErrAccountClosed),
		errors.Is(err, models.ErrSameAccount),
		errors.Is(err, models.ErrOrderNotActive):
		return 422
	default:
		return 500
	}
}
