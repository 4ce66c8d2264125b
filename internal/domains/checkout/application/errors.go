package application

import (
	"errors"
	"fmt"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid checkout input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrMissingItemName) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
