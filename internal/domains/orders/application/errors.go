package application

import (
	"errors"
	"fmt"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrBasketNotFound signals checkout referenced an unknown basket.
	ErrBasketNotFound = errors.New("basket not found")
	// ErrEmptyBasket signals checkout on a basket without items.
	ErrEmptyBasket = errors.New("cannot checkout an empty basket")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingBuyer) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidUnits) ||
		errors.Is(err, domain.ErrMissingProductName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrIncompleteAddress) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
