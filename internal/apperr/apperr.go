package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// UnknownRestaurantError is returned when a restaurant name is not in the catalog.
type UnknownRestaurantError struct {
	Name string
}

func (e *UnknownRestaurantError) Error() string {
	return fmt.Sprintf("Restaurant '%s' not found.", e.Name)
}

func (e *UnknownRestaurantError) Is(target error) bool {
	return target == ErrNotFound
}
