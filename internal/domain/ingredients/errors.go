package ingredients

import "errors"

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("ingredient tag not found")
	ErrNameRequired       = errors.New("name is required")
)
