package service

import (
	"errors"
	"fmt"
)

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")

	ErrRecipeNameTaken = errors.New("a recipe with this name already exists")
	ErrNoIngredients   = errors.New("recipe needs at least one ingredient")
	ErrInvalidUnit     = errors.New("unknown measurement unit")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")

	ErrAlreadySubscribed = errors.New("you are already subscribed to this author")
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrNotSubscribed     = errors.New("you are not subscribed to this author")

	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrUsernameTaken      = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrConflict marks a duplicate that slipped past the advisory
	// pre-check and was caught by the unique constraint instead.
	ErrConflict = errors.New("conflicting concurrent request")
)

// DuplicateIngredientError names the ingredient that appears more than
// once in a recipe payload.
type DuplicateIngredientError struct {
	IngredientID uint
	Name         string
}

func (e *DuplicateIngredientError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("duplicate ingredient in recipe: %s", e.Name)
	}
	return fmt.Sprintf("duplicate ingredient in recipe: id %d", e.IngredientID)
}

// AmountOutOfRangeError reports an ingredient line whose amount falls
// outside the configured policy bounds.
type AmountOutOfRangeError struct {
	IngredientID uint
	Amount       int
	Min          int
	Max          int
}

func (e *AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("ingredient %d amount %d is out of range [%d, %d]",
		e.IngredientID, e.Amount, e.Min, e.Max)
}
