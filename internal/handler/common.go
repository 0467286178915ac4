package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/internal/service"
)

// principalFromCtx rebuilds the acting principal from middleware
// locals. An anonymous request yields a zero principal.
func principalFromCtx(c *fiber.Ctx) permission.Principal {
	authenticated, _ := c.Locals("authenticated").(bool)
	if !authenticated {
		return permission.Principal{}
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin, _ := c.Locals("isAdmin").(bool)
	return permission.Principal{
		UserID:        userID,
		IsAdmin:       isAdmin,
		Authenticated: true,
	}
}

// serviceError maps service sentinels onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	var duplicateErr *service.DuplicateIngredientError
	var amountErr *service.AmountOutOfRangeError

	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrIngredientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrRecipeNameTaken),
		errors.Is(err, service.ErrNoIngredients),
		errors.Is(err, service.ErrInvalidUnit),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrSelfSubscription),
		errors.Is(err, service.ErrNotSubscribed),
		errors.As(err, &duplicateErr),
		errors.As(err, &amountErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFavorited),
		errors.Is(err, service.ErrNotInCart):
		// Legacy contract: deleting an absent favorite/cart row is a
		// bare 400 with no message.
		return c.SendStatus(fiber.StatusBadRequest)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
}
