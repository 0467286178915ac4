package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/service"
	"github.com/sefazor/recipebook-backend/pkg/validator"
)

type UserHandler struct {
	userService         *service.UserService
	subscriptionService *service.SubscriptionService
	validator           *validator.Validator
}

func NewUserHandler(userService *service.UserService, subscriptionService *service.SubscriptionService, validator *validator.Validator) *UserHandler {
	return &UserHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		validator:           validator,
	}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context(), principalFromCtx(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(users, "Users retrieved successfully"))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	user, err := h.userService.GetUser(c.Context(), uint(userID), principalFromCtx(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "User retrieved successfully"))
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	principal := principalFromCtx(c)
	user, err := h.userService.GetUser(c.Context(), principal.UserID, principal)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Profile retrieved successfully"))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(validator.FieldErrors(err)))
	}

	user, err := h.userService.UpdateProfile(c.Context(), principalFromCtx(c).UserID, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(validator.FieldErrors(err)))
	}

	if err := h.userService.ChangePassword(c.Context(), principalFromCtx(c).UserID, req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Password changed successfully"))
}

// GetSubscriptions lists the caller's subscribed authors with recipe
// previews; recipes_limit caps previews per author.
func (h *UserHandler) GetSubscriptions(c *fiber.Ctx) error {
	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipes_limit"))
		}
		recipesLimit = parsed
	}

	subscriptions, err := h.subscriptionService.List(c.Context(), principalFromCtx(c).UserID, recipesLimit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(subscriptions, "Subscriptions retrieved successfully"))
}

func (h *UserHandler) Subscribe(c *fiber.Ctx) error {
	authorID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	subscription, err := h.subscriptionService.Subscribe(c.Context(), principalFromCtx(c).UserID, uint(authorID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(subscription, "Subscribed successfully"))
}

func (h *UserHandler) Unsubscribe(c *fiber.Ctx) error {
	authorID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	if err := h.subscriptionService.Unsubscribe(c.Context(), principalFromCtx(c).UserID, uint(authorID)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
