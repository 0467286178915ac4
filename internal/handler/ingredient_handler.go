package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/internal/service"
	"github.com/sefazor/recipebook-backend/pkg/validator"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
	validator         *validator.Validator
}

func NewIngredientHandler(ingredientService *service.IngredientService, validator *validator.Validator) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

// ListIngredients supports case-insensitive name prefix search via the
// "name" query parameter.
func (h *IngredientHandler) ListIngredients(c *fiber.Ctx) error {
	ingredients, err := h.ingredientService.Search(c.Context(), c.Query("name"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(ingredients, "Ingredients retrieved successfully"))
}

func (h *IngredientHandler) GetIngredient(c *fiber.Ctx) error {
	ingredientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid ingredient ID"))
	}

	ingredient, err := h.ingredientService.Get(c.Context(), uint(ingredientID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(ingredient, "Ingredient retrieved successfully"))
}

func (h *IngredientHandler) CreateIngredient(c *fiber.Ctx) error {
	if !permission.ReadOpenWriteAdminOnly(c.Method(), principalFromCtx(c)) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(service.ErrForbidden.Error()))
	}

	var req models.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(validator.FieldErrors(err)))
	}

	ingredient, err := h.ingredientService.Create(c.Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(ingredient, "Ingredient created successfully"))
}

func (h *IngredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	if !permission.ReadOpenWriteAdminOnly(c.Method(), principalFromCtx(c)) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(service.ErrForbidden.Error()))
	}

	ingredientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid ingredient ID"))
	}

	if err := h.ingredientService.Delete(c.Context(), uint(ingredientID)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
