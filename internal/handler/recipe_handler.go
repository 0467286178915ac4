package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
	"github.com/sefazor/recipebook-backend/internal/service"
	"github.com/sefazor/recipebook-backend/pkg/validator"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	favoriteService *service.FavoriteService
	cartService     *service.ShoppingCartService
	validator       *validator.Validator
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	favoriteService *service.FavoriteService,
	cartService *service.ShoppingCartService,
	validator *validator.Validator,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		cartService:     cartService,
		validator:       validator,
	}
}

func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	filter := repository.RecipeFilter{}

	// repeated keys: ?tags=breakfast&tags=dinner
	filter.TagSlugs = splitQueryList(c, "tags")
	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid author ID"))
		}
		filter.AuthorID = uint(authorID)
	}
	if flag, err := parseFlag(c, "is_favorited"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("is_favorited must be 0 or 1"))
	} else {
		filter.Favorited = flag
	}
	if flag, err := parseFlag(c, "is_in_shopping_cart"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("is_in_shopping_cart must be 0 or 1"))
	} else {
		filter.InCart = flag
	}

	recipes, err := h.recipeService.ListRecipes(c.Context(), filter, principalFromCtx(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(recipes, "Recipes retrieved successfully"))
}

func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	recipe, err := h.recipeService.GetRecipe(c.Context(), uint(recipeID), principalFromCtx(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(recipe, "Recipe retrieved successfully"))
}

func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var req models.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(validator.FieldErrors(err)))
	}

	recipe, err := h.recipeService.CreateRecipe(c.Context(), principalFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(recipe, "Recipe created successfully"))
}

func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	var req models.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(validator.FieldErrors(err)))
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Context(), principalFromCtx(c), uint(recipeID), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(recipe, "Recipe updated successfully"))
}

func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), principalFromCtx(c), uint(recipeID)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	recipe, err := h.favoriteService.Add(c.Context(), principalFromCtx(c).UserID, uint(recipeID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(recipe, "Recipe added to favorites"))
}

func (h *RecipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	if err := h.favoriteService.Remove(c.Context(), principalFromCtx(c).UserID, uint(recipeID)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecipeHandler) AddToCart(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	recipe, err := h.cartService.Add(c.Context(), principalFromCtx(c).UserID, uint(recipeID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(recipe, "Recipe added to shopping cart"))
}

func (h *RecipeHandler) RemoveFromCart(c *fiber.Ctx) error {
	recipeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid recipe ID"))
	}

	if err := h.cartService.Remove(c.Context(), principalFromCtx(c).UserID, uint(recipeID)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart streams the aggregated shopping list as a text
// attachment named <username>_shopping_list.txt.
func (h *RecipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	filename, content, err := h.cartService.BuildShoppingList(c.Context(), principalFromCtx(c).UserID)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(content)
}

// parseFlag reads a 0/1 query parameter into a nullable bool.
func parseFlag(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	switch raw {
	case "1":
		value := true
		return &value, nil
	case "0":
		value := false
		return &value, nil
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid flag")
	}
}

func splitQueryList(c *fiber.Ctx, name string) []string {
	var values []string
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if string(key) == name && len(value) > 0 {
			values = append(values, string(value))
		}
	})
	return values
}
