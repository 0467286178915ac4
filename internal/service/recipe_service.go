package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/internal/repository"
	"github.com/sefazor/recipebook-backend/pkg/storage"
)

type RecipeService struct {
	recipeRepo       repository.RecipeRepository
	tagRepo          repository.TagRepository
	ingredientRepo   repository.IngredientRepository
	favoriteRepo     repository.FavoriteRepository
	cartRepo         repository.ShoppingCartRepository
	subscriptionRepo repository.SubscriptionRepository
	images           storage.ImageStorage
	minAmount        int
	maxAmount        int
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	subscriptionRepo repository.SubscriptionRepository,
	images storage.ImageStorage,
	minAmount, maxAmount int,
) *RecipeService {
	return &RecipeService{
		recipeRepo:       recipeRepo,
		tagRepo:          tagRepo,
		ingredientRepo:   ingredientRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		images:           images,
		minAmount:        minAmount,
		maxAmount:        maxAmount,
	}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, principal permission.Principal, req models.RecipeRequest) (*models.RecipeResponse, error) {
	taken, err := s.recipeRepo.NameExists(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrRecipeNameTaken
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	// The ingredient set is validated in full before anything is
	// persisted; a rejected payload leaves no partial lines behind.
	lines, err := s.buildIngredientLines(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    principal.UserID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imagePath,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepo.Create(ctx, recipe, tags, lines); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRecipeNameTaken
		}
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID, principal)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, principal permission.Principal, id uint, req models.UpdateRecipeRequest) (*models.RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if !permission.ReadOpenWriteAuthorOrAdmin("PATCH", principal, recipe.AuthorID) {
		return nil, ErrForbidden
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildIngredientLines(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	// Scalars are replaced only when provided; the author is never
	// reassigned on update.
	if req.Name != nil && *req.Name != recipe.Name {
		taken, err := s.recipeRepo.NameExists(ctx, *req.Name, recipe.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrRecipeNameTaken
		}
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Image != nil && *req.Image != "" {
		imagePath, err := s.storeImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = imagePath
	}

	if err := s.recipeRepo.Update(ctx, recipe, tags, lines); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRecipeNameTaken
		}
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID, principal)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, principal permission.Principal, id uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if !permission.ReadOpenWriteAuthorOrAdmin("DELETE", principal, recipe.AuthorID) {
		return ErrForbidden
	}

	return s.recipeRepo.Delete(ctx, id)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, viewer permission.Principal) (*models.RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, recipe, viewer)
}

func (s *RecipeService) ListRecipes(ctx context.Context, filter repository.RecipeFilter, viewer permission.Principal) ([]models.RecipeResponse, error) {
	filter.ViewerID = 0
	if viewer.Authenticated {
		filter.ViewerID = viewer.UserID
	}

	recipes, err := s.recipeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]models.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		response, err := s.buildResponse(ctx, &recipes[i], viewer)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (s *RecipeService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	tags, err := s.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

// buildIngredientLines validates the full ingredient payload: at least
// one line, no repeated ingredient, every amount within the policy
// bounds, every referenced ingredient present.
func (s *RecipeService) buildIngredientLines(ctx context.Context, reqLines []models.IngredientLineRequest) ([]models.RecipeIngredient, error) {
	if len(reqLines) == 0 {
		return nil, ErrNoIngredients
	}

	ids := make([]uint, 0, len(reqLines))
	for _, line := range reqLines {
		ids = append(ids, line.ID)
	}

	ingredients, err := s.ingredientRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		byID[ingredient.ID] = ingredient
	}

	seen := make(map[uint]bool, len(reqLines))
	lines := make([]models.RecipeIngredient, 0, len(reqLines))
	for _, line := range reqLines {
		ingredient, ok := byID[line.ID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrIngredientNotFound, line.ID)
		}
		if seen[line.ID] {
			return nil, &DuplicateIngredientError{IngredientID: line.ID, Name: ingredient.Name}
		}
		seen[line.ID] = true

		if line.Amount < s.minAmount || line.Amount > s.maxAmount {
			return nil, &AmountOutOfRangeError{
				IngredientID: line.ID,
				Amount:       line.Amount,
				Min:          s.minAmount,
				Max:          s.maxAmount,
			}
		}

		lines = append(lines, models.RecipeIngredient{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	return lines, nil
}

func (s *RecipeService) storeImage(ctx context.Context, image string) (string, error) {
	if !storage.IsDataURI(image) {
		// Already a stored path (unchanged image on update).
		return image, nil
	}

	data, ext, contentType, err := storage.DecodeDataURI(image)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + "." + ext
	return s.images.Save(ctx, name, data, contentType)
}

// buildResponse recomputes the read representation from current state.
func (s *RecipeService) buildResponse(ctx context.Context, recipe *models.Recipe, viewer permission.Principal) (*models.RecipeResponse, error) {
	isFavorited := false
	isInCart := false
	isSubscribed := false

	if viewer.Authenticated {
		var err error
		if isFavorited, err = s.favoriteRepo.Exists(ctx, viewer.UserID, recipe.ID); err != nil {
			return nil, err
		}
		if isInCart, err = s.cartRepo.Exists(ctx, viewer.UserID, recipe.ID); err != nil {
			return nil, err
		}
		if viewer.UserID != recipe.AuthorID {
			if isSubscribed, err = s.subscriptionRepo.Exists(ctx, viewer.UserID, recipe.AuthorID); err != nil {
				return nil, err
			}
		}
	}

	ingredients := make([]models.RecipeIngredientLine, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		ingredients = append(ingredients, models.RecipeIngredientLine{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: models.UnitLabel(line.Ingredient.MeasurementUnit),
			Amount:          line.Amount,
		})
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return &models.RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           models.NewUserResponse(&recipe.Author, isSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
