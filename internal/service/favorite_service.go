package service

import (
	"context"
	"errors"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

// Add favorites a recipe for the user. A duplicate add is an error, not
// a no-op; the unique constraint catches the racing case.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uint) (*models.ShortRecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	if err := s.favoriteRepo.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	response := models.NewShortRecipeResponse(recipe)
	return &response, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uint) error {
	if err := s.favoriteRepo.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFavorited
		}
		return err
	}
	return nil
}
