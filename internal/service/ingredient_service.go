package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
)

type IngredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// Search lists ingredients by case-insensitive name prefix.
func (s *IngredientService) Search(ctx context.Context, namePrefix string) ([]models.IngredientResponse, error) {
	ingredients, err := s.ingredientRepo.Search(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	responses := make([]models.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		responses = append(responses, models.NewIngredientResponse(&ingredients[i]))
	}
	return responses, nil
}

func (s *IngredientService) Get(ctx context.Context, id uint) (*models.IngredientResponse, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	response := models.NewIngredientResponse(ingredient)
	return &response, nil
}

func (s *IngredientService) Create(ctx context.Context, req models.IngredientRequest) (*models.IngredientResponse, error) {
	if !models.IsValidUnit(req.MeasurementUnit) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUnit, req.MeasurementUnit)
	}

	ingredient := &models.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, err
	}
	response := models.NewIngredientResponse(ingredient)
	return &response, nil
}

func (s *IngredientService) Delete(ctx context.Context, id uint) error {
	if err := s.ingredientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIngredientNotFound
		}
		return err
	}
	return nil
}
