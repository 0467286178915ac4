package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
)

type ShoppingCartService struct {
	cartRepo   repository.ShoppingCartRepository
	recipeRepo repository.RecipeRepository
	userRepo   repository.UserRepository
	now        func() time.Time
}

func NewShoppingCartService(cartRepo repository.ShoppingCartRepository, recipeRepo repository.RecipeRepository, userRepo repository.UserRepository) *ShoppingCartService {
	return &ShoppingCartService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

func (s *ShoppingCartService) Add(ctx context.Context, userID, recipeID uint) (*models.ShortRecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.cartRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInCart
	}

	if err := s.cartRepo.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	response := models.NewShortRecipeResponse(recipe)
	return &response, nil
}

func (s *ShoppingCartService) Remove(ctx context.Context, userID, recipeID uint) error {
	if err := s.cartRepo.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotInCart
		}
		return err
	}
	return nil
}

// BuildShoppingList aggregates the user's cart into the downloadable
// plain-text document and returns the attachment filename with it.
func (s *ShoppingCartService) BuildShoppingList(ctx context.Context, userID uint) (filename string, content string, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	totals, err := s.cartRepo.Aggregate(ctx, userID)
	if err != nil {
		return "", "", err
	}

	filename = fmt.Sprintf("%s_shopping_list.txt", user.Username)
	content = RenderShoppingList(user.FullName(), s.now(), totals)
	return filename, content, nil
}

// RenderShoppingList formats the aggregated totals. Lines arrive
// ordered by ingredient name and are emitted as
// "- <name> (<unit label>) - <summed amount>".
func RenderShoppingList(fullName string, date time.Time, totals []repository.IngredientTotal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for: %s\n\n", fullName)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("2006-01-02"))

	lines := make([]string, 0, len(totals))
	for _, total := range totals {
		lines = append(lines, fmt.Sprintf("- %s (%s) - %d",
			total.Name, models.UnitLabel(total.MeasurementUnit), total.Total))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
