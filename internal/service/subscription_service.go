package service

import (
	"context"
	"errors"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
)

type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	recipeRepo       repository.RecipeRepository
}

func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, userRepo repository.UserRepository, recipeRepo repository.RecipeRepository) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
	}
}

// Subscribe adds a follow relation. Self-subscription is rejected
// regardless of prior state; a duplicate is an error.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint) (*models.SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.subscriptionRepo.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	if err := s.subscriptionRepo.Add(ctx, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.buildResponse(ctx, author, 0)
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if err := s.subscriptionRepo.Remove(ctx, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotSubscribed
		}
		return err
	}
	return nil
}

// List returns the user's subscribed authors with recipe previews.
// recipesLimit caps the previews per author; zero means no cap.
func (s *SubscriptionService) List(ctx context.Context, userID uint, recipesLimit int) ([]models.SubscriptionResponse, error) {
	authors, err := s.subscriptionRepo.ListAuthors(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		response, err := s.buildResponse(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (s *SubscriptionService) buildResponse(ctx context.Context, author *models.User, recipesLimit int) (*models.SubscriptionResponse, error) {
	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	previews := make([]models.ShortRecipeResponse, 0, len(recipes))
	for i := range recipes {
		previews = append(previews, models.NewShortRecipeResponse(&recipes[i]))
	}

	return &models.SubscriptionResponse{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Recipes:      previews,
		RecipesCount: count,
	}, nil
}
