package service

import (
	"context"
	"errors"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/internal/repository"
	"github.com/sefazor/recipebook-backend/pkg/bcrypt"
)

type UserService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewUserService(userRepo repository.UserRepository, subscriptionRepo repository.SubscriptionRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// GetUser returns the public view of a user; is_subscribed is computed
// against the viewer.
func (s *UserService) GetUser(ctx context.Context, id uint, viewer permission.Principal) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isSubscribed := false
	if viewer.Authenticated && viewer.UserID != user.ID {
		isSubscribed, err = s.subscriptionRepo.Exists(ctx, viewer.UserID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	response := models.NewUserResponse(user, isSubscribed)
	return &response, nil
}

func (s *UserService) ListUsers(ctx context.Context, viewer permission.Principal) ([]models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		isSubscribed := false
		if viewer.Authenticated && viewer.UserID != users[i].ID {
			isSubscribed, err = s.subscriptionRepo.Exists(ctx, viewer.UserID, users[i].ID)
			if err != nil {
				return nil, err
			}
		}
		responses = append(responses, models.NewUserResponse(&users[i], isSubscribed))
	}
	return responses, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := models.NewUserResponse(user, false)
	return &response, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}
