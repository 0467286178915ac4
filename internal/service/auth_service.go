package service

import (
	"context"
	"errors"
	"time"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
	"github.com/sefazor/recipebook-backend/pkg/bcrypt"
	"github.com/sefazor/recipebook-backend/pkg/email"
	"github.com/sefazor/recipebook-backend/pkg/jwt"
)

type AuthService struct {
	userRepo     repository.UserRepository
	emailService *email.EmailService
	jwtSecret    []byte
	jwtExpiry    time.Duration
}

func NewAuthService(userRepo repository.UserRepository, emailService *email.EmailService, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		jwtSecret:    []byte(jwtSecret),
		jwtExpiry:    jwtExpiry,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.emailService != nil {
		go s.emailService.SendWelcomeEmail(user.Email, user.FirstName)
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.Email, user.IsAdmin, s.jwtExpiry)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.NewUserResponse(user, false),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.Email, user.IsAdmin, s.jwtExpiry)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.NewUserResponse(user, false),
	}, nil
}
