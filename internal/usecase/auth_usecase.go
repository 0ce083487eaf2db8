package usecase

import (
	"context"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/pkg/errors"
	"gigspace/pkg/logger"
)

type AuthUseCase struct {
	firebaseAuth FirebaseAuthClient
	userRepo     repository.UserRepository
}

func NewAuthUseCase(firebaseAuth FirebaseAuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
	UserType    string `json:"user_type" validate:"required,oneof=client freelancer both"`
}

type AuthResult struct {
	Token string              `json:"token"`
	User  *entity.UserProfile `json:"user"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, errors.BadRequest("Failed to register user", err)
	}

	user := &entity.UserProfile{
		ID:          uid,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		UserType:    input.UserType,
		Role:        "user",
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered: %s", uid)
	return &AuthResult{Token: token, User: user}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateLastSeen(ctx, user.ID); err != nil {
		logger.Warn("Failed to update last seen for %s: %v", user.ID, err)
	}

	return &AuthResult{Token: token, User: user}, nil
}
