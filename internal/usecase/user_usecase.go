package usecase

import (
	"context"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	DisplayName string              `json:"display_name"`
	Avatar      string              `json:"avatar"`
	Timezone    string              `json:"timezone"`
	ContactInfo *entity.ContactInfo `json:"contact_info"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.UserProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Timezone != "" {
		user.Timezone = input.Timezone
	}
	if input.ContactInfo != nil {
		user.ContactInfo = *input.ContactInfo
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	// Re-authenticate before accepting the change.
	if _, err := uc.firebaseAuth.SignInWithEmailPassword(user.Email, input.CurrentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	return uc.firebaseAuth.UpdateUserPassword(ctx, userID, input.NewPassword)
}
