package usecase

import (
	"context"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/pkg/errors"
)

type FreelancerUseCase struct {
	freelancerRepo repository.FreelancerRepository
	userRepo       repository.UserRepository
}

func NewFreelancerUseCase(freelancerRepo repository.FreelancerRepository, userRepo repository.UserRepository) *FreelancerUseCase {
	return &FreelancerUseCase{
		freelancerRepo: freelancerRepo,
		userRepo:       userRepo,
	}
}

type FreelancerProfileInput struct {
	Title        string                 `json:"title" validate:"required"`
	Description  string                 `json:"description" validate:"required"`
	Skills       []string               `json:"skills" validate:"required,min=1"`
	HourlyRate   float64                `json:"hourly_rate" validate:"required,gt=0"`
	Availability string                 `json:"availability" validate:"required,oneof=available busy unavailable"`
	ProfileImage string                 `json:"profile_image"`
	Portfolio    []entity.PortfolioItem `json:"portfolio"`
	Languages    []entity.LanguageSkill `json:"languages"`
	Location     string                 `json:"location"`
}

func (uc *FreelancerUseCase) CreateProfile(ctx context.Context, userID string, input FreelancerProfileInput) (*entity.FreelancerProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserType == "client" {
		return nil, errors.Forbidden("Client accounts cannot create a freelancer profile", nil)
	}

	if existing, err := uc.freelancerRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, errors.Conflict("Freelancer profile already exists")
	}

	profile := &entity.FreelancerProfile{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Skills:       input.Skills,
		HourlyRate:   input.HourlyRate,
		Availability: input.Availability,
		ProfileImage: input.ProfileImage,
		Portfolio:    input.Portfolio,
		Languages:    input.Languages,
		Location:     input.Location,
	}
	if err := uc.freelancerRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *FreelancerUseCase) GetProfile(ctx context.Context, id string) (*entity.FreelancerProfile, error) {
	return uc.freelancerRepo.GetByID(ctx, id)
}

func (uc *FreelancerUseCase) GetProfileByUser(ctx context.Context, userID string) (*entity.FreelancerProfile, error) {
	return uc.freelancerRepo.GetByUserID(ctx, userID)
}

func (uc *FreelancerUseCase) UpdateProfile(ctx context.Context, userID, profileID string, input FreelancerProfileInput) (*entity.FreelancerProfile, error) {
	profile, err := uc.freelancerRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, errors.Forbidden("You can only update your own profile", nil)
	}

	profile.Title = input.Title
	profile.Description = input.Description
	profile.Skills = input.Skills
	profile.HourlyRate = input.HourlyRate
	profile.Availability = input.Availability
	profile.ProfileImage = input.ProfileImage
	profile.Portfolio = input.Portfolio
	profile.Languages = input.Languages
	profile.Location = input.Location

	if err := uc.freelancerRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *FreelancerUseCase) Search(ctx context.Context, skills []string, availability string, limit, offset int) ([]*entity.FreelancerProfile, error) {
	return uc.freelancerRepo.List(ctx, skills, availability, limit, offset)
}
