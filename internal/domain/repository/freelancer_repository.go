package repository

import (
	"context"

	"gigspace/internal/domain/entity"
)

type FreelancerRepository interface {
	Create(ctx context.Context, profile *entity.FreelancerProfile) error
	GetByID(ctx context.Context, id string) (*entity.FreelancerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.FreelancerProfile, error)
	Update(ctx context.Context, profile *entity.FreelancerProfile) error
	List(ctx context.Context, skills []string, availability string, limit, offset int) ([]*entity.FreelancerProfile, error)
}
