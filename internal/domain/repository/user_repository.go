package repository

import (
	"context"

	"gigspace/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	Update(ctx context.Context, user *entity.UserProfile) error
	UpdateLastSeen(ctx context.Context, id string) error
}
