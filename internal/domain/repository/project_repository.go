package repository

import (
	"context"

	"gigspace/internal/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	ListByClient(ctx context.Context, clientID string) ([]*entity.Project, error)
	ListOpen(ctx context.Context, category string, limit, offset int) ([]*entity.Project, error)
}
