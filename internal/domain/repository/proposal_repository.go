package repository

import (
	"context"

	"gigspace/internal/domain/entity"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id string) (*entity.Proposal, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.Proposal, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]*entity.Proposal, error)
	CountByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (int, error)
}
