package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/pkg/errors"
)

type firestoreProjectRepository struct {
	client *firestore.Client
}

func NewFirestoreProjectRepository(client *firestore.Client) repository.ProjectRepository {
	return &firestoreProjectRepository{client: client}
}

func (r *firestoreProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ref := r.client.Collection("projects").NewDoc()
	project.ID = ref.ID
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	if project.Status == "" {
		project.Status = "open"
	}

	if _, err := ref.Set(ctx, project); err != nil {
		return errors.Internal("Failed to create project", err)
	}
	return nil
}

func (r *firestoreProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	doc, err := r.client.Collection("projects").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Project", err)
		}
		return nil, errors.Internal("Failed to get project", err)
	}

	var project entity.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, errors.Internal("Failed to parse project data", err)
	}
	project.ID = doc.Ref.ID
	return &project, nil
}

func (r *firestoreProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	project.UpdatedAt = time.Now()

	_, err := r.client.Collection("projects").Doc(project.ID).Set(ctx, project)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Project", err)
		}
		return errors.Internal("Failed to update project", err)
	}
	return nil
}

func (r *firestoreProjectRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Project, error) {
	iter := r.client.Collection("projects").
		Where("clientId", "==", clientID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectProjects(iter)
}

func (r *firestoreProjectRepository) ListOpen(ctx context.Context, category string, limit, offset int) ([]*entity.Project, error) {
	query := r.client.Collection("projects").Where("status", "==", "open")
	if category != "" {
		query = query.Where("category", "==", category)
	}
	query = query.OrderBy("createdAt", firestore.Desc)
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return collectProjects(query.Documents(ctx))
}

func collectProjects(iter *firestore.DocumentIterator) ([]*entity.Project, error) {
	defer iter.Stop()

	var projects []*entity.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list projects", err)
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return nil, errors.Internal("Failed to parse project data", err)
		}
		project.ID = doc.Ref.ID
		projects = append(projects, &project)
	}
	return projects, nil
}
