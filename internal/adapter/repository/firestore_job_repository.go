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

type firestoreJobRepository struct {
	client *firestore.Client
}

func NewFirestoreJobRepository(client *firestore.Client) repository.JobRepository {
	return &firestoreJobRepository{client: client}
}

func (r *firestoreJobRepository) Create(ctx context.Context, job *entity.Job) error {
	ref := r.client.Collection("jobs").NewDoc()
	job.ID = ref.ID
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	if _, err := ref.Set(ctx, job); err != nil {
		return errors.Internal("Failed to create job", err)
	}
	return nil
}

func (r *firestoreJobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	doc, err := r.client.Collection("jobs").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Job", err)
		}
		return nil, errors.Internal("Failed to get job", err)
	}

	var job entity.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, errors.Internal("Failed to parse job data", err)
	}
	job.ID = doc.Ref.ID
	return &job, nil
}

func (r *firestoreJobRepository) Update(ctx context.Context, job *entity.Job) error {
	job.UpdatedAt = time.Now()

	_, err := r.client.Collection("jobs").Doc(job.ID).Set(ctx, job)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Job", err)
		}
		return errors.Internal("Failed to update job", err)
	}
	return nil
}

func (r *firestoreJobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("jobs").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete job", err)
	}
	return nil
}

func (r *firestoreJobRepository) List(ctx context.Context, limit, offset int) ([]*entity.Job, error) {
	query := r.client.Collection("jobs").OrderBy("createdAt", firestore.Desc)
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var jobs []*entity.Job
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list jobs", err)
		}

		var job entity.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, errors.Internal("Failed to parse job data", err)
		}
		job.ID = doc.Ref.ID
		jobs = append(jobs, &job)
	}
	return jobs, nil
}
