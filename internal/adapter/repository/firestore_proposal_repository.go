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

type firestoreProposalRepository struct {
	client *firestore.Client
}

func NewFirestoreProposalRepository(client *firestore.Client) repository.ProposalRepository {
	return &firestoreProposalRepository{client: client}
}

func (r *firestoreProposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	ref := r.client.Collection("proposals").NewDoc()
	proposal.ID = ref.ID
	proposal.CreatedAt = time.Now()
	if proposal.Status == "" {
		proposal.Status = entity.ProposalStatusPending
	}

	// Insert the proposal and bump the project's counter in one commit, so
	// a proposal can never land against a project that no longer exists.
	batch := r.client.Batch()
	batch.Set(ref, proposal)
	batch.Update(r.client.Collection("projects").Doc(proposal.ProjectID), []firestore.Update{
		{Path: "proposalCount", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Project", err)
		}
		return errors.Internal("Failed to create proposal", err)
	}
	return nil
}

func (r *firestoreProposalRepository) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	doc, err := r.client.Collection("proposals").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Proposal", err)
		}
		return nil, errors.Internal("Failed to get proposal", err)
	}

	var proposal entity.Proposal
	if err := doc.DataTo(&proposal); err != nil {
		return nil, errors.Internal("Failed to parse proposal data", err)
	}
	proposal.ID = doc.Ref.ID
	return &proposal, nil
}

func (r *firestoreProposalRepository) UpdateStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.client.Collection("proposals").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Proposal", err)
		}
		return errors.Internal("Failed to update proposal status", err)
	}
	return nil
}

func (r *firestoreProposalRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Proposal, error) {
	iter := r.client.Collection("proposals").
		Where("projectId", "==", projectID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectProposals(iter)
}

func (r *firestoreProposalRepository) ListByFreelancer(ctx context.Context, freelancerID string) ([]*entity.Proposal, error) {
	iter := r.client.Collection("proposals").
		Where("freelancerId", "==", freelancerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectProposals(iter)
}

func (r *firestoreProposalRepository) CountByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (int, error) {
	iter := r.client.Collection("proposals").
		Where("projectId", "==", projectID).
		Where("freelancerId", "==", freelancerID).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, errors.Internal("Failed to count proposals", err)
		}
		count++
	}
	return count, nil
}

func collectProposals(iter *firestore.DocumentIterator) ([]*entity.Proposal, error) {
	defer iter.Stop()

	var proposals []*entity.Proposal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list proposals", err)
		}

		var proposal entity.Proposal
		if err := doc.DataTo(&proposal); err != nil {
			return nil, errors.Internal("Failed to parse proposal data", err)
		}
		proposal.ID = doc.Ref.ID
		proposals = append(proposals, &proposal)
	}
	return proposals, nil
}
