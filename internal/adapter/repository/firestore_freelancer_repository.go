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

type firestoreFreelancerRepository struct {
	client *firestore.Client
}

func NewFirestoreFreelancerRepository(client *firestore.Client) repository.FreelancerRepository {
	return &firestoreFreelancerRepository{client: client}
}

func (r *firestoreFreelancerRepository) Create(ctx context.Context, profile *entity.FreelancerProfile) error {
	ref := r.client.Collection("freelancerProfiles").NewDoc()
	profile.ID = ref.ID
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	if _, err := ref.Set(ctx, profile); err != nil {
		return errors.Internal("Failed to create freelancer profile", err)
	}
	return nil
}

func (r *firestoreFreelancerRepository) GetByID(ctx context.Context, id string) (*entity.FreelancerProfile, error) {
	doc, err := r.client.Collection("freelancerProfiles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Freelancer profile", err)
		}
		return nil, errors.Internal("Failed to get freelancer profile", err)
	}

	var profile entity.FreelancerProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse freelancer profile", err)
	}
	profile.ID = doc.Ref.ID
	return &profile, nil
}

func (r *firestoreFreelancerRepository) GetByUserID(ctx context.Context, userID string) (*entity.FreelancerProfile, error) {
	iter := r.client.Collection("freelancerProfiles").Where("userId", "==", userID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Freelancer profile", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query freelancer profile", err)
	}

	var profile entity.FreelancerProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse freelancer profile", err)
	}
	profile.ID = doc.Ref.ID
	return &profile, nil
}

func (r *firestoreFreelancerRepository) Update(ctx context.Context, profile *entity.FreelancerProfile) error {
	profile.UpdatedAt = time.Now()

	_, err := r.client.Collection("freelancerProfiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Freelancer profile", err)
		}
		return errors.Internal("Failed to update freelancer profile", err)
	}
	return nil
}

// List filters by skills and availability. Firestore only supports one
// array-contains clause per query, so additional skills are filtered here.
func (r *firestoreFreelancerRepository) List(ctx context.Context, skills []string, availability string, limit, offset int) ([]*entity.FreelancerProfile, error) {
	query := r.client.Collection("freelancerProfiles").Query
	if len(skills) > 0 {
		query = query.Where("skills", "array-contains", skills[0])
	}
	if availability != "" {
		query = query.Where("availability", "==", availability)
	}
	query = query.OrderBy("rating", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var all []*entity.FreelancerProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list freelancer profiles", err)
		}

		var profile entity.FreelancerProfile
		if err := doc.DataTo(&profile); err != nil {
			return nil, errors.Internal("Failed to parse freelancer profile", err)
		}
		profile.ID = doc.Ref.ID

		if !hasAllSkills(profile.Skills, skills) {
			continue
		}
		all = append(all, &profile)
	}

	if offset >= len(all) {
		return []*entity.FreelancerProfile{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func hasAllSkills(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
