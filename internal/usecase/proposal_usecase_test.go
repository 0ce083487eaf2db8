package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storerepo "gigspace/internal/adapter/repository"
	"gigspace/internal/domain/entity"
	"gigspace/internal/infrastructure/memstore"
	"gigspace/internal/infrastructure/ratelimit"
	"gigspace/pkg/errors"
)

type fakeProposalRepo struct {
	proposals map[string]*entity.Proposal
	nextID    int
}

func (f *fakeProposalRepo) Create(ctx context.Context, p *entity.Proposal) error {
	f.nextID++
	p.ID = "proposal-" + string(rune('0'+f.nextID))
	if p.Status == "" {
		p.Status = entity.ProposalStatusPending
	}
	f.proposals[p.ID] = p
	return nil
}
func (f *fakeProposalRepo) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok {
		return nil, errors.NotFound("Proposal", nil)
	}
	return p, nil
}
func (f *fakeProposalRepo) UpdateStatus(ctx context.Context, id, newStatus string) error {
	p, ok := f.proposals[id]
	if !ok {
		return errors.NotFound("Proposal", nil)
	}
	p.Status = newStatus
	return nil
}
func (f *fakeProposalRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Proposal, error) {
	return nil, nil
}
func (f *fakeProposalRepo) ListByFreelancer(ctx context.Context, freelancerID string) ([]*entity.Proposal, error) {
	return nil, nil
}
func (f *fakeProposalRepo) CountByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (int, error) {
	count := 0
	for _, p := range f.proposals {
		if p.ProjectID == projectID && p.FreelancerID == freelancerID {
			count++
		}
	}
	return count, nil
}

func proposalFixture() (*ProposalUseCase, *fakeProjectRepo) {
	projectRepo := &fakeProjectRepo{projects: map[string]*entity.Project{
		"project-1": {ID: "project-1", ClientID: "client-1", Status: "open"},
	}}
	chatRepo := storerepo.NewStoreChatRepository(memstore.New())
	uc := NewProposalUseCase(
		&fakeProposalRepo{proposals: make(map[string]*entity.Proposal)},
		projectRepo, chatRepo, ratelimit.NewRateLimiter())
	return uc, projectRepo
}

func TestSubmitProposal(t *testing.T) {
	uc, _ := proposalFixture()

	proposal, err := uc.Submit(context.Background(), "freelancer-1", ProposalInput{
		ProjectID:    "project-1",
		CoverLetter:  "I can build this",
		ProposedRate: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusPending, proposal.Status)
	assert.NotEmpty(t, proposal.ID)
}

func TestSubmitProposalRejectsDuplicates(t *testing.T) {
	uc, _ := proposalFixture()
	ctx := context.Background()

	_, err := uc.Submit(ctx, "freelancer-1", ProposalInput{ProjectID: "project-1", CoverLetter: "first", ProposedRate: 60})
	require.NoError(t, err)

	_, err = uc.Submit(ctx, "freelancer-1", ProposalInput{ProjectID: "project-1", CoverLetter: "again", ProposedRate: 55})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestSubmitProposalToClosedProject(t *testing.T) {
	uc, projectRepo := proposalFixture()
	projectRepo.projects["project-1"].Status = "in_progress"

	_, err := uc.Submit(context.Background(), "freelancer-1", ProposalInput{
		ProjectID:    "project-1",
		CoverLetter:  "too late",
		ProposedRate: 60,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestAcceptProposalAssignsFreelancerAndOpensChat(t *testing.T) {
	uc, projectRepo := proposalFixture()
	ctx := context.Background()

	proposal, err := uc.Submit(ctx, "freelancer-1", ProposalInput{
		ProjectID:    "project-1",
		CoverLetter:  "pick me",
		ProposedRate: 60,
	})
	require.NoError(t, err)

	room, err := uc.Accept(ctx, "client-1", proposal.ID)
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "project-1", room.ProjectID)
	assert.Equal(t, "client-1", room.ClientID)
	assert.Equal(t, "freelancer-1", room.FreelancerID)

	project := projectRepo.projects["project-1"]
	assert.Equal(t, "in_progress", project.Status)
	assert.Equal(t, "freelancer-1", project.FreelancerID)

	got, err := uc.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusAccepted, got.Status)
}

func TestAcceptProposalOnlyByOwner(t *testing.T) {
	uc, _ := proposalFixture()
	ctx := context.Background()

	proposal, err := uc.Submit(ctx, "freelancer-1", ProposalInput{
		ProjectID:    "project-1",
		CoverLetter:  "pick me",
		ProposedRate: 60,
	})
	require.NoError(t, err)

	_, err = uc.Accept(ctx, "impostor", proposal.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestWithdrawProposal(t *testing.T) {
	uc, _ := proposalFixture()
	ctx := context.Background()

	proposal, err := uc.Submit(ctx, "freelancer-1", ProposalInput{
		ProjectID:    "project-1",
		CoverLetter:  "never mind",
		ProposedRate: 60,
	})
	require.NoError(t, err)

	require.Error(t, uc.Withdraw(ctx, "someone-else", proposal.ID))
	require.NoError(t, uc.Withdraw(ctx, "freelancer-1", proposal.ID))

	got, err := uc.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusWithdrawn, got.Status)
}
