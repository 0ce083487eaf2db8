package usecase

import (
	"context"
	"fmt"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/internal/infrastructure/ratelimit"
	"gigspace/pkg/errors"
	"gigspace/pkg/logger"
)

type ProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
	chatRepo     repository.ChatRepository
	rateLimiter  *ratelimit.RateLimiter
}

func NewProposalUseCase(
	proposalRepo repository.ProposalRepository,
	projectRepo repository.ProjectRepository,
	chatRepo repository.ChatRepository,
	rateLimiter *ratelimit.RateLimiter,
) *ProposalUseCase {
	return &ProposalUseCase{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
		chatRepo:     chatRepo,
		rateLimiter:  rateLimiter,
	}
}

type ProposalInput struct {
	ProjectID         string                     `json:"project_id" validate:"required"`
	CoverLetter       string                     `json:"cover_letter" validate:"required"`
	ProposedRate      float64                    `json:"proposed_rate" validate:"required,gt=0"`
	EstimatedDuration string                     `json:"estimated_duration"`
	Milestones        []entity.ProposedMilestone `json:"milestones"`
	Attachments       []string                   `json:"attachments"`
}

func (uc *ProposalUseCase) Submit(ctx context.Context, freelancerID string, input ProposalInput) (*entity.Proposal, error) {
	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != "open" {
		return nil, errors.BadRequest("This project is not accepting proposals", nil)
	}
	if project.ClientID == freelancerID {
		return nil, errors.BadRequest("You cannot submit a proposal to your own project", nil)
	}

	count, err := uc.proposalRepo.CountByProjectAndFreelancer(ctx, input.ProjectID, freelancerID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.Conflict("You have already submitted a proposal for this project")
	}

	if allowed, wait := uc.rateLimiter.Allow(freelancerID, "submit_proposal"); !allowed {
		return nil, errors.TooManyRequests(
			fmt.Sprintf("Too many proposals. Try again in %.0f seconds", wait.Seconds()), wait)
	}

	proposal := &entity.Proposal{
		ProjectID:         input.ProjectID,
		FreelancerID:      freelancerID,
		CoverLetter:       input.CoverLetter,
		ProposedRate:      input.ProposedRate,
		EstimatedDuration: input.EstimatedDuration,
		Milestones:        input.Milestones,
		Attachments:       input.Attachments,
	}
	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (uc *ProposalUseCase) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	return uc.proposalRepo.GetByID(ctx, id)
}

func (uc *ProposalUseCase) ListByProject(ctx context.Context, clientID, projectID string) ([]*entity.Proposal, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, errors.Forbidden("Only the project owner can view its proposals", nil)
	}
	return uc.proposalRepo.ListByProject(ctx, projectID)
}

func (uc *ProposalUseCase) ListMine(ctx context.Context, freelancerID string) ([]*entity.Proposal, error) {
	return uc.proposalRepo.ListByFreelancer(ctx, freelancerID)
}

// Accept assigns the freelancer, moves the project to in_progress and opens
// the chat room between both parties.
func (uc *ProposalUseCase) Accept(ctx context.Context, clientID, proposalID string) (*entity.ChatRoom, error) {
	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != entity.ProposalStatusPending {
		return nil, errors.BadRequest("Only pending proposals can be accepted", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, proposal.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, errors.Forbidden("Only the project owner can accept proposals", nil)
	}
	if project.Status != "open" {
		return nil, errors.BadRequest("This project already has an assigned freelancer", nil)
	}

	if err := uc.proposalRepo.UpdateStatus(ctx, proposalID, entity.ProposalStatusAccepted); err != nil {
		return nil, err
	}

	project.Status = "in_progress"
	project.FreelancerID = proposal.FreelancerID
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	room, err := uc.chatRepo.FindRoomByProject(ctx, project.ID, clientID, proposal.FreelancerID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		room = &entity.ChatRoom{
			ProjectID:    project.ID,
			ClientID:     clientID,
			FreelancerID: proposal.FreelancerID,
		}
		if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
			return nil, err
		}
	}

	logger.Info("Proposal %s accepted for project %s, chat room %s", proposalID, project.ID, room.ID)
	return room, nil
}

func (uc *ProposalUseCase) Reject(ctx context.Context, clientID, proposalID string) error {
	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != entity.ProposalStatusPending {
		return errors.BadRequest("Only pending proposals can be rejected", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, proposal.ProjectID)
	if err != nil {
		return err
	}
	if project.ClientID != clientID {
		return errors.Forbidden("Only the project owner can reject proposals", nil)
	}

	return uc.proposalRepo.UpdateStatus(ctx, proposalID, entity.ProposalStatusRejected)
}

func (uc *ProposalUseCase) Withdraw(ctx context.Context, freelancerID, proposalID string) error {
	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.FreelancerID != freelancerID {
		return errors.Forbidden("You can only withdraw your own proposals", nil)
	}
	if proposal.Status != entity.ProposalStatusPending {
		return errors.BadRequest("Only pending proposals can be withdrawn", nil)
	}

	return uc.proposalRepo.UpdateStatus(ctx, proposalID, entity.ProposalStatusWithdrawn)
}
