package usecase

import (
	"context"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/pkg/errors"
)

type ProjectUseCase struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewProjectUseCase(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

type ProjectInput struct {
	Title           string        `json:"title" validate:"required"`
	Description     string        `json:"description" validate:"required"`
	Category        string        `json:"category" validate:"required"`
	Subcategory     string        `json:"subcategory"`
	SkillsRequired  []string      `json:"skills_required" validate:"required,min=1"`
	Budget          entity.Budget `json:"budget" validate:"required"`
	Duration        string        `json:"duration"`
	ExperienceLevel string        `json:"experience_level" validate:"required,oneof=entry intermediate expert"`
	Attachments     []string      `json:"attachments"`
}

func (uc *ProjectUseCase) Create(ctx context.Context, clientID string, input ProjectInput) (*entity.Project, error) {
	user, err := uc.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if user.UserType == "freelancer" {
		return nil, errors.Forbidden("Freelancer accounts cannot post projects", nil)
	}

	if input.Budget.Min <= 0 || input.Budget.Max < input.Budget.Min {
		return nil, errors.BadRequest("Invalid budget range", nil)
	}

	project := &entity.Project{
		ClientID:        clientID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Subcategory:     input.Subcategory,
		SkillsRequired:  input.SkillsRequired,
		Budget:          input.Budget,
		Duration:        input.Duration,
		ExperienceLevel: input.ExperienceLevel,
		Attachments:     input.Attachments,
	}
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUseCase) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return uc.projectRepo.GetByID(ctx, id)
}

// ListOpen returns open projects, optionally narrowed by category and a
// budget ceiling. The budget cut happens here because budgets are a range,
// not a single orderable field.
func (uc *ProjectUseCase) ListOpen(ctx context.Context, category string, maxBudget float64, limit, offset int) ([]*entity.Project, error) {
	projects, err := uc.projectRepo.ListOpen(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}
	if maxBudget <= 0 {
		return projects, nil
	}

	filtered := make([]*entity.Project, 0, len(projects))
	for _, p := range projects {
		if p.Budget.Min <= maxBudget {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (uc *ProjectUseCase) ListMine(ctx context.Context, clientID string) ([]*entity.Project, error) {
	return uc.projectRepo.ListByClient(ctx, clientID)
}

// UpdateStatus moves a project through its lifecycle. Only the owning
// client may change it, and completed or cancelled projects are final.
func (uc *ProjectUseCase) UpdateStatus(ctx context.Context, clientID, projectID, newStatus string) (*entity.Project, error) {
	switch newStatus {
	case "open", "in_progress", "completed", "cancelled":
	default:
		return nil, errors.BadRequest("Invalid project status", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, errors.Forbidden("Only the project owner can change its status", nil)
	}
	if project.Status == "completed" || project.Status == "cancelled" {
		return nil, errors.BadRequest("This project can no longer change status", nil)
	}

	project.Status = newStatus
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
