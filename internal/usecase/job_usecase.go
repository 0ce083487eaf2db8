package usecase

import (
	"context"
	"strings"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/pkg/errors"
)

type JobUseCase struct {
	jobRepo repository.JobRepository
}

func NewJobUseCase(jobRepo repository.JobRepository) *JobUseCase {
	return &JobUseCase{jobRepo: jobRepo}
}

type JobInput struct {
	Title               string   `json:"title" validate:"required"`
	Company             string   `json:"company" validate:"required"`
	Location            string   `json:"location" validate:"required"`
	Salary              string   `json:"salary"`
	Type                string   `json:"type" validate:"required,oneof=Full-time Part-time Contract Remote"`
	Description         string   `json:"description" validate:"required"`
	KeyResponsibilities []string `json:"key_responsibilities"`
	Requirements        []string `json:"requirements"`
	Benefits            []string `json:"benefits"`
	Tags                []string `json:"tags"`
	CompanyLogo         string   `json:"company_logo"`
}

func (uc *JobUseCase) Create(ctx context.Context, input JobInput) (*entity.Job, error) {
	job := &entity.Job{
		Title:               input.Title,
		Company:             input.Company,
		Location:            input.Location,
		Salary:              input.Salary,
		Type:                input.Type,
		Description:         input.Description,
		KeyResponsibilities: input.KeyResponsibilities,
		Requirements:        input.Requirements,
		Benefits:            input.Benefits,
		Tags:                input.Tags,
		CompanyLogo:         input.CompanyLogo,
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	return uc.jobRepo.GetByID(ctx, id)
}

func (uc *JobUseCase) Update(ctx context.Context, id string, input JobInput) (*entity.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	job.Title = input.Title
	job.Company = input.Company
	job.Location = input.Location
	job.Salary = input.Salary
	job.Type = input.Type
	job.Description = input.Description
	job.KeyResponsibilities = input.KeyResponsibilities
	job.Requirements = input.Requirements
	job.Benefits = input.Benefits
	job.Tags = input.Tags
	job.CompanyLogo = input.CompanyLogo

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.jobRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.jobRepo.Delete(ctx, id)
}

type JobFilter struct {
	Search   string
	Location string
	Type     string
}

// List fetches a page of postings and applies the text filters in memory.
// The filters are substring matches over title, company and tags.
func (uc *JobUseCase) List(ctx context.Context, filter JobFilter, limit, offset int) ([]*entity.Job, error) {
	if filter.Type != "" && !validJobType(filter.Type) {
		return nil, errors.BadRequest("Invalid job type filter", nil)
	}

	jobs, err := uc.jobRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.Job, 0, len(jobs))
	for _, job := range jobs {
		if !matchesJobFilter(job, filter) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered, nil
}

func matchesJobFilter(job *entity.Job, filter JobFilter) bool {
	if filter.Type != "" && job.Type != filter.Type {
		return false
	}
	if filter.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if strings.Contains(strings.ToLower(job.Title), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(job.Company), needle) {
			return true
		}
		for _, tag := range job.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}
	return true
}

func validJobType(jobType string) bool {
	switch jobType {
	case "Full-time", "Part-time", "Contract", "Remote":
		return true
	}
	return false
}
