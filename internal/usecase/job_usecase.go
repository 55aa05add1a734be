package usecase

import (
	"context"
	"errors"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgJobSeekerForbidden = "Job Seeker not allowed to access this resource."
	msgJobIncomplete      = "Please provide full job details."
	msgSalaryMissing      = "Please either provide fixed salary or ranged salary."
	msgSalaryBoth         = "Cannot Enter Fixed and Ranged Salary together."
	msgJobGone            = "OOPS! Job not found."
	msgJobUnknown         = "Job not found."
	msgJobBadID           = "Invalid ID / CastError"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	log      *zap.Logger
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate, log *zap.Logger) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
		log:      log,
	}
}

func (u *jobUsecase) PostJob(ctx context.Context, caller domain.Identity, in domain.JobInput) (*domain.Job, error) {
	if caller.Role != domain.RoleEmployer {
		return nil, apperror.Forbidden(msgJobSeekerForbidden)
	}
	if blank(in.Title, in.Description, in.Category, in.Country, in.City, in.Location) {
		return nil, apperror.Validation(msgJobIncomplete)
	}

	fixed, from, to := salary(in.FixedSalary), salary(in.SalaryFrom), salary(in.SalaryTo)
	if err := checkSalary(fixed, from, to); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Country:     in.Country,
		City:        in.City,
		Location:    in.Location,
		FixedSalary: fixed,
		SalaryFrom:  from,
		SalaryTo:    to,
		JobPostedOn: time.Now(),
		PostedBy:    caller.UserID,
	}
	if err := u.validate.Struct(job); err != nil {
		return nil, apperror.Validation(validation.Message(err))
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	u.log.Info("job posted", zap.String("job_id", job.ID), zap.String("posted_by", job.PostedBy))
	return job, nil
}

// UpdateJob re-runs the schema and salary rules on the merged job. A null
// or zero salary field in the patch clears it.
func (u *jobUsecase) UpdateJob(ctx context.Context, caller domain.Identity, jobID string, patch domain.JobPatch) error {
	if caller.Role != domain.RoleEmployer {
		return apperror.Forbidden(msgJobSeekerForbidden)
	}

	job, err := u.findJob(ctx, jobID, msgJobGone)
	if err != nil {
		return err
	}

	patch.Apply(job)
	job.FixedSalary, job.SalaryFrom, job.SalaryTo = salary(job.FixedSalary), salary(job.SalaryFrom), salary(job.SalaryTo)
	if err := checkSalary(job.FixedSalary, job.SalaryFrom, job.SalaryTo); err != nil {
		return err
	}
	if err := u.validate.Struct(job); err != nil {
		return apperror.Validation(validation.Message(err))
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(msgJobGone)
		}
		return apperror.Internal(err)
	}
	return nil
}

// DeleteJob leaves the job's applications in place.
func (u *jobUsecase) DeleteJob(ctx context.Context, caller domain.Identity, jobID string) error {
	if caller.Role != domain.RoleEmployer {
		return apperror.Forbidden(msgJobSeekerForbidden)
	}

	if _, err := u.findJob(ctx, jobID, msgJobGone); err != nil {
		return err
	}

	if err := u.jobRepo.Delete(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(msgJobGone)
		}
		return apperror.Internal(err)
	}

	u.log.Info("job deleted", zap.String("job_id", jobID), zap.String("user_id", caller.UserID))
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, apperror.NotFound(msgJobBadID)
	}
	return u.findJob(ctx, jobID, msgJobUnknown)
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, caller domain.Identity) ([]domain.Job, error) {
	if caller.Role != domain.RoleEmployer {
		return nil, apperror.Forbidden(msgJobSeekerForbidden)
	}
	jobs, err := u.jobRepo.FetchByPoster(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) findJob(ctx context.Context, jobID, notFoundMsg string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(notFoundMsg)
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// checkSalary requires a fixed salary or a complete range, never both.
func checkSalary(fixed, from, to *int64) error {
	if fixed == nil && (from == nil || to == nil) {
		return apperror.Validation(msgSalaryMissing)
	}
	if fixed != nil && from != nil && to != nil {
		return apperror.Validation(msgSalaryBoth)
	}
	return nil
}

// salary treats a missing or zero amount as not supplied.
func salary(v *int64) *int64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
