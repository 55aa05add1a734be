package usecase

import (
	"context"
	"errors"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgEmployerForbidden     = "Employer is not allowed to access this resource!"
	msgSeekerForbidden       = "Job Seeker is not allowed to access this resource!"
	msgResumeRequired        = "Resume file required"
	msgResumeType            = "Invalid file type. Please upload your resume in PNG, JPG, or WEBP format"
	msgResumeUploadFailed    = "Failed to upload resume."
	msgApplicationJobMissing = "Job not found!"
	msgApplicationIncomplete = "Please fill all fields"
	msgApplicationGone       = "Oops, application not found!"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	jobRepo  domain.JobRepository
	uploader domain.ResumeUploader
	validate *validator.Validate
	log      *zap.Logger
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	uploader domain.ResumeUploader,
	validate *validator.Validate,
	log *zap.Logger,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		uploader: uploader,
		validate: validate,
		log:      log,
	}
}

func (u *applicationUsecase) PostApplication(ctx context.Context, caller domain.Identity, in domain.ApplicationInput, resume *domain.ResumeFile) (_ *domain.Application, err error) {
	if caller.Role != domain.RoleJobSeeker {
		return nil, apperror.Forbidden(msgEmployerForbidden)
	}
	if resume == nil || len(resume.Data) == 0 {
		return nil, apperror.Validation(msgResumeRequired)
	}
	if !security.IsAllowedResumeType(resume.ContentType) {
		return nil, apperror.Validation(msgResumeType)
	}
	res := security.ValidateResume(resume.Data)
	if res.Valid && !security.MatchesDeclaredType(resume.ContentType, res.DetectedMIME) {
		res.Valid, res.Error = false, "content does not match declared type"
	}
	if !res.Valid {
		u.log.Info("resume content rejected",
			zap.String("declared", resume.ContentType),
			zap.String("detected", res.DetectedMIME),
			zap.String("reason", res.Error),
		)
		return nil, apperror.Validation(msgResumeType)
	}
	resume.Extension = res.Extension

	stored, uploadErr := u.uploader.Upload(ctx, *resume)
	if uploadErr != nil || stored == nil || stored.PublicID == "" || stored.URL == "" {
		if uploadErr == nil {
			uploadErr = errors.New("uploader returned no object")
		}
		var rejected *apperror.AppError
		if errors.As(uploadErr, &rejected) && rejected.Kind == apperror.KindValidation {
			return nil, rejected
		}
		u.log.Error("resume upload failed", zap.String("user_id", caller.UserID), zap.Error(uploadErr))
		return nil, apperror.Upload(msgResumeUploadFailed, uploadErr)
	}

	// From here on the stored object is orphaned unless the application is saved.
	defer func() {
		if err == nil {
			return
		}
		// The request context may already be cancelled.
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if delErr := u.uploader.Delete(cleanupCtx, stored.PublicID); delErr != nil {
			u.log.Warn("orphaned resume not removed", zap.String("public_id", stored.PublicID), zap.Error(delErr))
		}
	}()

	if in.JobID == "" {
		return nil, apperror.NotFound(msgApplicationJobMissing)
	}
	job, err := u.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgApplicationJobMissing)
		}
		return nil, apperror.Internal(err)
	}

	if blank(in.Name, in.Email, in.CoverLetter, in.Phone, in.Address) {
		return nil, apperror.Validation(msgApplicationIncomplete)
	}

	app := &domain.Application{
		JobID:       job.ID,
		Name:        in.Name,
		Email:       in.Email,
		CoverLetter: in.CoverLetter,
		Phone:       in.Phone,
		Address:     in.Address,
		Resume:      *stored,
		ApplicantID: domain.PartyRef{User: caller.UserID, Role: domain.RoleJobSeeker},
		EmployerID:  domain.PartyRef{User: job.PostedBy, Role: domain.RoleEmployer},
		CreatedAt:   time.Now(),
	}
	if err := u.validate.Struct(app); err != nil {
		return nil, apperror.Validation(validation.Message(err))
	}

	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	u.log.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.String("applicant", caller.UserID),
	)
	return app, nil
}

func (u *applicationUsecase) ListApplicationsAsEmployer(ctx context.Context, caller domain.Identity) ([]domain.Application, error) {
	if caller.Role != domain.RoleEmployer {
		return nil, apperror.Forbidden(msgSeekerForbidden)
	}
	apps, err := u.appRepo.FetchByEmployer(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) ListApplicationsAsJobSeeker(ctx context.Context, caller domain.Identity) ([]domain.Application, error) {
	if caller.Role != domain.RoleJobSeeker {
		return nil, apperror.Forbidden(msgEmployerForbidden)
	}
	apps, err := u.appRepo.FetchByApplicant(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// DeleteApplication resolves the application before the role check, so a
// missing id is NotFound for every caller. Any Job Seeker may delete any
// application.
func (u *applicationUsecase) DeleteApplication(ctx context.Context, caller domain.Identity, applicationID string) error {
	if _, err := u.appRepo.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(msgApplicationGone)
		}
		return apperror.Internal(err)
	}
	if caller.Role != domain.RoleJobSeeker {
		return apperror.Forbidden(msgEmployerForbidden)
	}

	if err := u.appRepo.Delete(ctx, applicationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(msgApplicationGone)
		}
		return apperror.Internal(err)
	}

	u.log.Info("application deleted", zap.String("application_id", applicationID), zap.String("user_id", caller.UserID))
	return nil
}
