package domain

import (
	"context"
	"time"
)

// Resume points at the stored resume object.
type Resume struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// PartyRef names a user together with the role it held when the application was made.
type PartyRef struct {
	User string `json:"user"`
	Role Role   `json:"role"`
}

// Application links a Job Seeker to a Job and, through the job, to its Employer.
// EmployerID is always derived from the job's PostedBy.
type Application struct {
	ID          string    `json:"_id"`
	JobID       string    `json:"jobId"`
	Name        string    `json:"name" validate:"required,min=3,max=30"`
	Email       string    `json:"email" validate:"required"`
	CoverLetter string    `json:"coverLetter" validate:"required"`
	Phone       string    `json:"phone" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	Resume      Resume    `json:"resume"`
	ApplicantID PartyRef  `json:"applicantID"`
	EmployerID  PartyRef  `json:"employerID"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ApplicationInput struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	CoverLetter string `form:"coverLetter"`
	Phone       string `form:"phone"`
	Address     string `form:"address"`
	JobID       string `form:"jobId"`
}

// ResumeFile is an uploaded resume as received from the client.
// ContentType is the type the client declared, not a sniffed one.
// Extension is filled in once the content has been sniffed.
type ResumeFile struct {
	Filename    string
	ContentType string
	Extension   string
	Data        []byte
}

// ResumeUploader stores resume bytes in external object storage.
type ResumeUploader interface {
	Upload(ctx context.Context, file ResumeFile) (*Resume, error)
	Delete(ctx context.Context, publicID string) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	FetchByEmployer(ctx context.Context, userID string) ([]Application, error)
	FetchByApplicant(ctx context.Context, userID string) ([]Application, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	PostApplication(ctx context.Context, caller Identity, in ApplicationInput, resume *ResumeFile) (*Application, error)
	ListApplicationsAsEmployer(ctx context.Context, caller Identity) ([]Application, error)
	ListApplicationsAsJobSeeker(ctx context.Context, caller Identity) ([]Application, error)
	DeleteApplication(ctx context.Context, caller Identity, applicationID string) error
}
