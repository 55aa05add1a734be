package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job is a listing owned by an Employer. PostedBy never changes after creation.
// Location has a 50-character floor.
type Job struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title" validate:"required,min=3,max=50"`
	Description string    `json:"description" validate:"required,min=3,max=350"`
	Category    string    `json:"category" validate:"required"`
	Country     string    `json:"country" validate:"required"`
	City        string    `json:"city" validate:"required"`
	Location    string    `json:"location" validate:"required,min=50"`
	FixedSalary *int64    `json:"fixedSalary,omitempty"`
	SalaryFrom  *int64    `json:"salaryFrom,omitempty"`
	SalaryTo    *int64    `json:"salaryTo,omitempty"`
	Expired     bool      `json:"expired"`
	JobPostedOn time.Time `json:"jobPostedOn"`
	PostedBy    string    `json:"postedBy"`
}

// JobInput is the payload of a new listing.
type JobInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Location    string `json:"location"`
	FixedSalary *int64 `json:"fixedSalary"`
	SalaryFrom  *int64 `json:"salaryFrom"`
	SalaryTo    *int64 `json:"salaryTo"`
}

// JobPatch carries only the fields present in an update request.
// PostedBy is not patchable.
type JobPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Location    *string `json:"location"`
	FixedSalary SalaryPatch `json:"fixedSalary" swaggertype:"integer"`
	SalaryFrom  SalaryPatch `json:"salaryFrom" swaggertype:"integer"`
	SalaryTo    SalaryPatch `json:"salaryTo" swaggertype:"integer"`
	Expired     *bool       `json:"expired"`
}

// SalaryPatch tells an absent salary field apart from an explicit null,
// which clears it.
type SalaryPatch struct {
	Set   bool
	Value *int64
}

// SetSalary is the patch that sets a salary field to v.
func SetSalary(v int64) SalaryPatch {
	return SalaryPatch{Set: true, Value: &v}
}

func (s *SalaryPatch) UnmarshalJSON(b []byte) error {
	s.Set = true
	if string(b) == "null" {
		s.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s.Value = &v
	return nil
}

// Apply merges the patch into job.
func (p JobPatch) Apply(job *Job) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&job.Title, p.Title)
	setString(&job.Description, p.Description)
	setString(&job.Category, p.Category)
	setString(&job.Country, p.Country)
	setString(&job.City, p.City)
	setString(&job.Location, p.Location)
	setSalary := func(dst **int64, src SalaryPatch) {
		if src.Set {
			*dst = src.Value
		}
	}
	setSalary(&job.FixedSalary, p.FixedSalary)
	setSalary(&job.SalaryFrom, p.SalaryFrom)
	setSalary(&job.SalaryTo, p.SalaryTo)
	if p.Expired != nil {
		job.Expired = *p.Expired
	}
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	FetchActive(ctx context.Context) ([]Job, error)
	FetchByPoster(ctx context.Context, userID string) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	PostJob(ctx context.Context, caller Identity, in JobInput) (*Job, error)
	UpdateJob(ctx context.Context, caller Identity, jobID string, patch JobPatch) error
	DeleteJob(ctx context.Context, caller Identity, jobID string) error
	GetJob(ctx context.Context, jobID string) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	ListMyJobs(ctx context.Context, caller Identity) ([]Job, error)
}
