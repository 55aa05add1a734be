package postgres

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id::text, title, description, category, country, city, location,
	fixed_salary, salary_from, salary_to, expired, job_posted_on, posted_by::text`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	query := `INSERT INTO jobs (id, title, description, category, country, city, location,
                fixed_salary, salary_from, salary_to, expired, job_posted_on, posted_by)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Category, job.Country, job.City, job.Location,
		job.FixedSalary, job.SalaryFrom, job.SalaryTo, job.Expired, job.JobPostedOn, job.PostedBy,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return job, err
}

func (r *jobRepo) FetchActive(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE expired = false ORDER BY job_posted_on DESC`
	return r.fetch(ctx, query)
}

func (r *jobRepo) FetchByPoster(ctx context.Context, userID string) ([]domain.Job, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []domain.Job{}, nil
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE posted_by = $1 ORDER BY job_posted_on DESC`
	return r.fetch(ctx, query, userID)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, description = $3, category = $4, country = $5, city = $6,
                location = $7, fixed_salary = $8, salary_from = $9, salary_to = $10, expired = $11
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Category, job.Country, job.City,
		job.Location, job.FixedSalary, job.SalaryFrom, job.SalaryTo, job.Expired,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Category, &job.Country, &job.City, &job.Location,
		&job.FixedSalary, &job.SalaryFrom, &job.SalaryTo, &job.Expired, &job.JobPostedOn, &job.PostedBy,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
