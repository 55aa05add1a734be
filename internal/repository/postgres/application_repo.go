package postgres

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id::text, job_id::text, name, email, cover_letter, phone, address,
	resume_public_id, resume_url, applicant_id::text, applicant_role, employer_id::text, employer_role, created_at`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	query := `INSERT INTO applications (id, job_id, name, email, cover_letter, phone, address,
                resume_public_id, resume_url, applicant_id, applicant_role, employer_id, employer_role, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.Name, app.Email, app.CoverLetter, app.Phone, app.Address,
		app.Resume.PublicID, app.Resume.URL,
		app.ApplicantID.User, string(app.ApplicantID.Role),
		app.EmployerID.User, string(app.EmployerID.Role),
		app.CreatedAt,
	)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return app, err
}

func (r *applicationRepo) FetchByEmployer(ctx context.Context, userID string) ([]domain.Application, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []domain.Application{}, nil
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE employer_id = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, userID)
}

func (r *applicationRepo) FetchByApplicant(ctx context.Context, userID string) ([]domain.Application, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []domain.Application{}, nil
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, userID)
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var applicantRole, employerRole string
	err := row.Scan(
		&app.ID, &app.JobID, &app.Name, &app.Email, &app.CoverLetter, &app.Phone, &app.Address,
		&app.Resume.PublicID, &app.Resume.URL,
		&app.ApplicantID.User, &applicantRole, &app.EmployerID.User, &employerRole,
		&app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.ApplicantID.Role = domain.Role(applicantRole)
	app.EmployerID.Role = domain.Role(employerRole)
	return &app, nil
}
