package usecase_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchActive(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchByPoster(ctx context.Context, userID string) ([]domain.Job, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByEmployer(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByApplicant(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file domain.ResumeFile) (*domain.Resume, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockUploader) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(userID string) (*domain.Session, *domain.SessionClaims, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Session), args.Get(1).(*domain.SessionClaims), args.Error(2)
}
func (m *MockTokens) Verify(token string) (*domain.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionClaims), args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return m.Called(ctx, tokenID, until).Error(0)
}
func (m *MockSessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// plainHasher keeps tests fast; the bcrypt hasher is tested in pkg/security.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainHasher) Compare(hash, pw string) bool  { return hash == "hashed:"+pw }

var (
	employer  = domain.Identity{UserID: "11111111-1111-1111-1111-111111111111", Role: domain.RoleEmployer}
	jobSeeker = domain.Identity{UserID: "22222222-2222-2222-2222-222222222222", Role: domain.RoleJobSeeker}
)

const jobID = "33333333-3333-3333-3333-333333333333"

func assertAppError(t *testing.T, err error, kind apperror.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
	if msg != "" {
		assert.Equal(t, msg, appErr.Message)
	}
}

func int64p(v int64) *int64 { return &v }

// ---- Auth ----

func newAuth() (domain.AuthUsecase, *MockUserRepo, *MockTokens, *MockSessions) {
	users := new(MockUserRepo)
	tokens := new(MockTokens)
	sessions := new(MockSessions)
	uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, sessions, validation.New(), zap.NewNop())
	return uc, users, tokens, sessions
}

func validRegistration() domain.RegisterInput {
	return domain.RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "5550100",
		Role:     domain.RoleJobSeeker,
		Password: "password123",
	}
}

func TestRegister(t *testing.T) {
	t.Run("Should reject incomplete form", func(t *testing.T) {
		uc, _, _, _ := newAuth()
		in := validRegistration()
		in.Phone = ""
		_, _, err := uc.Register(context.Background(), in)
		assertAppError(t, err, apperror.KindValidation, "Please fill full registration form!")
	})

	t.Run("Should reject a used email regardless of other fields", func(t *testing.T) {
		uc, users, _, _ := newAuth()
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{ID: "x"}, nil)

		in := validRegistration()
		in.Role = domain.RoleEmployer
		in.Name = "Someone Else"
		_, _, err := uc.Register(context.Background(), in)
		assertAppError(t, err, apperror.KindConflict, "Email is Already Exist")
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a racing duplicate insert to conflict", func(t *testing.T) {
		uc, users, _, _ := newAuth()
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

		_, _, err := uc.Register(context.Background(), validRegistration())
		assertAppError(t, err, apperror.KindConflict, "Email is Already Exist")
	})

	t.Run("Should enforce schema rules", func(t *testing.T) {
		uc, users, _, _ := newAuth()
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		in := validRegistration()
		in.Password = "short"
		_, _, err := uc.Register(context.Background(), in)
		assertAppError(t, err, apperror.KindValidation, "Password must contain at least 8 characters!")
	})

	t.Run("Should hash the password and issue a token", func(t *testing.T) {
		uc, users, tokens, _ := newAuth()
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Password == "hashed:password123"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "new-id"
		}).Return(nil)
		tokens.On("Issue", "new-id").Return(&domain.Session{Token: "tok"}, &domain.SessionClaims{}, nil)

		user, session, err := uc.Register(context.Background(), validRegistration())
		require.NoError(t, err)
		assert.Equal(t, "tok", session.Token)
		assert.Empty(t, user.Password)
		users.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	stored := func() *domain.User {
		return &domain.User{ID: "u1", Email: "jane@example.com", Password: "hashed:password123", Role: domain.RoleJobSeeker}
	}

	t.Run("Should require all three fields", func(t *testing.T) {
		uc, _, _, _ := newAuth()
		_, _, err := uc.Login(context.Background(), domain.LoginInput{Email: "jane@example.com", Password: "password123"})
		assertAppError(t, err, apperror.KindValidation, "Please provide email, password and role.")
	})

	t.Run("Unknown email and wrong password look the same", func(t *testing.T) {
		uc, users, _, _ := newAuth()
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored(), nil)

		_, _, err := uc.Login(context.Background(), domain.LoginInput{Email: "nobody@example.com", Password: "password123", Role: domain.RoleJobSeeker})
		assertAppError(t, err, apperror.KindAuth, "Invalid Email or Password")

		_, _, err = uc.Login(context.Background(), domain.LoginInput{Email: "jane@example.com", Password: "wrong-password", Role: domain.RoleJobSeeker})
		assertAppError(t, err, apperror.KindAuth, "Invalid Email or Password")
	})

	t.Run("Should reject a role mismatch", func(t *testing.T) {
		uc, users, _, _ := newAuth()
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(stored(), nil)

		_, _, err := uc.Login(context.Background(), domain.LoginInput{Email: "jane@example.com", Password: "password123", Role: domain.RoleEmployer})
		assertAppError(t, err, apperror.KindAuth, "User with this role is not found!")
	})

	t.Run("Should succeed when all checks pass", func(t *testing.T) {
		uc, users, tokens, _ := newAuth()
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(stored(), nil)
		tokens.On("Issue", "u1").Return(&domain.Session{Token: "tok"}, &domain.SessionClaims{}, nil)

		user, session, err := uc.Login(context.Background(), domain.LoginInput{Email: "jane@example.com", Password: "password123", Role: domain.RoleJobSeeker})
		require.NoError(t, err)
		assert.Equal(t, "tok", session.Token)
		assert.Empty(t, user.Password)
	})
}

func TestResolveSession(t *testing.T) {
	claims := &domain.SessionClaims{TokenID: "jti", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("Missing token", func(t *testing.T) {
		uc, _, _, _ := newAuth()
		_, err := uc.ResolveSession(context.Background(), "")
		assertAppError(t, err, apperror.KindAuth, "User Not Authorized")
	})

	t.Run("Expired token", func(t *testing.T) {
		uc, _, tokens, _ := newAuth()
		tokens.On("Verify", "old").Return(nil, domain.ErrTokenExpired)
		_, err := uc.ResolveSession(context.Background(), "old")
		assertAppError(t, err, apperror.KindAuth, "Json Web Token is Expired, Try again.")
	})

	t.Run("Invalid token", func(t *testing.T) {
		uc, _, tokens, _ := newAuth()
		tokens.On("Verify", "junk").Return(nil, domain.ErrTokenInvalid)
		_, err := uc.ResolveSession(context.Background(), "junk")
		assertAppError(t, err, apperror.KindAuth, "Json Web Token is invalid, Try again.")
	})

	t.Run("Revoked token", func(t *testing.T) {
		uc, _, tokens, sessions := newAuth()
		tokens.On("Verify", "tok").Return(claims, nil)
		sessions.On("IsRevoked", mock.Anything, "jti").Return(true, nil)
		_, err := uc.ResolveSession(context.Background(), "tok")
		assertAppError(t, err, apperror.KindAuth, "Json Web Token is invalid, Try again.")
	})

	t.Run("Deleted user", func(t *testing.T) {
		uc, users, tokens, sessions := newAuth()
		tokens.On("Verify", "tok").Return(claims, nil)
		sessions.On("IsRevoked", mock.Anything, "jti").Return(false, nil)
		users.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		_, err := uc.ResolveSession(context.Background(), "tok")
		assertAppError(t, err, apperror.KindAuth, "User Not Authorized")
	})

	t.Run("Valid session", func(t *testing.T) {
		uc, users, tokens, sessions := newAuth()
		tokens.On("Verify", "tok").Return(claims, nil)
		sessions.On("IsRevoked", mock.Anything, "jti").Return(false, nil)
		users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Password: "hashed:x", Role: domain.RoleEmployer}, nil)

		user, err := uc.ResolveSession(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployer, user.Role)
		assert.Empty(t, user.Password)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	uc, _, tokens, sessions := newAuth()
	exp := time.Now().Add(time.Hour)
	tokens.On("Verify", "tok").Return(&domain.SessionClaims{TokenID: "jti", UserID: "u1", ExpiresAt: exp}, nil)
	sessions.On("Revoke", mock.Anything, "jti", exp).Return(errors.New("redis down"))

	// Never fails, even when the store does.
	uc.Logout(context.Background(), "tok")
	uc.Logout(context.Background(), "")
	sessions.AssertNumberOfCalls(t, "Revoke", 1)
}

// ---- Jobs ----

func newJobs() (domain.JobUsecase, *MockJobRepo) {
	repo := new(MockJobRepo)
	return usecase.NewJobUsecase(repo, validation.New(), zap.NewNop()), repo
}

func validJobInput() domain.JobInput {
	return domain.JobInput{
		Title:       "Backend Engineer",
		Description: "Build and run the job board API",
		Category:    "Engineering",
		Country:     "Germany",
		City:        "Berlin",
		Location:    strings.Repeat("Friedrichstrasse 1, 10117 Berlin ", 2),
	}
}

func TestPostJobSalaryExclusivity(t *testing.T) {
	cases := []struct {
		name  string
		fixed *int64
		from  *int64
		to    *int64
		msg   string
	}{
		{name: "fixed only", fixed: int64p(50000)},
		{name: "range only", from: int64p(1000), to: int64p(2000)},
		{name: "both", fixed: int64p(50000), from: int64p(1000), to: int64p(2000), msg: "Cannot Enter Fixed and Ranged Salary together."},
		{name: "neither", msg: "Please either provide fixed salary or ranged salary."},
		{name: "half range", from: int64p(1000), msg: "Please either provide fixed salary or ranged salary."},
		{name: "zero counts as missing", fixed: int64p(0), msg: "Please either provide fixed salary or ranged salary."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newJobs()
			repo.On("Create", mock.Anything, mock.Anything).Return(nil)

			in := validJobInput()
			in.FixedSalary, in.SalaryFrom, in.SalaryTo = tc.fixed, tc.from, tc.to
			job, err := uc.PostJob(context.Background(), employer, in)
			if tc.msg == "" {
				require.NoError(t, err)
				assert.Equal(t, employer.UserID, job.PostedBy)
				assert.False(t, job.Expired)
				return
			}
			assertAppError(t, err, apperror.KindValidation, tc.msg)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPostJobValidation(t *testing.T) {
	uc, _ := newJobs()

	in := validJobInput()
	in.City = ""
	_, err := uc.PostJob(context.Background(), employer, in)
	assertAppError(t, err, apperror.KindValidation, "Please provide full job details.")

	in = validJobInput()
	in.FixedSalary = int64p(50000)
	in.Location = "Too short"
	_, err = uc.PostJob(context.Background(), employer, in)
	assertAppError(t, err, apperror.KindValidation, "job location must contain at least 50 characters!")
}

func TestJobSeekerForbiddenOnEmployerJobOps(t *testing.T) {
	uc, repo := newJobs()
	ctx := context.Background()
	msg := "Job Seeker not allowed to access this resource."

	_, err := uc.PostJob(ctx, jobSeeker, validJobInput())
	assertAppError(t, err, apperror.KindForbidden, msg)

	err = uc.UpdateJob(ctx, jobSeeker, jobID, domain.JobPatch{})
	assertAppError(t, err, apperror.KindForbidden, msg)

	err = uc.DeleteJob(ctx, jobSeeker, jobID)
	assertAppError(t, err, apperror.KindForbidden, msg)

	_, err = uc.ListMyJobs(ctx, jobSeeker)
	assertAppError(t, err, apperror.KindForbidden, msg)

	repo.AssertExpectations(t)
}

func TestUpdateJob(t *testing.T) {
	existing := func() *domain.Job {
		in := validJobInput()
		return &domain.Job{ID: jobID, Title: in.Title, Description: in.Description, Category: in.Category,
			Country: in.Country, City: in.City, Location: in.Location, FixedSalary: int64p(1), PostedBy: employer.UserID}
	}

	t.Run("Should 404 on unknown job", func(t *testing.T) {
		uc, repo := newJobs()
		repo.On("GetByID", mock.Anything, jobID).Return(nil, domain.ErrNotFound)
		err := uc.UpdateJob(context.Background(), employer, jobID, domain.JobPatch{})
		assertAppError(t, err, apperror.KindNotFound, "OOPS! Job not found.")
	})

	t.Run("Should validate the merged job", func(t *testing.T) {
		uc, repo := newJobs()
		repo.On("GetByID", mock.Anything, jobID).Return(existing(), nil)
		title := "Go"
		err := uc.UpdateJob(context.Background(), employer, jobID, domain.JobPatch{Title: &title})
		assertAppError(t, err, apperror.KindValidation, "job title must contain at least 3 characters!")
	})

	t.Run("Should persist the patch", func(t *testing.T) {
		uc, repo := newJobs()
		repo.On("GetByID", mock.Anything, jobID).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.Expired && j.PostedBy == employer.UserID
		})).Return(nil)

		expired := true
		require.NoError(t, uc.UpdateJob(context.Background(), employer, jobID, domain.JobPatch{Expired: &expired}))
		repo.AssertExpectations(t)
	})

	t.Run("Should reject adding a range to a fixed salary", func(t *testing.T) {
		uc, repo := newJobs()
		repo.On("GetByID", mock.Anything, jobID).Return(existing(), nil)
		patch := domain.JobPatch{SalaryFrom: domain.SetSalary(1000), SalaryTo: domain.SetSalary(2000)}
		err := uc.UpdateJob(context.Background(), employer, jobID, patch)
		assertAppError(t, err, apperror.KindValidation, "Cannot Enter Fixed and Ranged Salary together.")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should reject clearing the only salary", func(t *testing.T) {
		uc, repo := newJobs()
		repo.On("GetByID", mock.Anything, jobID).Return(existing(), nil)
		err := uc.UpdateJob(context.Background(), employer, jobID, domain.JobPatch{FixedSalary: domain.SalaryPatch{Set: true}})
		assertAppError(t, err, apperror.KindValidation, "Please either provide fixed salary or ranged salary.")
	})

	t.Run("Should switch from fixed to ranged", func(t *testing.T) {
		uc, repo := newJobs()
		repo.On("GetByID", mock.Anything, jobID).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.FixedSalary == nil && *j.SalaryFrom == 1000 && *j.SalaryTo == 2000
		})).Return(nil)

		patch := domain.JobPatch{
			FixedSalary: domain.SetSalary(0),
			SalaryFrom:  domain.SetSalary(1000),
			SalaryTo:    domain.SetSalary(2000),
		}
		require.NoError(t, uc.UpdateJob(context.Background(), employer, jobID, patch))
		repo.AssertExpectations(t)
	})
}

func TestSalaryPatchJSON(t *testing.T) {
	var patch domain.JobPatch
	require.NoError(t, json.Unmarshal([]byte(`{"fixedSalary": null, "salaryFrom": 1000}`), &patch))

	assert.True(t, patch.FixedSalary.Set)
	assert.Nil(t, patch.FixedSalary.Value)
	assert.True(t, patch.SalaryFrom.Set)
	assert.Equal(t, int64(1000), *patch.SalaryFrom.Value)
	assert.False(t, patch.SalaryTo.Set)
}

func TestDeleteJobNotFound(t *testing.T) {
	uc, repo := newJobs()
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	err := uc.DeleteJob(context.Background(), employer, jobID)
	assertAppError(t, err, apperror.KindNotFound, "OOPS! Job not found.")

	err = uc.DeleteJob(context.Background(), employer, "not-a-uuid")
	assertAppError(t, err, apperror.KindNotFound, "OOPS! Job not found.")
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetJob(t *testing.T) {
	uc, repo := newJobs()
	repo.On("GetByID", mock.Anything, jobID).Return(nil, domain.ErrNotFound)

	_, err := uc.GetJob(context.Background(), "zzz")
	assertAppError(t, err, apperror.KindNotFound, "Invalid ID / CastError")

	_, err = uc.GetJob(context.Background(), jobID)
	assertAppError(t, err, apperror.KindNotFound, "Job not found.")
}

func TestListJobsPassesThroughActive(t *testing.T) {
	uc, repo := newJobs()
	repo.On("FetchActive", mock.Anything).Return([]domain.Job{{ID: "a"}}, nil)

	jobs, err := uc.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

// ---- Applications ----

func newApplications() (domain.ApplicationUsecase, *MockApplicationRepo, *MockJobRepo, *MockUploader) {
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	up := new(MockUploader)
	return usecase.NewApplicationUsecase(apps, jobs, up, validation.New(), zap.NewNop()), apps, jobs, up
}

func pngResume(t *testing.T, declared string) *domain.ResumeFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))
	return &domain.ResumeFile{Filename: "cv.png", ContentType: declared, Data: buf.Bytes()}
}

// 1x1 lossless WEBP.
const webpPixel = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

// resumeAs returns a resume whose content really is of the declared type.
func resumeAs(t *testing.T, declared string) *domain.ResumeFile {
	t.Helper()
	switch declared {
	case "image/jpg", "image/jpeg":
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3)), nil))
		return &domain.ResumeFile{Filename: "cv.jpeg", ContentType: declared, Data: buf.Bytes()}
	case "image/webp":
		data, err := base64.StdEncoding.DecodeString(webpPixel)
		require.NoError(t, err)
		return &domain.ResumeFile{Filename: "cv.webp", ContentType: declared, Data: data}
	}
	return pngResume(t, declared)
}

func validApplication() domain.ApplicationInput {
	return domain.ApplicationInput{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		CoverLetter: "I would like to apply.",
		Phone:       "5550100",
		Address:     "Main Street 1",
		JobID:       jobID,
	}
}

var storedResume = &domain.Resume{PublicID: "resumes/abc.png", URL: "https://cdn.example.com/resumes/abc.png"}

func TestPostApplicationResumeChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("Employer is forbidden", func(t *testing.T) {
		uc, _, _, _ := newApplications()
		_, err := uc.PostApplication(ctx, employer, validApplication(), pngResume(t, "image/png"))
		assertAppError(t, err, apperror.KindForbidden, "Employer is not allowed to access this resource!")
	})

	t.Run("Missing file", func(t *testing.T) {
		uc, _, _, _ := newApplications()
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), nil)
		assertAppError(t, err, apperror.KindValidation, "Resume file required")
	})

	t.Run("Declared gif", func(t *testing.T) {
		uc, _, _, up := newApplications()
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), pngResume(t, "image/gif"))
		assertAppError(t, err, apperror.KindValidation, "Invalid file type. Please upload your resume in PNG, JPG, or WEBP format")
		up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("Declared png but content is not an image", func(t *testing.T) {
		uc, _, _, _ := newApplications()
		file := &domain.ResumeFile{Filename: "cv.png", ContentType: "image/png", Data: []byte("%PDF-1.7 not an image")}
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), file)
		assertAppError(t, err, apperror.KindValidation, "Invalid file type. Please upload your resume in PNG, JPG, or WEBP format")
	})

	t.Run("Declared jpeg but content is png", func(t *testing.T) {
		uc, _, _, up := newApplications()
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), pngResume(t, "image/jpeg"))
		assertAppError(t, err, apperror.KindValidation, "Invalid file type. Please upload your resume in PNG, JPG, or WEBP format")
		up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("Uploader failure", func(t *testing.T) {
		uc, _, _, up := newApplications()
		up.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), pngResume(t, "image/png"))
		assertAppError(t, err, apperror.KindUpload, "Failed to upload resume.")
	})

	t.Run("Uploader rejects content", func(t *testing.T) {
		uc, _, _, up := newApplications()
		up.On("Upload", mock.Anything, mock.Anything).Return(nil, apperror.Validation("Resume rejected by malware scan."))
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), pngResume(t, "image/png"))
		assertAppError(t, err, apperror.KindValidation, "Resume rejected by malware scan.")
		up.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Uploader returns no identifier", func(t *testing.T) {
		uc, _, _, up := newApplications()
		up.On("Upload", mock.Anything, mock.Anything).Return(&domain.Resume{}, nil)
		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), pngResume(t, "image/png"))
		assertAppError(t, err, apperror.KindUpload, "Failed to upload resume.")
	})
}

func TestPostApplicationCleansUpAfterLateFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown job", func(t *testing.T) {
		uc, _, jobs, up := newApplications()
		up.On("Upload", mock.Anything, mock.Anything).Return(storedResume, nil)
		up.On("Delete", mock.Anything, storedResume.PublicID).Return(nil)
		jobs.On("GetByID", mock.Anything, jobID).Return(nil, domain.ErrNotFound)

		_, err := uc.PostApplication(ctx, jobSeeker, validApplication(), pngResume(t, "image/png"))
		assertAppError(t, err, apperror.KindNotFound, "Job not found!")
		up.AssertCalled(t, "Delete", mock.Anything, storedResume.PublicID)
	})

	t.Run("Missing fields", func(t *testing.T) {
		uc, _, jobs, up := newApplications()
		up.On("Upload", mock.Anything, mock.Anything).Return(storedResume, nil)
		up.On("Delete", mock.Anything, storedResume.PublicID).Return(errors.New("ignored"))
		jobs.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, PostedBy: employer.UserID}, nil)

		in := validApplication()
		in.CoverLetter = ""
		_, err := uc.PostApplication(ctx, jobSeeker, in, pngResume(t, "image/png"))
		assertAppError(t, err, apperror.KindValidation, "Please fill all fields")
		up.AssertCalled(t, "Delete", mock.Anything, storedResume.PublicID)
	})
}

func TestPostApplicationSucceeds(t *testing.T) {
	wantExt := map[string]string{"image/png": ".png", "image/jpg": ".jpg", "image/jpeg": ".jpg", "image/webp": ".webp"}
	for declared, ext := range wantExt {
		t.Run(declared, func(t *testing.T) {
			uc, apps, jobs, up := newApplications()
			up.On("Upload", mock.Anything, mock.MatchedBy(func(f domain.ResumeFile) bool {
				return f.Extension == ext
			})).Return(storedResume, nil)
			jobs.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, PostedBy: employer.UserID}, nil)
			apps.On("Create", mock.Anything, mock.Anything).Return(nil)

			app, err := uc.PostApplication(context.Background(), jobSeeker, validApplication(), resumeAs(t, declared))
			require.NoError(t, err)
			assert.NotEmpty(t, app.Resume.PublicID)
			assert.NotEmpty(t, app.Resume.URL)
			assert.Equal(t, domain.PartyRef{User: employer.UserID, Role: domain.RoleEmployer}, app.EmployerID)
			assert.Equal(t, domain.PartyRef{User: jobSeeker.UserID, Role: domain.RoleJobSeeker}, app.ApplicantID)
			up.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestListApplicationsRoleGates(t *testing.T) {
	uc, apps, _, _ := newApplications()
	ctx := context.Background()

	_, err := uc.ListApplicationsAsEmployer(ctx, jobSeeker)
	assertAppError(t, err, apperror.KindForbidden, "Job Seeker is not allowed to access this resource!")

	_, err = uc.ListApplicationsAsJobSeeker(ctx, employer)
	assertAppError(t, err, apperror.KindForbidden, "Employer is not allowed to access this resource!")

	apps.On("FetchByEmployer", mock.Anything, employer.UserID).Return([]domain.Application{{ID: "a1"}}, nil)
	list, err := uc.ListApplicationsAsEmployer(ctx, employer)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteApplication(t *testing.T) {
	ctx := context.Background()
	const appID = "44444444-4444-4444-4444-444444444444"

	t.Run("Employer is forbidden", func(t *testing.T) {
		uc, apps, _, _ := newApplications()
		apps.On("GetByID", mock.Anything, appID).Return(&domain.Application{ID: appID}, nil)
		err := uc.DeleteApplication(ctx, employer, appID)
		assertAppError(t, err, apperror.KindForbidden, "Employer is not allowed to access this resource!")
		apps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Unknown or malformed id", func(t *testing.T) {
		uc, apps, _, _ := newApplications()
		apps.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		assertAppError(t, uc.DeleteApplication(ctx, jobSeeker, appID), apperror.KindNotFound, "Oops, application not found!")
		assertAppError(t, uc.DeleteApplication(ctx, jobSeeker, "bogus"), apperror.KindNotFound, "Oops, application not found!")
	})

	t.Run("Any job seeker may delete", func(t *testing.T) {
		uc, apps, _, _ := newApplications()
		apps.On("GetByID", mock.Anything, appID).Return(&domain.Application{ID: appID, ApplicantID: domain.PartyRef{User: "someone-else"}}, nil)
		apps.On("Delete", mock.Anything, appID).Return(nil)
		require.NoError(t, uc.DeleteApplication(ctx, jobSeeker, appID))
	})
}

// ---- Health ----

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.PingFunc{
		"database": func(context.Context) error { return nil },
		"redis":    nil,
		"storage":  func(context.Context) error { return errors.New("unreachable") },
	}, zap.NewNop())

	status, healthy := uc.Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "disabled", "storage": "down"}, status)
}
