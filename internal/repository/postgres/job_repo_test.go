package postgres_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/postgres"
	"job-board-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testPool connects to TEST_DATABASE_URL and applies the schema.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, url, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func TestJobRepositoryFetchActiveSkipsExpired(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	poster := &domain.User{
		Name:      "Erin Employer",
		Email:     uuid.NewString() + "@example.com",
		Phone:     "5550100",
		Password:  "hashed",
		Role:      domain.RoleEmployer,
		CreatedAt: time.Now(),
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, poster))

	jobs := postgres.NewJobRepository(pool)
	fixed := int64(50000)
	newJob := func(title string, expired bool) *domain.Job {
		return &domain.Job{
			Title:       title,
			Description: "Build and run backend services.",
			Category:    "Engineering",
			Country:     "Germany",
			City:        "Berlin",
			Location:    strings.Repeat("Alexanderplatz ", 4),
			FixedSalary: &fixed,
			Expired:     expired,
			JobPostedOn: time.Now(),
			PostedBy:    poster.ID,
		}
	}
	active, expired := newJob("Active role", false), newJob("Expired role", true)
	require.NoError(t, jobs.Create(ctx, active))
	require.NoError(t, jobs.Create(ctx, expired))
	t.Cleanup(func() {
		jobs.Delete(ctx, active.ID)
		jobs.Delete(ctx, expired.ID)
		pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, poster.ID)
	})

	list, err := jobs.FetchActive(ctx)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, j := range list {
		assert.False(t, j.Expired, j.ID)
		ids[j.ID] = true
	}
	assert.True(t, ids[active.ID])
	assert.False(t, ids[expired.ID])

	mine, err := jobs.FetchByPoster(ctx, poster.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
