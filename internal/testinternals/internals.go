package testinternals

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/gymbuddy/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const testDBName = "gymbuddy"

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewTestDBPool connects to the integration database, applies the schema and
// truncates every table. The pool is closed on test cleanup.
func NewTestDBPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := envOr("POSTGRES_HOST", "localhost")
	t.Logf("using postres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         envOr("POSTGRES_PORT", "5432"),
		DBName:         envOr("POSTGRES_DB", testDBName),
		DBPassword:     os.Getenv("POSTGRES_PASSWORD"),
		TracingEnabled: false,
	})
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	require.NoError(t, db.Migrate(timeoutCtx, dbPool))
	_, err = dbPool.Exec(timeoutCtx, `
		TRUNCATE auth_identity, users, workout_partners, daily_workouts,
			workout_exercises, exercise_sets, available_exercises CASCADE`)
	require.NoError(t, err)

	return dbPool
}

// SeedUser inserts an identity with a profile and returns the identity id.
func SeedUser(t *testing.T, dbPool *pgxpool.Pool, username string) string {
	t.Helper()

	ctx := context.Background()
	authID := uuid.NewString()

	_, err := dbPool.Exec(ctx,
		`INSERT INTO auth_identity (id, email, password_hash) VALUES ($1, $2, $3)`,
		authID, gofakeit.Email(), "not-a-real-hash",
	)
	require.NoError(t, err)

	_, err = dbPool.Exec(ctx,
		`INSERT INTO users (auth_id, email, name, username) VALUES ($1, $2, $3, $4)`,
		authID, gofakeit.Email(), gofakeit.Name(), username,
	)
	require.NoError(t, err)

	return authID
}

// SeedCatalog inserts catalog exercises for one muscle group.
func SeedCatalog(t *testing.T, dbPool *pgxpool.Pool, muscleGroup string, names ...string) {
	t.Helper()

	for _, name := range names {
		_, err := dbPool.Exec(context.Background(),
			`INSERT INTO available_exercises (name, main_muscle_group, primary_equipment) VALUES ($1, $2, $3)`,
			name, muscleGroup, "Dumbbell",
		)
		require.NoError(t, err)
	}
}
