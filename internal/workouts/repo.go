package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymbuddy/internal/db"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const workoutColumns = `id, user_id, title, workout_type, duration, difficulty, date,
	completed, is_favorite, is_shared, shared_with, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanWorkout(row pgx.CollectableRow) (Workout, error) {
	var w Workout
	err := row.Scan(
		&w.ID, &w.UserID, &w.Title, &w.WorkoutType, &w.Duration, &w.Difficulty, &w.Date,
		&w.Completed, &w.IsFavorite, &w.IsShared, &w.SharedWith, &w.CreatedAt,
	)
	if w.SharedWith == nil {
		w.SharedWith = []string{}
	}
	w.Exercises = []Exercise{}
	return w, err
}

func scanExercise(row pgx.CollectableRow) (Exercise, error) {
	var e Exercise
	err := row.Scan(&e.ID, &e.DailyWorkoutID, &e.Name, &e.TargetSets, &e.TargetReps, &e.Notes)
	e.Sets = []ExerciseSet{}
	return e, err
}

func scanSet(row pgx.CollectableRow) (ExerciseSet, error) {
	var s ExerciseSet
	err := row.Scan(&s.ID, &s.ExerciseID, &s.UserID, &s.SetNumber, &s.Weight, &s.Reps, &s.Completed)
	return s, err
}

// ListInRange returns the user's workouts dated within [from, to], oldest
// first, with exercises and the sets of every user.
func (r *Repo) ListInRange(ctx context.Context, userID string, from, to time.Time) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_in_range")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM daily_workouts
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, created_at, id`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	workouts, err := pgx.CollectRows(rows, scanWorkout)
	if err != nil {
		return nil, fmt.Errorf("collect workouts: %w", err)
	}

	if err := attachExercises(ctx, r.db, workouts, true); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *Repo) ListFavorites(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_favorites")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM daily_workouts
		WHERE user_id = $1 AND is_favorite
		ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	workouts, err := pgx.CollectRows(rows, scanWorkout)
	if err != nil {
		return nil, fmt.Errorf("collect workouts: %w", err)
	}

	if err := attachExercises(ctx, r.db, workouts, true); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetTemplate loads a workout of any owner with its exercise definitions
// (no sets).
func (r *Repo) GetTemplate(ctx context.Context, workoutID string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get_template")
	span.SetAttributes(attribute.String("workout_id", workoutID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM daily_workouts
		WHERE id = $1`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}
	workout, err := pgx.CollectExactlyOneRow(rows, scanWorkout)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	workouts := []Workout{workout}
	if err := attachExercises(ctx, r.db, workouts, false); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

func attachExercises(ctx context.Context, q querier, workouts []Workout, withSets bool) error {
	if len(workouts) == 0 {
		return nil
	}

	workoutIDs := make([]string, len(workouts))
	workoutIdx := make(map[string]int, len(workouts))
	for i, w := range workouts {
		workoutIDs[i] = w.ID
		workoutIdx[w.ID] = i
	}

	rows, err := q.Query(ctx, `
		SELECT id, daily_workout_id, name, target_sets, target_reps, notes
		FROM workout_exercises
		WHERE daily_workout_id = ANY($1::uuid[])
		ORDER BY position, created_at, id`,
		workoutIDs,
	)
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}
	exercises, err := pgx.CollectRows(rows, scanExercise)
	if err != nil {
		return fmt.Errorf("collect exercises: %w", err)
	}

	if withSets && len(exercises) > 0 {
		exerciseIDs := make([]string, len(exercises))
		exerciseIdx := make(map[string]int, len(exercises))
		for i, e := range exercises {
			exerciseIDs[i] = e.ID
			exerciseIdx[e.ID] = i
		}

		rows, err := q.Query(ctx, `
			SELECT id, exercise_id, user_id, set_number, weight, reps, completed
			FROM exercise_sets
			WHERE exercise_id = ANY($1::uuid[])
			ORDER BY set_number, user_id`,
			exerciseIDs,
		)
		if err != nil {
			return fmt.Errorf("query sets: %w", err)
		}
		sets, err := pgx.CollectRows(rows, scanSet)
		if err != nil {
			return fmt.Errorf("collect sets: %w", err)
		}
		for _, s := range sets {
			i := exerciseIdx[s.ExerciseID]
			exercises[i].Sets = append(exercises[i].Sets, s)
		}
	}

	for _, e := range exercises {
		i := workoutIdx[e.DailyWorkoutID]
		workouts[i].Exercises = append(workouts[i].Exercises, e)
	}
	return nil
}

// Create inserts the workout, its exercises and their sets in a single
// transaction. Set user ids and numbers come from the caller; exercise ids
// are filled in here.
func (r *Repo) Create(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	span.SetAttributes(attribute.Int("exercises", len(workout.Exercises)))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if workout.SharedWith == nil {
		workout.SharedWith = []string{}
	}

	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO daily_workouts
				(user_id, title, workout_type, duration, difficulty, date, completed, is_favorite, is_shared, shared_with)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at`,
			workout.UserID, workout.Title, workout.WorkoutType, workout.Duration, workout.Difficulty, workout.Date,
			workout.Completed, workout.IsFavorite, workout.IsShared, workout.SharedWith,
		).Scan(&workout.ID, &workout.CreatedAt); err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}

		var sets []ExerciseSet
		for i := range workout.Exercises {
			e := &workout.Exercises[i]
			e.DailyWorkoutID = workout.ID
			if err := tx.QueryRow(ctx, `
				INSERT INTO workout_exercises (daily_workout_id, name, target_sets, target_reps, notes, position)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				e.DailyWorkoutID, e.Name, e.TargetSets, e.TargetReps, e.Notes, i,
			).Scan(&e.ID); err != nil {
				return fmt.Errorf("insert exercise %s: %w", e.Name, err)
			}
			for _, s := range e.Sets {
				s.ExerciseID = e.ID
				sets = append(sets, s)
			}
			e.Sets = []ExerciseSet{}
		}

		inserted, err := insertSets(ctx, tx, sets)
		if err != nil {
			return err
		}
		exerciseIdx := make(map[string]int, len(workout.Exercises))
		for i, e := range workout.Exercises {
			exerciseIdx[e.ID] = i
		}
		for _, s := range inserted {
			i := exerciseIdx[s.ExerciseID]
			workout.Exercises[i].Sets = append(workout.Exercises[i].Sets, s)
		}

		// duration is maintained by a trigger on workout_exercises
		if err := tx.QueryRow(ctx,
			`SELECT duration FROM daily_workouts WHERE id = $1`, workout.ID,
		).Scan(&workout.Duration); err != nil {
			return fmt.Errorf("read duration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if workout.Exercises == nil {
		workout.Exercises = []Exercise{}
	}
	return &workout, nil
}

// insertSets inserts all sets in one statement. Rows clashing with an
// existing (exercise, user, set number) are skipped; only the inserted rows
// are returned, ordered by exercise and set number.
func insertSets(ctx context.Context, q querier, sets []ExerciseSet) ([]ExerciseSet, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	exerciseIDs := make([]string, len(sets))
	userIDs := make([]string, len(sets))
	setNumbers := make([]int32, len(sets))
	weights := make([]float64, len(sets))
	reps := make([]int32, len(sets))
	completed := make([]bool, len(sets))
	for i, s := range sets {
		exerciseIDs[i] = s.ExerciseID
		userIDs[i] = s.UserID
		setNumbers[i] = int32(s.SetNumber)
		weights[i] = s.Weight
		reps[i] = int32(s.Reps)
		completed[i] = s.Completed
	}

	rows, err := q.Query(ctx, `
		WITH inserted AS (
			INSERT INTO exercise_sets (exercise_id, user_id, set_number, weight, reps, completed)
			SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::int[], $4::numeric[], $5::int[], $6::bool[])
			ON CONFLICT (exercise_id, user_id, set_number) DO NOTHING
			RETURNING id, exercise_id, user_id, set_number, weight, reps, completed
		)
		SELECT id, exercise_id, user_id, set_number, weight, reps, completed
		FROM inserted
		ORDER BY exercise_id, set_number`,
		exerciseIDs, userIDs, setNumbers, weights, reps, completed,
	)
	if err != nil {
		return nil, fmt.Errorf("insert sets: %w", err)
	}
	inserted, err := pgx.CollectRows(rows, scanSet)
	if err != nil {
		return nil, fmt.Errorf("collect inserted sets: %w", err)
	}
	return inserted, nil
}

// InsertMissingSets idempotently inserts sets and reports how many rows were
// actually created.
func (r *Repo) InsertMissingSets(ctx context.Context, sets []ExerciseSet) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.insert_missing_sets")
	span.SetAttributes(attribute.Int("sets", len(sets)))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	inserted, err := insertSets(ctx, r.db, sets)
	if err != nil {
		return 0, err
	}
	return len(inserted), nil
}

// UserSets returns the user's sets of the given exercises keyed by exercise
// id, each list ordered by set number.
func (r *Repo) UserSets(ctx context.Context, userID string, exerciseIDs []string) (_ map[string][]ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.user_sets")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, exercise_id, user_id, set_number, weight, reps, completed
		FROM exercise_sets
		WHERE user_id = $1 AND exercise_id = ANY($2::uuid[])
		ORDER BY exercise_id, set_number`,
		userID, exerciseIDs,
	)
	if err != nil {
		return nil, err
	}
	sets, err := pgx.CollectRows(rows, scanSet)
	if err != nil {
		return nil, fmt.Errorf("collect sets: %w", err)
	}

	byExercise := make(map[string][]ExerciseSet, len(exerciseIDs))
	for _, s := range sets {
		byExercise[s.ExerciseID] = append(byExercise[s.ExerciseID], s)
	}
	return byExercise, nil
}

func (r *Repo) Counts(ctx context.Context, userID string) (total, completed int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.counts")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE completed)
		FROM daily_workouts
		WHERE user_id = $1`,
		userID,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *Repo) WorkoutOwner(ctx context.Context, workoutID string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.owner")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var ownerID string
	err = r.db.QueryRow(ctx, `SELECT user_id FROM daily_workouts WHERE id = $1`, workoutID).Scan(&ownerID)
	if err != nil {
		if pkg.IsNoRows(err) {
			return "", ErrWorkoutNotFound
		}
		return "", err
	}
	return ownerID, nil
}

func (r *Repo) ExerciseWorkoutID(ctx context.Context, exerciseID string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.exercise_workout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var workoutID string
	err = r.db.QueryRow(ctx, `SELECT daily_workout_id FROM workout_exercises WHERE id = $1`, exerciseID).Scan(&workoutID)
	if err != nil {
		if pkg.IsNoRows(err) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}
	return workoutID, nil
}

func (r *Repo) SetFavorite(ctx context.Context, workoutID string, isFavorite bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.set_favorite")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `UPDATE daily_workouts SET is_favorite = $2 WHERE id = $1`, workoutID, isFavorite)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// DeleteWorkout removes the workout; exercises and sets go with it via
// ON DELETE CASCADE.
func (r *Repo) DeleteWorkout(ctx context.Context, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM daily_workouts WHERE id = $1`, workoutID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) DeleteExercise(ctx context.Context, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_exercises WHERE id = $1`, exerciseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
