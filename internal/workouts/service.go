package workouts

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/2beens/gymbuddy/internal/auth"
	"github.com/2beens/gymbuddy/internal/catalog"
	"github.com/2beens/gymbuddy/internal/partners"
	"github.com/2beens/gymbuddy/internal/telemetry/metrics"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNoCatalogExercises = errors.New("no exercises found")
	ErrInvalidRequest     = errors.New("invalid request")
)

const (
	exercisesPerBodyPart = 2
	defaultPartnerName   = "Partner"
	titleDateLayout      = "1/2/06"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts

type workoutsRepo interface {
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]Workout, error)
	ListFavorites(ctx context.Context, userID string) ([]Workout, error)
	GetTemplate(ctx context.Context, workoutID string) (*Workout, error)
	Create(ctx context.Context, workout Workout) (*Workout, error)
	InsertMissingSets(ctx context.Context, sets []ExerciseSet) (int, error)
	UserSets(ctx context.Context, userID string, exerciseIDs []string) (map[string][]ExerciseSet, error)
	WorkoutOwner(ctx context.Context, workoutID string) (string, error)
	ExerciseWorkoutID(ctx context.Context, exerciseID string) (string, error)
	SetFavorite(ctx context.Context, workoutID string, isFavorite bool) error
	DeleteWorkout(ctx context.Context, workoutID string) error
	DeleteExercise(ctx context.Context, exerciseID string) error
}

type exerciseCatalog interface {
	ByMuscleGroup(ctx context.Context, muscleGroup string) ([]catalog.Exercise, error)
}

type partnerFinder interface {
	AcceptedPartner(ctx context.Context, userID string) (*partners.Partner, error)
}

type Service struct {
	repo           workoutsRepo
	catalog        exerciseCatalog
	partners       partnerFinder
	metricsManager *metrics.Manager
	now            func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand
}

func NewService(
	repo workoutsRepo,
	catalog exerciseCatalog,
	partners partnerFinder,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		catalog:        catalog,
		partners:       partners,
		metricsManager: metricsManager,
		now:            time.Now,
		rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func parseID(id, what string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed %s id", ErrInvalidRequest, what)
	}
	return nil
}

// assertOwnsWorkout is the single ownership check used by every mutating
// operation.
func (s *Service) assertOwnsWorkout(ctx context.Context, userID, workoutID string) error {
	ownerID, err := s.repo.WorkoutOwner(ctx, workoutID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return fmt.Errorf("%w: workout %s", ErrNotAuthorized, workoutID)
	}
	return nil
}

func (s *Service) assertOwnsExercise(ctx context.Context, userID, exerciseID string) error {
	workoutID, err := s.repo.ExerciseWorkoutID(ctx, exerciseID)
	if err != nil {
		return err
	}
	if err := s.assertOwnsWorkout(ctx, userID, workoutID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Stats(ctx context.Context, userID string) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.stats")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}

	now := s.now()
	weekStart := StartOfWeek(now)

	workouts, err := s.repo.ListInRange(ctx, userID, weekStart, now)
	if err != nil {
		return nil, fmt.Errorf("list week workouts: %w", err)
	}
	own := aggregateWorkouts(workouts)

	stats := &Stats{
		WeeklyWorkouts:     own.total,
		CompletedWorkouts:  own.completed,
		CompletionRate:     own.completionRate(),
		ExerciseCompletion: own.exerciseCompletion,
	}

	partner, err := s.partners.AcceptedPartner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	if partner == nil {
		return stats, nil
	}

	partnerWorkouts, err := s.repo.ListInRange(ctx, partner.UserID, weekStart, now)
	if err != nil {
		return nil, fmt.Errorf("list partner week workouts: %w", err)
	}
	partnerAgg := aggregateWorkouts(partnerWorkouts)

	name := partner.Name
	if name == "" {
		name = defaultPartnerName
	}
	stats.Partner = &PartnerStats{
		Name:              name,
		CompletedWorkouts: partnerAgg.completed,
		CompletionRate:    partnerAgg.exerciseCompletion.Rate,
	}

	return stats, nil
}

// CurrentWeek returns this week's workouts with only the user's own sets.
// Sets missing up to an exercise's target are created before returning, so
// every exercise comes back with sets 1..target_sets.
func (s *Service) CurrentWeek(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.current_week")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}

	now := s.now()
	workouts, err := s.repo.ListInRange(ctx, userID, StartOfWeek(now), now)
	if err != nil {
		return nil, fmt.Errorf("list week workouts: %w", err)
	}

	var missing []ExerciseSet
	var incompleteExercises []string
	for wi := range workouts {
		for ei := range workouts[wi].Exercises {
			e := &workouts[wi].Exercises[ei]
			e.Sets = userSets(e.Sets, userID)

			setsToAdd := missingSets(e, userID)
			if len(setsToAdd) > 0 {
				missing = append(missing, setsToAdd...)
				incompleteExercises = append(incompleteExercises, e.ID)
			}
		}
	}

	if len(missing) == 0 {
		return workouts, nil
	}

	span.SetAttributes(attribute.Int("missing_sets", len(missing)))
	inserted, err := s.repo.InsertMissingSets(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("insert missing sets: %w", err)
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterMaterializedSets.Add(float64(inserted))
	}
	log.Tracef("current week: materialized %d/%d sets for user %s", inserted, len(missing), userID)

	// re-read, a concurrent caller may have inserted some of them first
	persisted, err := s.repo.UserSets(ctx, userID, incompleteExercises)
	if err != nil {
		return nil, fmt.Errorf("reload sets: %w", err)
	}
	for wi := range workouts {
		for ei := range workouts[wi].Exercises {
			e := &workouts[wi].Exercises[ei]
			if sets, ok := persisted[e.ID]; ok {
				e.Sets = sets
			}
		}
	}

	return workouts, nil
}

func userSets(sets []ExerciseSet, userID string) []ExerciseSet {
	own := make([]ExerciseSet, 0, len(sets))
	for _, set := range sets {
		if set.UserID == userID {
			own = append(own, set)
		}
	}
	slices.SortFunc(own, func(a, b ExerciseSet) int {
		return a.SetNumber - b.SetNumber
	})
	return own
}

// missingSets returns zeroed sets filling the lowest free set numbers until
// the user holds TargetSets sets. Expects e.Sets to hold only the user's sets.
func missingSets(e *Exercise, userID string) []ExerciseSet {
	need := e.TargetSets - len(e.Sets)
	if need <= 0 {
		return nil
	}

	existing := make(map[int]bool, len(e.Sets))
	for _, set := range e.Sets {
		existing[set.SetNumber] = true
	}

	missing := make([]ExerciseSet, 0, need)
	for n := 1; len(missing) < need; n++ {
		if existing[n] {
			continue
		}
		missing = append(missing, ExerciseSet{
			ExerciseID: e.ID,
			UserID:     userID,
			SetNumber:  n,
		})
	}
	return missing
}

func (s *Service) Favorites(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.favorites")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}

	workouts, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if workouts == nil {
		workouts = []Workout{}
	}
	return workouts, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, userID, workoutID string, isFavorite bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.toggle_favorite")
	span.SetAttributes(attribute.String("workout_id", workoutID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return auth.ErrNotAuthenticated
	}
	if err := parseID(workoutID, "workout"); err != nil {
		return err
	}
	if err := s.assertOwnsWorkout(ctx, userID, workoutID); err != nil {
		return err
	}

	return s.repo.SetFavorite(ctx, workoutID, isFavorite)
}

// AddToWeek clones a template workout (of any owner) into a fresh workout
// dated now, with zeroed sets 1..target_sets for the user.
func (s *Service) AddToWeek(ctx context.Context, userID, workoutID string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.add_to_week")
	span.SetAttributes(attribute.String("workout_id", workoutID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}
	if err := parseID(workoutID, "workout"); err != nil {
		return nil, err
	}

	template, err := s.repo.GetTemplate(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	clone := Workout{
		UserID:      userID,
		Title:       template.Title,
		WorkoutType: template.WorkoutType,
		Duration:    template.Duration,
		Difficulty:  template.Difficulty,
		Date:        s.now(),
		SharedWith:  []string{},
		Exercises:   make([]Exercise, 0, len(template.Exercises)),
	}
	for _, e := range template.Exercises {
		clone.Exercises = append(clone.Exercises, Exercise{
			Name:       e.Name,
			TargetSets: e.TargetSets,
			TargetReps: e.TargetReps,
			Notes:      e.Notes,
			Sets:       freshSets(userID, e.TargetSets),
		})
	}

	created, err := s.repo.Create(ctx, clone)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterClonedWorkouts.Inc()
	}
	return created, nil
}

func freshSets(userID string, targetSets int) []ExerciseSet {
	sets := make([]ExerciseSet, 0, targetSets)
	for n := 1; n <= targetSets; n++ {
		sets = append(sets, ExerciseSet{
			UserID:    userID,
			SetNumber: n,
		})
	}
	return sets
}

func (s *Service) DeleteWorkout(ctx context.Context, userID, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	span.SetAttributes(attribute.String("workout_id", workoutID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return auth.ErrNotAuthenticated
	}
	if err := parseID(workoutID, "workout"); err != nil {
		return err
	}
	if err := s.assertOwnsWorkout(ctx, userID, workoutID); err != nil {
		return err
	}

	return s.repo.DeleteWorkout(ctx, workoutID)
}

func (s *Service) DeleteExercise(ctx context.Context, userID, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete_exercise")
	span.SetAttributes(attribute.String("exercise_id", exerciseID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return auth.ErrNotAuthenticated
	}
	if err := parseID(exerciseID, "exercise"); err != nil {
		return err
	}
	if err := s.assertOwnsExercise(ctx, userID, exerciseID); err != nil {
		return err
	}

	return s.repo.DeleteExercise(ctx, exerciseID)
}

type setRange struct {
	min, max int
	reps     string
}

func rangesFor(workoutType string) setRange {
	if workoutType == WorkoutTypeStrength {
		return setRange{min: 3, max: 5, reps: "6-12"}
	}
	return setRange{min: 2, max: 3, reps: "12-15"}
}

// GenerateTitle joins the distinct body parts in first-occurrence order with
// "/" and appends the date as M/D/YY.
func GenerateTitle(bodyParts []string, date time.Time) string {
	seen := make(map[string]bool, len(bodyParts))
	distinct := make([]string, 0, len(bodyParts))
	for _, bp := range bodyParts {
		if seen[bp] {
			continue
		}
		seen[bp] = true
		distinct = append(distinct, bp)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(distinct, "/"), date.Format(titleDateLayout))
}

func exerciseNotes(e catalog.Exercise) string {
	grip := "Any"
	if e.GripStyle != nil && *e.GripStyle != "" {
		grip = *e.GripStyle
	}
	return fmt.Sprintf("Equipment: %s, Grip: %s", e.PrimaryEquipment, grip)
}

func validateGenerateParams(params GenerateParams) error {
	if strings.TrimSpace(params.WorkoutType) == "" {
		return fmt.Errorf("%w: workout type is required", ErrInvalidRequest)
	}
	if !IsValidDifficulty(params.Difficulty) {
		return fmt.Errorf("%w: difficulty must be one of %s", ErrInvalidRequest, strings.Join(Difficulties, ", "))
	}
	if len(params.Exercises) == 0 {
		return fmt.Errorf("%w: at least one body part is required", ErrInvalidRequest)
	}
	for _, e := range params.Exercises {
		if strings.TrimSpace(e.BodyPart) == "" {
			return fmt.Errorf("%w: empty body part", ErrInvalidRequest)
		}
	}
	return nil
}

// pick shuffles candidates uniformly and returns the first n, each with a
// target set count drawn uniformly from r.
func (s *Service) pick(candidates []catalog.Exercise, n int, r setRange) ([]catalog.Exercise, []int) {
	s.randMu.Lock()
	defer s.randMu.Unlock()

	shuffled := slices.Clone(candidates)
	s.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}

	targetSets := make([]int, len(shuffled))
	for i := range shuffled {
		targetSets[i] = r.min + s.rand.Intn(r.max-r.min+1)
	}
	return shuffled, targetSets
}

func (s *Service) Generate(ctx context.Context, userID string, params GenerateParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.generate")
	span.SetAttributes(attribute.String("workout_type", params.WorkoutType))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}
	if err := validateGenerateParams(params); err != nil {
		return nil, err
	}

	now := s.now()
	bodyParts := make([]string, len(params.Exercises))
	for i, e := range params.Exercises {
		bodyParts[i] = e.BodyPart
	}
	ranges := rangesFor(params.WorkoutType)

	var exercises []Exercise
	for _, bodyPart := range bodyParts {
		candidates, err := s.catalog.ByMuscleGroup(ctx, bodyPart)
		if err != nil {
			return nil, fmt.Errorf("get catalog exercises for %s: %w", bodyPart, err)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w for %s", ErrNoCatalogExercises, bodyPart)
		}

		picked, targetSets := s.pick(candidates, exercisesPerBodyPart, ranges)
		for i, c := range picked {
			exercises = append(exercises, Exercise{
				Name:       c.Name,
				TargetSets: targetSets[i],
				TargetReps: ranges.reps,
				Notes:      exerciseNotes(c),
				Sets:       freshSets(userID, targetSets[i]),
			})
		}
	}

	workout := Workout{
		UserID:      userID,
		Title:       GenerateTitle(bodyParts, now),
		WorkoutType: params.WorkoutType,
		Duration:    1,
		Difficulty:  params.Difficulty,
		Date:        now,
		SharedWith:  []string{},
		Exercises:   exercises,
	}
	if params.Sharing != nil {
		workout.IsShared = params.Sharing.IsShared
		if params.Sharing.SharedWith != nil {
			workout.SharedWith = params.Sharing.SharedWith
		}
	}

	created, err := s.repo.Create(ctx, workout)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterGeneratedWorkouts.WithLabelValues(params.WorkoutType).Inc()
	}
	log.Debugf("generated workout %s [%s] for user %s", created.ID, created.Title, userID)

	return created, nil
}
