package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymbuddy/internal/auth"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type workoutsService interface {
	Stats(ctx context.Context, userID string) (*Stats, error)
	CurrentWeek(ctx context.Context, userID string) ([]Workout, error)
	Favorites(ctx context.Context, userID string) ([]Workout, error)
	ToggleFavorite(ctx context.Context, userID, workoutID string, isFavorite bool) error
	AddToWeek(ctx context.Context, userID, workoutID string) (*Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID string) error
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
	Generate(ctx context.Context, userID string, params GenerateParams) (*Workout, error)
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

type favoriteRequest struct {
	IsFavorite *bool `json:"isFavorite"`
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		pkg.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrNotAuthorized):
		pkg.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrWorkoutNotFound), errors.Is(err, ErrExerciseNotFound):
		pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrNoCatalogExercises):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", fallback, err)
		pkg.WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	stats, err := h.service.Stats(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "get workout stats failed")
		return
	}

	pkg.WriteJSONOK(w, stats)
}

func (h *Handler) HandleCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.current_week")
	defer span.End()

	workouts, err := h.service.CurrentWeek(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "get current week workouts failed")
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}

	pkg.WriteJSONOK(w, workouts)
}

func (h *Handler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.favorites")
	defer span.End()

	workouts, err := h.service.Favorites(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "get favorite workouts failed")
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}

	pkg.WriteJSONOK(w, workouts)
}

func (h *Handler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.toggle_favorite")
	defer span.End()

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsFavorite == nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workoutID := mux.Vars(r)["id"]
	if err := h.service.ToggleFavorite(ctx, auth.UserIDFromContext(ctx), workoutID, *req.IsFavorite); err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "toggle favorite failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddToWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add_to_week")
	defer span.End()

	workout, err := h.service.AddToWeek(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"])
	if err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "add workout to week failed")
		return
	}

	pkg.WriteJSON(w, workout, http.StatusCreated)
}

func (h *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	if err := h.service.DeleteWorkout(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "delete workout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete_exercise")
	defer span.End()

	if err := h.service.DeleteExercise(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "delete exercise failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.generate")
	defer span.End()

	var params GenerateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workout, err := h.service.Generate(ctx, auth.UserIDFromContext(ctx), params)
	if err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "generate workout failed")
		return
	}

	pkg.WriteJSON(w, workout, http.StatusCreated)
}
