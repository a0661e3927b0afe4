package catalog

import (
	"net/http"
	"strings"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) HandleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.groups")
	defer span.End()

	groups, err := h.repo.MuscleGroups(ctx)
	if err != nil {
		span.RecordError(err)
		log.Errorf("get muscle groups: %s", err)
		pkg.WriteJSONError(w, "get muscle groups failed", http.StatusInternalServerError)
		return
	}
	if groups == nil {
		groups = []string{}
	}

	pkg.WriteJSONOK(w, groups)
}

func (h *Handler) HandleByMuscleGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.group")
	defer span.End()

	muscleGroup := strings.TrimSpace(mux.Vars(r)["group"])
	if muscleGroup == "" {
		pkg.WriteJSONError(w, "muscle group is required", http.StatusBadRequest)
		return
	}

	exercises, err := h.repo.ByMuscleGroup(ctx, muscleGroup)
	if err != nil {
		span.RecordError(err)
		log.Errorf("get catalog exercises for %s: %s", muscleGroup, err)
		pkg.WriteJSONError(w, "get exercises failed", http.StatusInternalServerError)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}

	pkg.WriteJSONOK(w, exercises)
}
