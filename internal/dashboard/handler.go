package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/gymbuddy/internal/auth"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	log "github.com/sirupsen/logrus"
)

type statsProvider interface {
	Stats(ctx context.Context, userID string) (*Stats, error)
}

type Handler struct {
	service statsProvider
}

func NewHandler(service statsProvider) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.stats")
	defer span.End()

	stats, err := h.service.Stats(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, auth.ErrNotAuthenticated) {
			pkg.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Errorf("get dashboard stats: %s", err)
		pkg.WriteJSONError(w, "get dashboard stats failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, stats)
}
