package partners

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

type partnersService interface {
	Invite(ctx context.Context, userID, partnerUsername string) error
	Accept(ctx context.Context, userID, requesterID string) error
	List(ctx context.Context, userID string) ([]Relation, error)
}

type Handler struct {
	service partnersService
}

func NewHandler(service partnersService) *Handler {
	return &Handler{
		service: service,
	}
}

type inviteRequest struct {
	Username string `json:"username"`
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		pkg.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidPartner):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPartnerNotFound):
		pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyInvited):
		pkg.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("%s: %s", fallback, err)
		pkg.WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.partners.list")
	defer span.End()

	relations, err := h.service.List(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "list partners failed")
		return
	}

	pkg.WriteJSONOK(w, relations)
}

func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.partners.invite")
	defer span.End()

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Invite(ctx, auth.UserIDFromContext(ctx), req.Username); err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "invite partner failed")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.partners.accept")
	defer span.End()

	if err := h.service.Accept(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		span.RecordError(err)
		writeServiceError(w, err, "accept partner failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
