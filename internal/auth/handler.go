package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	log "github.com/sirupsen/logrus"
)

type authService interface {
	GetSession(ctx context.Context, token string) (*Session, error)
	SignUp(ctx context.Context, params SignUpParams) (*User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*User, error)
}

type Handler struct {
	service authService
}

func NewHandler(service authService) *Handler {
	return &Handler{
		service: service,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Session *Session `json:"session"`
}

type userResponse struct {
	User *User `json:"user"`
}

func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signup")
	defer span.End()

	var params SignUpParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Debugf("sign up, unmarshal request: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.SignUp(ctx, params)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, ErrInvalidSignUp):
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAlreadyExists):
			pkg.WriteJSONError(w, "email or username already taken", http.StatusConflict)
		case errors.Is(err, ErrProfileCreation):
			log.Errorf("sign up: %s", err)
			pkg.WriteJSONError(w, ErrProfileCreation.Error(), http.StatusInternalServerError)
		default:
			log.Errorf("sign up: %s", err)
			pkg.WriteJSONError(w, "sign up failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, userResponse{User: user}, http.StatusCreated)
}

func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signin")
	defer span.End()

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("sign in, unmarshal request: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrWrongCredentials) {
			pkg.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Errorf("sign in: %s", err)
		pkg.WriteJSONError(w, "sign in failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, sessionResponse{Session: session})
}

func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signout")
	defer span.End()

	if err := h.service.SignOut(ctx, TokenFromRequest(r)); err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrNotAuthenticated) {
			pkg.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Errorf("sign out: %s", err)
		pkg.WriteJSONError(w, "sign out failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.session")
	defer span.End()

	session, err := h.service.GetSession(ctx, TokenFromRequest(r))
	if err != nil {
		span.RecordError(err)
		log.Errorf("get session: %s", err)
		pkg.WriteJSONError(w, "get session failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, sessionResponse{Session: session})
}

func (h *Handler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	user, err := h.service.CurrentUser(ctx, TokenFromRequest(r))
	if err != nil {
		span.RecordError(err)
		log.Errorf("get current user: %s", err)
		pkg.WriteJSONError(w, "get current user failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, userResponse{User: user})
}
