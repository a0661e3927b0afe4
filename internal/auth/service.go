package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/2beens/gymbuddy/internal/telemetry/metrics"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProfileCreation  = errors.New("failed to create user profile")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrAlreadyExists    = errors.New("user already exists")
	ErrInvalidSignUp    = errors.New("valid email, password (min 6 chars) and username are required")
)

const minPasswordLength = 6

type usersRepo interface {
	CreateIdentityWithProfile(ctx context.Context, identity Identity, profile Profile) (*User, error)
	IdentityByEmail(ctx context.Context, email string) (*Identity, error)
	UserByAuthID(ctx context.Context, authID string) (*User, error)
}

type SignUpParams struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Profile  Profile `json:"profile"`
}

type Service struct {
	repo           usersRepo
	sessions       *SessionStore
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo usersRepo,
	sessions *SessionStore,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		sessions:       sessions,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) GetSession(ctx context.Context, token string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.session")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *Service) SignUp(ctx context.Context, params SignUpParams) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signup")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Profile.Username = strings.TrimSpace(params.Profile.Username)
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, ErrInvalidSignUp
	}
	if len(params.Password) < minPasswordLength || params.Profile.Username == "" {
		return nil, ErrInvalidSignUp
	}

	passwordHash, err := pkg.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateIdentityWithProfile(ctx, Identity{
		ID:           uuid.NewString(),
		Email:        params.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}, params.Profile)
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSignUps.Inc()
	}
	log.Debugf("auth service: new user signed up: %s", user.AuthID)

	return user, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signin")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	identity, err := s.repo.IdentityByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}

	if !pkg.CheckPasswordHash(password, identity.PasswordHash) {
		return nil, ErrWrongCredentials
	}

	session, err := s.sessions.Create(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func (s *Service) SignOut(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if token == "" {
		return ErrNotAuthenticated
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CurrentUser resolves the session and then the profile linked to its
// identity. Returns nil without an error when there is no session.
func (s *Service) CurrentUser(ctx context.Context, token string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.current_user")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.repo.UserByAuthID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return user, nil
}

func (s *Service) ScanAndClean(ctx context.Context) {
	s.sessions.ScanAndClean(ctx)
}
