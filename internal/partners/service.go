package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/gymbuddy/internal/auth"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidPartner  = errors.New("invalid partner")
	ErrPartnerNotFound = errors.New("partner not found")
	ErrAlreadyInvited  = errors.New("partner already invited")
)

type partnersRepo interface {
	CountAccepted(ctx context.Context, userID string) (int, error)
	AcceptedPartner(ctx context.Context, userID string) (*Partner, error)
	UserIDByUsername(ctx context.Context, username string) (string, error)
	CreatePending(ctx context.Context, userID, partnerID string) error
	Accept(ctx context.Context, userID, requesterID string) error
	List(ctx context.Context, userID string) ([]Relation, error)
}

type Service struct {
	repo partnersRepo
}

func NewService(repo partnersRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CountAccepted(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, auth.ErrNotAuthenticated
	}
	return s.repo.CountAccepted(ctx, userID)
}

func (s *Service) AcceptedPartner(ctx context.Context, userID string) (*Partner, error) {
	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}
	return s.repo.AcceptedPartner(ctx, userID)
}

func (s *Service) Invite(ctx context.Context, userID, partnerUsername string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.partners.invite")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return auth.ErrNotAuthenticated
	}

	partnerUsername = strings.TrimSpace(partnerUsername)
	if partnerUsername == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidPartner)
	}

	partnerID, err := s.repo.UserIDByUsername(ctx, partnerUsername)
	if err != nil {
		return err
	}
	if partnerID == userID {
		return fmt.Errorf("%w: cannot invite yourself", ErrInvalidPartner)
	}

	if err := s.repo.CreatePending(ctx, userID, partnerID); err != nil {
		return err
	}

	log.Debugf("partners: %s invited %s", userID, partnerID)
	return nil
}

func (s *Service) Accept(ctx context.Context, userID, requesterID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.partners.accept")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return auth.ErrNotAuthenticated
	}
	if _, err := uuid.Parse(requesterID); err != nil {
		return fmt.Errorf("%w: malformed id", ErrInvalidPartner)
	}
	if requesterID == userID {
		return fmt.Errorf("%w: cannot partner with yourself", ErrInvalidPartner)
	}

	return s.repo.Accept(ctx, userID, requesterID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Relation, error) {
	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}
	relations, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if relations == nil {
		relations = []Relation{}
	}
	return relations, nil
}
