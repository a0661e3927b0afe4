package dashboard

import (
	"context"
	"fmt"

	"github.com/2beens/gymbuddy/internal/auth"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard

type workoutCounter interface {
	Counts(ctx context.Context, userID string) (total, completed int, err error)
}

type partnerCounter interface {
	CountAccepted(ctx context.Context, userID string) (int, error)
}

// Stats are the lifetime totals shown on the dashboard.
type Stats struct {
	TotalWorkouts     int `json:"totalWorkouts"`
	CompletedWorkouts int `json:"completedWorkouts"`
	Progress          int `json:"progress"`
	Partners          int `json:"partners"`
}

type Service struct {
	workouts workoutCounter
	partners partnerCounter
}

func NewService(workouts workoutCounter, partners partnerCounter) *Service {
	return &Service{
		workouts: workouts,
		partners: partners,
	}
}

func (s *Service) Stats(ctx context.Context, userID string) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.stats")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, auth.ErrNotAuthenticated
	}

	total, completed, err := s.workouts.Counts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count workouts: %w", err)
	}

	partners, err := s.partners.CountAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count partners: %w", err)
	}

	return &Stats{
		TotalWorkouts:     total,
		CompletedWorkouts: completed,
		Progress:          pkg.Percent(completed, total),
		Partners:          partners,
	}, nil
}
