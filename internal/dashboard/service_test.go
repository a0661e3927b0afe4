package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/gymbuddy/internal/auth"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Stats(t *testing.T) {
	testCases := []struct {
		name      string
		total     int
		completed int
		partners  int
		expected  Stats
	}{
		{
			name:      "TenFour",
			total:     10,
			completed: 4,
			partners:  2,
			expected:  Stats{TotalWorkouts: 10, CompletedWorkouts: 4, Progress: 40, Partners: 2},
		},
		{
			name:     "NoWorkouts",
			expected: Stats{},
		},
		{
			name:      "AllDone",
			total:     3,
			completed: 3,
			partners:  1,
			expected:  Stats{TotalWorkouts: 3, CompletedWorkouts: 3, Progress: 100, Partners: 1},
		},
		{
			name:      "Rounded",
			total:     3,
			completed: 2,
			expected:  Stats{TotalWorkouts: 3, CompletedWorkouts: 2, Progress: 67},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			workouts := NewMockworkoutCounter(ctrl)
			partners := NewMockpartnerCounter(ctrl)
			workouts.EXPECT().Counts(gomock.Any(), "user-1").Return(tc.total, tc.completed, nil)
			partners.EXPECT().CountAccepted(gomock.Any(), "user-1").Return(tc.partners, nil)

			stats, err := NewService(workouts, partners).Stats(context.Background(), "user-1")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *stats)
			assert.LessOrEqual(t, stats.CompletedWorkouts, stats.TotalWorkouts)
			assert.GreaterOrEqual(t, stats.Progress, 0)
			assert.LessOrEqual(t, stats.Progress, 100)
		})
	}
}

func TestService_Stats_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	workouts := NewMockworkoutCounter(ctrl)
	partners := NewMockpartnerCounter(ctrl)
	service := NewService(workouts, partners)

	_, err := service.Stats(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)

	dbErr := errors.New("db down")
	workouts.EXPECT().Counts(gomock.Any(), "user-1").Return(0, 0, dbErr)
	_, err = service.Stats(context.Background(), "user-1")
	require.ErrorIs(t, err, dbErr)

	workouts.EXPECT().Counts(gomock.Any(), "user-1").Return(1, 1, nil)
	partners.EXPECT().CountAccepted(gomock.Any(), "user-1").Return(0, dbErr)
	_, err = service.Stats(context.Background(), "user-1")
	require.ErrorIs(t, err, dbErr)
}

func TestHandler_HandleStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	workouts := NewMockworkoutCounter(ctrl)
	partners := NewMockpartnerCounter(ctrl)
	workouts.EXPECT().Counts(gomock.Any(), "user-1").Return(10, 4, nil)
	partners.EXPECT().CountAccepted(gomock.Any(), "user-1").Return(1, nil)

	handler := NewHandler(NewService(workouts, partners))

	req := httptest.NewRequest("GET", "/dashboard/stats", nil)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()
	handler.HandleStats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalWorkouts":10,"completedWorkouts":4,"progress":40,"partners":1}`, rr.Body.String())
}

func TestHandler_HandleStats_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewHandler(NewService(NewMockworkoutCounter(ctrl), NewMockpartnerCounter(ctrl)))

	rr := httptest.NewRecorder()
	handler.HandleStats(rr, httptest.NewRequest("GET", "/dashboard/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"not authenticated"}`, rr.Body.String())
}
