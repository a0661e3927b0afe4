package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/gymbuddy/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	testCases := []struct {
		name           string
		result         *redis_rate.Result
		err            error
		expectedStatus int
		expectNext     bool
		expectLimited  float64
	}{
		{
			name:           "Allowed",
			result:         &redis_rate.Result{Allowed: 1, Remaining: 4},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "Limited",
			result:         &redis_rate.Result{Allowed: 0, RetryAfter: 20 * time.Second},
			expectedStatus: http.StatusTooManyRequests,
			expectLimited:  1,
		},
		{
			name:           "LimiterError",
			err:            errors.New("redis down"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			limiter := NewMockRequestRateLimiter(ctrl)
			metricsManager := metrics.NewTestManager()

			limiter.EXPECT().
				Allow(gomock.Any(), "signin:10.0.0.7", redis_rate.PerMinute(5)).
				Return(tc.result, tc.err)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest("POST", "/auth/signin", nil)
			req.Header.Set("X-Real-Ip", "10.0.0.7")
			rr := httptest.NewRecorder()
			RateLimit(limiter, "signin", 5, metricsManager)(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNext, called)
			assert.Equal(t, tc.expectLimited, testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
		})
	}
}
