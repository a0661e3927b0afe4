package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymbuddy/internal/auth"
	"github.com/2beens/gymbuddy/internal/catalog"
	"github.com/2beens/gymbuddy/internal/config"
	"github.com/2beens/gymbuddy/internal/dashboard"
	"github.com/2beens/gymbuddy/internal/db"
	"github.com/2beens/gymbuddy/internal/middleware"
	"github.com/2beens/gymbuddy/internal/partners"
	"github.com/2beens/gymbuddy/internal/telemetry/metrics"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/internal/workouts"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

const sessionsCleanupInterval = time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	authService      *auth.Service
	catalogRepo      *catalog.CachedRepo
	partnersService  *partners.Service
	workoutsService  *workouts.Service
	dashboardService *dashboard.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	stopBackground context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrate db: %w", err)
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymbuddy", "main", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymbuddy-backend")
	if err != nil {
		return nil, releaseOnSetupErr(err, dbPool, rdb)
	}

	sessions := auth.NewSessionStore(cfg.SessionTTLDuration(auth.DefaultTTL), rdb)
	authService := auth.NewService(auth.NewRepo(dbPool), sessions, metricsManager)

	partnersService := partners.NewService(partners.NewRepo(dbPool))
	catalogRepo := catalog.NewCachedRepo(catalog.NewRepo(dbPool), cfg.CatalogCacheSizeMB)
	workoutsRepo := workouts.NewRepo(dbPool)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	go cleanupSessions(bgCtx, authService, sessionsCleanupInterval)

	return &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		redisClient: rdb,

		authService:      authService,
		catalogRepo:      catalogRepo,
		partnersService:  partnersService,
		workoutsService:  workouts.NewService(workoutsRepo, catalogRepo, partnersService, metricsManager),
		dashboardService: dashboard.NewService(workoutsRepo, partnersService),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,

		stopBackground: stopBackground,
	}, nil
}

// releaseOnSetupErr closes what NewServer opened so far and returns cause
// combined with any close failure.
func releaseOnSetupErr(cause error, dbPool interface{ Close() }, rdb io.Closer) error {
	dbPool.Close()
	if closeErr := rdb.Close(); closeErr != nil {
		cause = multierr.Append(cause, fmt.Errorf("close redis client: %w", closeErr))
	}
	return cause
}

func cleanupSessions(ctx context.Context, authService *auth.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": s.versionInfo,
	})
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymbuddy-router"))

	r.HandleFunc("/", s.handleLiveness).Methods("GET", "OPTIONS").Name("liveness")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	rateLimited := func(routeName string, h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(
			reqRateLimiter,
			routeName,
			s.config.AuthRateLimitAllowedPerMin,
			s.metricsManager,
		)(h)
	}

	authHandler := auth.NewHandler(s.authService)
	r.Handle("/auth/signup", rateLimited("signup", authHandler.HandleSignUp)).Methods("POST", "OPTIONS").Name("signup")
	r.Handle("/auth/signin", rateLimited("signin", authHandler.HandleSignIn)).Methods("POST", "OPTIONS").Name("signin")
	r.HandleFunc("/auth/signout", authHandler.HandleSignOut).Methods("POST", "OPTIONS").Name("signout")
	r.HandleFunc("/auth/session", authHandler.HandleSession).Methods("GET", "OPTIONS").Name("session")
	r.HandleFunc("/auth/me", authHandler.HandleCurrentUser).Methods("GET", "OPTIONS").Name("current-user")

	dashboardHandler := dashboard.NewHandler(s.dashboardService)
	r.HandleFunc("/dashboard/stats", dashboardHandler.HandleStats).Methods("GET", "OPTIONS").Name("dashboard-stats")

	workoutsHandler := workouts.NewHandler(s.workoutsService)
	r.HandleFunc("/workouts/stats", workoutsHandler.HandleStats).Methods("GET", "OPTIONS").Name("workout-stats")
	r.HandleFunc("/workouts/week", workoutsHandler.HandleCurrentWeek).Methods("GET", "OPTIONS").Name("current-week")
	r.HandleFunc("/workouts/favorites", workoutsHandler.HandleFavorites).Methods("GET", "OPTIONS").Name("favorites")
	r.HandleFunc("/workouts/generate", workoutsHandler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-workout")
	r.HandleFunc("/workouts/exercises/{id}", workoutsHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/workouts/{id}/favorite", workoutsHandler.HandleToggleFavorite).Methods("PUT", "OPTIONS").Name("toggle-favorite")
	r.HandleFunc("/workouts/{id}/week", workoutsHandler.HandleAddToWeek).Methods("POST", "OPTIONS").Name("add-to-week")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-workout")

	partnersHandler := partners.NewHandler(s.partnersService)
	r.HandleFunc("/partners", partnersHandler.HandleList).Methods("GET", "OPTIONS").Name("list-partners")
	r.HandleFunc("/partners/invite", partnersHandler.HandleInvite).Methods("POST", "OPTIONS").Name("invite-partner")
	r.HandleFunc("/partners/{id}/accept", partnersHandler.HandleAccept).Methods("POST", "OPTIONS").Name("accept-partner")

	catalogHandler := catalog.NewHandler(s.catalogRepo)
	r.HandleFunc("/catalog/groups", catalogHandler.HandleMuscleGroups).Methods("GET", "OPTIONS").Name("muscle-groups")
	r.HandleFunc("/catalog/groups/{group}", catalogHandler.HandleByMuscleGroup).Methods("GET", "OPTIONS").Name("catalog-exercises")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteJSONError(w, "not found", http.StatusNotFound)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops the listeners first, then releases redis, the db
// pool and telemetry. All failures are returned combined.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	var err error

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.stopBackground != nil {
		s.stopBackground()
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if err != nil {
		log.Errorf("graceful shutdown: %s", err)
	}
	return err
}
