package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/operatorprotocol/internal/auth"
	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/config"
	"github.com/2beens/operatorprotocol/internal/dashboard"
	"github.com/2beens/operatorprotocol/internal/db"
	"github.com/2beens/operatorprotocol/internal/kvstore"
	"github.com/2beens/operatorprotocol/internal/middleware"
	"github.com/2beens/operatorprotocol/internal/missionlog"
	"github.com/2beens/operatorprotocol/internal/progression"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"
	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"
	"github.com/2beens/operatorprotocol/internal/workout"
	"github.com/2beens/operatorprotocol/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	clock       calendar.Clock

	authService       *auth.Service
	missionLogService *missionlog.Service
	dashboardService  *dashboard.Service
	catalog           *workout.Catalog

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "operator-protocol", rdb)
	if err != nil {
		return nil, err
	}

	catalog, err := workout.LoadCatalog(cfg.RoutinesPath)
	if err != nil {
		return nil, fmt.Errorf("load routines catalog: %w", err)
	}

	clock := calendar.SystemClock{Location: location}
	kv := kvstore.NewAdapter(
		kvstore.NewRedisBackend(rdb),
		kvstore.NewVolatileBackend(cfg.SessionCacheSizeMB, int(auth.DefaultTTL.Seconds())),
	)

	missionLogService := missionlog.NewService(missionlog.NewServiceParams{
		Repo:           missionlog.NewRepo(dbPool),
		Clock:          clock,
		Location:       location,
		MetricsManager: metricsManager,
	})

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		clock:       clock,
		versionInfo: params.VersionInfo,

		authService: auth.NewService(auth.NewServiceParams{
			RedisClient: rdb,
			UsersRepo:   auth.NewUsersRepo(dbPool),
			TTL:         auth.DefaultTTL,
			Clock:       clock,
		}),
		missionLogService: missionLogService,
		dashboardService: dashboard.NewService(dashboard.NewServiceParams{
			KV:             kv,
			Stats:          missionLogService,
			Clock:          clock,
			MetricsManager: metricsManager,
		}),
		catalog: catalog,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	s.authService.OnSessionEnd(progression.NewSessionCleaner(kv))
	s.authService.OnSessionEnd(s.dashboardService)
	go s.cleanupSessions(ctx)

	return s, nil
}

// Register adds a new operator, used by the -register-user flag.
func (s *Server) Register(ctx context.Context, username, password string) (int, error) {
	return s.authService.Register(ctx, auth.Credentials{
		Username: username,
		Password: password,
	})
}

func (s *Server) cleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionsCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(s.authService)
	r.Handle("/a/login", middleware.RateLimit(
		reqRateLimiter, s.metricsManager, "login", s.config.LoginRateLimitAllowedPerMin,
	)(http.HandlerFunc(authHandler.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", authHandler.HandleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")

	missionLogHandler := missionlog.NewHandler(s.missionLogService, s.clock)
	r.Handle("/logs", middleware.RateLimit(
		reqRateLimiter, s.metricsManager, "new-log", s.config.LogsRateLimitAllowedPerMin,
	)(http.HandlerFunc(missionLogHandler.HandleCreate))).Methods("POST", "OPTIONS").Name("new-log")
	r.HandleFunc("/logs", missionLogHandler.HandleList).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/logs/weekly", missionLogHandler.HandleWeekly).Methods("GET", "OPTIONS").Name("weekly-logs")

	dashboardHandler := dashboard.NewHandler(s.dashboardService, s.catalog)
	r.HandleFunc("/dashboard", dashboardHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/evolution/{tier}/complete", dashboardHandler.HandleCompleteEvolution).Methods("POST", "OPTIONS").Name("complete-evolution")
	r.HandleFunc("/hardware/cycle", dashboardHandler.HandleCycleHardware).Methods("POST", "OPTIONS").Name("cycle-hardware")
	r.HandleFunc("/progression", dashboardHandler.HandleWipe).Methods("DELETE", "OPTIONS").Name("wipe-progression")
	r.HandleFunc("/routines", dashboardHandler.HandleRoutines).Methods("GET", "OPTIONS").Name("routines")
	r.HandleFunc("/routines/{id}/steps", dashboardHandler.HandleRoutineSteps).Methods("GET", "OPTIONS").Name("routine-steps")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponse(w, "operator protocol online", http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponse(w, s.versionInfo, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
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

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
