package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/bryanwahyu/startup-radar/internal/application"
	appexport "github.com/bryanwahyu/startup-radar/internal/application/export"
	apprecommend "github.com/bryanwahyu/startup-radar/internal/application/recommend"
	appscoring "github.com/bryanwahyu/startup-radar/internal/application/scoring"
	"github.com/bryanwahyu/startup-radar/internal/config"
	domai "github.com/bryanwahyu/startup-radar/internal/domain/ai"
	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/taxonomy"
	"github.com/bryanwahyu/startup-radar/internal/domain/vote"
	aiopenai "github.com/bryanwahyu/startup-radar/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/startup-radar/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/startup-radar/internal/infra/db/postgres"
	"github.com/bryanwahyu/startup-radar/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/startup-radar/internal/infra/storage"
	"github.com/bryanwahyu/startup-radar/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if err := middleware.ValidateDiversityRatio(cfg.Recommend.DiversityRatio); err != nil {
		log.Fatalf("config error: %v", err)
	}

	// load taxonomy — fatal on any integrity violation, a corrupt taxonomy
	// corrupts every downstream score
	tax, err := taxonomy.Load(cfg.Scoring.TaxonomyPath)
	if err != nil {
		log.Fatalf("taxonomy load error: %v", err)
	}
	log.Printf("taxonomy %s loaded: %d topics", tax.Version, len(tax.Topics))

	ctx := context.Background()

	// connect database
	var (
		db       *sql.DB
		startups startup.Repository
		evals    evaluation.Repository
		votes    vote.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		startups = postgresp.NewStartupRepository(db)
		evals = postgresp.NewEvaluationRepository(db)
		votes = postgresp.NewVoteRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		startups = mysqlp.NewStartupRepository(db)
		evals = mysqlp.NewEvaluationRepository(db)
		votes = mysqlp.NewVoteRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init semantic validator (optional)
	var validator domai.Validator
	if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
		validator = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	// init services
	scoringSvc := &appscoring.Service{
		Startups:  startups,
		Evals:     evals,
		Validator: validator,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.OpenAI.RatePerSecond), cfg.OpenAI.Burst),
		Clock:     application.SystemClock{},
		Taxonomy:  tax,
		Weights:   cfg.Scoring.Weights,
		Match: evaluation.MatchOptions{
			MinConfidence:   cfg.Scoring.MinConfidence,
			AllowCrossTopic: cfg.Scoring.AllowCrossTopic,
		},
		Competitors:      cfg.Scoring.Competitors,
		Workers:          cfg.Scoring.Workers,
		ValidatorTimeout: time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
	}
	recommendSvc := &apprecommend.Service{
		Startups:           startups,
		Evals:              evals,
		Votes:              votes,
		FeedSize:           cfg.Recommend.FeedSize,
		ColdStartThreshold: cfg.Recommend.ColdStartThreshold,
		DiversityRatio:     cfg.Recommend.DiversityRatio,
	}
	exportSvc := &appexport.Service{
		Evals: evals,
		Store: store,
		Clock: application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
		mux.Use(middleware.RequireValidTenant)
	}
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Mount("/", httpserver.NewRouter(scoringSvc, recommendSvc, exportSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
