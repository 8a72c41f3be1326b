package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/remaimber-it/quizcore/internal/api"
	"github.com/remaimber-it/quizcore/internal/examparse"
	"github.com/remaimber-it/quizcore/internal/explainer"
	"github.com/remaimber-it/quizcore/internal/grader"
	"github.com/remaimber-it/quizcore/internal/infrastructure/config"
	"github.com/remaimber-it/quizcore/internal/questiongen"
	"github.com/remaimber-it/quizcore/internal/service"
	"github.com/remaimber-it/quizcore/internal/store"

	_ "github.com/remaimber-it/quizcore/docs" // swagger docs
)

// @title           Quizcore API
// @version         1.0
// @description     Exam output salvage, practice generation and answer grading.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	maxStrategy, err := examparse.ParseStrategy(cfg.MaxStrategy)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	seed := cfg.GeneratorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	gen := questiongen.New(seed)
	parser := examparse.NewParser(gen, examparse.Options{
		MaxStrategy:   maxStrategy,
		LenientRepair: cfg.LenientRepair,
	}, logger)
	judge := grader.NewJudge()

	practiceSvc := service.NewPracticeService(parser, gen, cfg.PracticeMaxAttempts, logger)
	evaluationSvc := service.NewEvaluationService(ctx, db, judge, explainer.Coverage{}, service.PoolConfig{
		Workers:   cfg.EnrichmentWorkers,
		QueueSize: cfg.EnrichmentQueueSize,
	}, logger)

	handler := api.NewHandler(parser, judge, practiceSvc, evaluationSvc, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"database", cfg.DatabasePath,
		"enrichment_workers", cfg.EnrichmentWorkers,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}

	// Queued enrichment finishes before the database closes.
	if err := evaluationSvc.Close(); err != nil {
		logger.Error("enrichment workers stopped with error", "error", err)
	}
}
