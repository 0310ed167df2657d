package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	auth "Pipeflow/internal/auth"
	batch "Pipeflow/internal/calc/batch"
	colebrook "Pipeflow/internal/calc/colebrook"
	importer "Pipeflow/internal/calc/importer"
	report "Pipeflow/internal/calc/report"
	reynolds "Pipeflow/internal/calc/reynolds"
	config "Pipeflow/internal/config"
	middleware "Pipeflow/internal/middleware"
	profile "Pipeflow/internal/profile"
	repo "Pipeflow/internal/repo"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

func HandleList(router *mux.Router, authEnv *auth.Authenv, limiter *auth.IPRateLimiter) {
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	profileH := &profile.ProfileHandler{Repo: authEnv.Repo}
	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")

	reynoldsH := &reynolds.Handler{}
	colebrookH := &colebrook.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/reynolds/calc", reynoldsH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/reynolds/variants", reynoldsH.Variants).Methods("GET")
	secureApi.HandleFunc("/tools/colebrook/calc", colebrookH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/colebrook/compare", colebrookH.Compare).Methods("POST")
	secureApi.HandleFunc("/tools/colebrook/batch", batchH.Colebrook).Methods("POST")
	secureApi.HandleFunc("/tools/colebrook/import", importerH.Colebrook).Methods("POST")
	secureApi.HandleFunc("/tools/colebrook/report", reportH.Generate).Methods("POST")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := auth.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	userRepo := repo.NewPostgresUserDB(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		slog.Error("database schema", "err", err)
		os.Exit(1)
	}

	authEnv := &auth.Authenv{JWTkey: cfg.TokenKey, Repo: userRepo, SecureCookie: cfg.TLS()}
	limiter := auth.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	router := mux.NewRouter()
	HandleList(router, authEnv, limiter)
	handler := middleware.RequestID(middleware.AccessLog(logger)(middleware.CORS(router)))

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "err", err)
	}
	wg.Wait()
	slog.Info("server stopped")
}
