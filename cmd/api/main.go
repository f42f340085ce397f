package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/Werneck0live/shukatsu-tracker/internal/admin"
	"github.com/Werneck0live/shukatsu-tracker/internal/ai"
	"github.com/Werneck0live/shukatsu-tracker/internal/broker"
	"github.com/Werneck0live/shukatsu-tracker/internal/config"
	"github.com/Werneck0live/shukatsu-tracker/internal/db"
	"github.com/Werneck0live/shukatsu-tracker/internal/handlers"
	"github.com/Werneck0live/shukatsu-tracker/internal/repository"
	"github.com/Werneck0live/shukatsu-tracker/internal/utils"
)

// cmd/api/main.go
func main() {
	if err := config.LoadDotenv(); err != nil {
		slog.Warn("dotenv_error", "err", err)
	}
	cfg := config.Load()

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "store", cfg.StoreDriver)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()

	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store_open_error", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	if *task != "" {
		switch *task {
		case "seed":
			if err := admin.SeedCompanies(ctx, repo, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	// publisher (Rabbit) é opcional
	var pub handlers.Publisher
	if cfg.RabbitURI != "" {
		p, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			slog.Error("rabbitmq_connect_error", "err", err)
			os.Exit(1)
		}
		defer func() { _ = p.Close() }()
		pub = p
		slog.Info("rabbitmq_publisher_ready", "queue", cfg.RabbitQueue)
	}

	aiSvc, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		// segue sem IA: o endpoint responde "indisponível"
		slog.Error("ai_init_error", "err", err)
	}

	h := handlers.NewCompanyHandler(repo, pub, aiSvc)
	h.Timeout = cfg.RequestTimeout
	h.Location = cfg.Location

	mux := http.NewServeMux()
	h.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(utils.LogRequests(slog.Default(), mux)),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		slog.Info("api_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		slog.Error("graceful_shutdown_error", "err", err)
	}
	slog.Info("stopped")
}

type store interface {
	handlers.Repository
	admin.Store
}

// openStore escolhe o backend por STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite, config.DriverPostgres:
		gdb, err := db.OpenSQL(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewSQLCompanyRepository(gdb), closeFn, nil

	case config.DriverMongo:
		client, err := db.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		repo := repository.NewMongoCompanyRepository(client.Database(cfg.MongoDB))
		ictx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ictx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return repo, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
