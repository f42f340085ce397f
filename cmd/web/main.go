package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Werneck0live/shukatsu-tracker/internal/client"
	"github.com/Werneck0live/shukatsu-tracker/internal/config"
	"github.com/Werneck0live/shukatsu-tracker/internal/utils"
	"github.com/Werneck0live/shukatsu-tracker/internal/web"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		slog.Warn("dotenv_error", "err", err)
	}
	cfg := config.LoadWeb()

	_ = config.InitLogger(cfg.LogLevel)
	log := slog.Default().With("svc", "web")

	api := client.New(cfg.APIURL, nil)
	srv, err := web.New(api, cfg.LiveURL)
	if err != nil {
		log.Error("web_init_error", "err", err)
		os.Exit(1)
	}
	srv.Location = cfg.Location

	mux := http.NewServeMux()
	srv.Register(mux)

	hs := &http.Server{
		Addr:              cfg.Addr,
		Handler:           utils.LogRequests(log, mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("web_listen", "addr", cfg.Addr, "api", cfg.APIURL, "live", cfg.LiveURL != "")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = hs.Shutdown(sctx)
	log.Info("stopped")
}
