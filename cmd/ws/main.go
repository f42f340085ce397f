package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Werneck0live/shukatsu-tracker/internal/broker"
	"github.com/Werneck0live/shukatsu-tracker/internal/config"
	"github.com/Werneck0live/shukatsu-tracker/internal/utils"
	"github.com/Werneck0live/shukatsu-tracker/internal/ws"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		slog.Warn("dotenv_error", "err", err)
	}
	wscfg := config.LoadWS()

	_ = config.InitLogger(wscfg.LogLevel)
	log := slog.Default().With("svc", "ws")

	hub := ws.NewHub(log)
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conecta no Rabbit e começa a consumir
	cons, err := broker.NewConsumer(wscfg.RabbitURI, wscfg.RabbitQueue, wscfg.ConsumerPrefetch)
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = cons.Close() }()

	bodies, err := cons.Bodies(ctx, "ws-consumer")
	if err != nil {
		log.Error("rabbit_consume_error", "err", err)
		os.Exit(1)
	}
	log.Info("rabbit_consumer_started", "queue", wscfg.RabbitQueue)

	// encaminha mensagens do Rabbit para o hub
	go ws.Relay(ctx, hub, bodies, log)

	// HTTP: /ws e /healthz
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.Handler(hub, wscfg.ClientBuffer, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": hub.Count()})
	})

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           utils.LogRequests(log, mux),
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	sctx, scancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer scancel()
	_ = srv.Shutdown(sctx)
	cancel()
	hub.Stop()

	log.Info("stopped")
}
