package roundel

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmmx/roundel/config"
	"github.com/sirupsen/logrus"
)

var (
	server *http.Server
)

// NewMux routes the HTTP and WebSocket surface to sim.
func NewMux(sim *Simulator) *http.ServeMux {
	h := &handlers{sim: sim}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", h.health)
	mux.HandleFunc("/api/counts", h.counts)
	mux.HandleFunc("/api/vehicles.json", h.vehiclesJSON)
	mux.HandleFunc("/api/vehicles.xml", h.vehiclesXML)
	mux.HandleFunc("/api/control/pause", h.pause)
	mux.HandleFunc("/api/control/toggle", h.toggle)
	mux.HandleFunc("/api/control/interval", h.interval)
	mux.HandleFunc("/api/control/source", h.source)
	mux.HandleFunc("/api/control/follow", h.follow)
	mux.Handle("/ws", sim.Hub())
	return mux
}

func StartServer(sim *Simulator, cfg config.ServerConfig) {
	addr := fmt.Sprintf(":%d", cfg.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           NewMux(sim),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()
	logrus.Infof("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then shuts the
// server down and closes sim.
func HandleGracefulShutdown(sim *Simulator) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logrus.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			logrus.Errorf("server shutdown error: %v", err)
		} else {
			logrus.Info("server shut down successfully")
		}
	}
	sim.Close()
}
