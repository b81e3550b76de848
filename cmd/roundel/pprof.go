package main

import (
	"net/http"
	"net/http/pprof"

	"github.com/sirupsen/logrus"
)

// startHTTPDebugger serves the live profiler under /debug/pprof/.
func startHTTPDebugger(addr string) {
	pprofHandler := http.NewServeMux()
	pprofHandler.Handle("/debug/pprof/", http.HandlerFunc(pprof.Index))
	pprofHandler.Handle("/debug/pprof/profile", http.HandlerFunc(pprof.Profile))
	pprofHandler.Handle("/debug/pprof/trace", http.HandlerFunc(pprof.Trace))
	server := &http.Server{Addr: addr, Handler: pprofHandler}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Warnf("pprof server stopped: %v", err)
		}
	}()
	logrus.Infof("pprof listening on %s", addr)
}
