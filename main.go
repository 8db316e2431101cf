package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-gateway/internal/handlers"
	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"
	"media-gateway/internal/middleware"
	"media-gateway/internal/pipeline"
	"media-gateway/internal/probe"
	"media-gateway/internal/proxy"
	"media-gateway/internal/safeurl"
	"media-gateway/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Check the external media tools
	startup.LogToolInit(config.FFmpegPath, config.FFprobePath)

	// Initialize components
	validator := safeurl.NewValidator(safeurl.DefaultBlockedNetworks())
	inspector := probe.NewInspector(config.FFprobePath, config.ProbeTimeout)
	mediaProxy := proxy.New(config.ProxyTimeout)
	transcodes := pipeline.New(config.FFmpegPath)

	metrics.InitializeMetrics()

	// Initialize handlers
	h := handlers.New(validator, inspector, mediaProxy, transcodes)

	// Setup router
	router := setupRouter(h, config)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply middleware: logging innermost so it records the final status,
	// then metrics, rate limiting, and CORS outermost.
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)
	handler = middleware.Metrics()(handler)
	handler = middleware.RateLimit(config.RateLimit)(handler)
	handler = middleware.CORS()(handler)

	// WriteTimeout stays 0: proxied and transcoded streams run for as long
	// as playback does.
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics are served on their own port, never exposed with the API
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, transcodes)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api.HandleFunc("/version", h.Version).Methods("GET")
	api.HandleFunc("/analyze", h.Analyze).Methods("POST")
	api.HandleFunc("/video", h.VideoProxy).Methods("GET")
	api.HandleFunc("/stream", h.StreamVideo).Methods("GET")
	api.HandleFunc("/subtitle", h.SubtitleVTT).Methods("GET")
	api.HandleFunc("/subtitle/srt", h.SubtitleSRT).Methods("GET")
	api.HandleFunc("/audio", h.StreamAudio).Methods("GET")

	// Unknown API paths get JSON, not the file server's HTML 404
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	if config.StaticEnabled {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(config.StaticDir)))
	}

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, transcodes *pipeline.Manager) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Killing transcode processes")
	transcodes.Cleanup()
	startup.LogShutdownStepComplete("Transcode cleanup complete")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}
