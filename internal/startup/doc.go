// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - STATIC_DIR: Path to the web UI assets (default: ./static)
//   - FFMPEG_PATH: FFmpeg binary name or path (default: ffmpeg)
//   - FFPROBE_PATH: FFprobe binary name or path (default: ffprobe)
//   - PROXY_TIMEOUT: Upstream connect/first-byte timeout as Go duration (default: 30s)
//   - PROBE_TIMEOUT: Media analysis timeout as Go duration (default: 2m)
//   - RATE_LIMIT: Per-client requests per minute, 0 disables (default: 120)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: false)
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogToolInit]: FFmpeg/FFprobe availability checks
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup
