package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"
	"media-gateway/internal/safeurl"
	"media-gateway/internal/streaming"
)

// SubtitleFormat selects the text format for subtitle extraction.
type SubtitleFormat string

const (
	SubtitleWebVTT SubtitleFormat = "webvtt"
	SubtitleSRT    SubtitleFormat = "srt"
)

// reapGrace bounds how long a terminated child may take to exit before it
// is killed outright.
const reapGrace = 5 * time.Second

// Manager launches the external transcoding tool per request, relays its
// standard output to the caller, and guarantees the child is terminated and
// reaped on every exit path. Each job is owned by exactly one request; the
// only shared state is the job table used for shutdown cleanup.
type Manager struct {
	binPath string

	jobMu sync.Mutex
	jobs  map[string]*exec.Cmd
}

// New returns a Manager using the given ffmpeg binary.
func New(binPath string) *Manager {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &Manager{
		binPath: binPath,
		jobs:    make(map[string]*exec.Cmd),
	}
}

// Available reports whether the transcoding tool can be found on this host.
func (m *Manager) Available() bool {
	_, err := exec.LookPath(m.binPath)
	return err == nil
}

// StreamRemux copies the first video stream untouched, re-encodes the
// selected audio stream to AAC at 192 kbps, and emits a fragmented MP4 that
// can start playing before the file ends.
func (m *Manager) StreamRemux(ctx context.Context, w http.ResponseWriter, src safeurl.ValidatedURL, audioIndex int) error {
	args := []string{
		"-i", src.String(),
		"-map", "0:v:0",
		"-map", fmt.Sprintf("0:%d", audioIndex),
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "frag_keyframe+empty_moov+faststart",
		"-f", "mp4",
		"pipe:1",
	}
	return m.run(ctx, w, "remux", args, streaming.MediaChunkSize)
}

// StreamSubtitle extracts the selected subtitle stream as WebVTT or SRT
// text. The index is the container's own stream index.
func (m *Manager) StreamSubtitle(ctx context.Context, w http.ResponseWriter, src safeurl.ValidatedURL, index int, f SubtitleFormat) error {
	codec, muxer := "webvtt", "webvtt"
	if f == SubtitleSRT {
		codec, muxer = "srt", "srt"
	}
	args := []string{
		"-i", src.String(),
		"-map", fmt.Sprintf("0:%d", index),
		"-c:s", codec,
		"-f", muxer,
		"pipe:1",
	}
	return m.run(ctx, w, "subtitle", args, streaming.TextChunkSize)
}

// StreamAudio extracts the selected audio stream as MP3 at 192 kbps.
func (m *Manager) StreamAudio(ctx context.Context, w http.ResponseWriter, src safeurl.ValidatedURL, index int) error {
	args := []string{
		"-i", src.String(),
		"-map", fmt.Sprintf("0:%d", index),
		"-c:a", "libmp3lame",
		"-b:a", "192k",
		"-f", "mp3",
		"pipe:1",
	}
	return m.run(ctx, w, "audio", args, streaming.MediaChunkSize)
}

// run owns the child process lifecycle shared by all three operations:
// spawn with stdout piped and stderr discarded, relay chunks as they
// arrive, then terminate and reap no matter how the relay ended. Response
// headers must already be written; failures past this point can only
// truncate the stream.
func (m *Manager) run(ctx context.Context, w http.ResponseWriter, operation string, args []string, chunkSize int) error {
	jobID := uuid.NewString()

	cmd := exec.CommandContext(ctx, m.binPath, args...)
	// Ask the child to exit cleanly on cancellation, and give it a bounded
	// grace period before the kill.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = reapGrace

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binPath, err)
	}

	m.track(jobID, cmd)
	metrics.PipelineJobsTotal.WithLabelValues(operation).Inc()
	metrics.PipelineProcessesActive.Inc()
	defer func() {
		m.untrack(jobID)
		metrics.PipelineProcessesActive.Dec()
	}()

	logging.Debug("pipeline job %s: started %s pid=%d", jobID, operation, cmd.Process.Pid)

	n, relayErr := streaming.Relay(ctx, w, stdout, chunkSize)
	metrics.PipelineBytesTotal.WithLabelValues(operation).Add(float64(n))

	if relayErr != nil && !errors.Is(relayErr, streaming.ErrClientGone) {
		// Pipe read failure; the child is likely already gone, but make sure.
		_ = cmd.Process.Signal(syscall.SIGTERM)
	}

	// Always reap. With the context canceled, Cancel has already signaled
	// the child and WaitDelay bounds how long this can block.
	waitErr := cmd.Wait()

	switch {
	case errors.Is(relayErr, streaming.ErrClientGone):
		logging.Debug("pipeline job %s: client gone after %s, child reaped", jobID, humanize.IBytes(uint64(n)))
	case waitErr != nil && ctx.Err() == nil:
		// The tool failed. If bytes went out the stream just ends early;
		// if none did, the caller sees an empty body. Either way the
		// response cannot change anymore.
		logging.Warn("pipeline job %s: %s exited: %v (after %d bytes)", jobID, operation, waitErr, n)
	default:
		logging.Debug("pipeline job %s: complete, %s", jobID, humanize.IBytes(uint64(n)))
	}

	return nil
}

func (m *Manager) track(id string, cmd *exec.Cmd) {
	m.jobMu.Lock()
	m.jobs[id] = cmd
	m.jobMu.Unlock()
}

func (m *Manager) untrack(id string) {
	m.jobMu.Lock()
	delete(m.jobs, id)
	m.jobMu.Unlock()
}

// ActiveJobs returns the number of live child processes.
func (m *Manager) ActiveJobs() int {
	m.jobMu.Lock()
	defer m.jobMu.Unlock()
	return len(m.jobs)
}

// Cleanup terminates any still-running child processes. Called on shutdown;
// per-request teardown normally empties the table first.
func (m *Manager) Cleanup() {
	m.jobMu.Lock()
	defer m.jobMu.Unlock()

	for id, cmd := range m.jobs {
		if cmd.Process != nil {
			logging.Info("killing transcode process for job %s (pid %d)", id, cmd.Process.Pid)
			if err := cmd.Process.Kill(); err != nil {
				logging.Warn("failed to kill job %s: %v", id, err)
			}
		}
	}
}
