package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"time"

	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"
	"media-gateway/internal/safeurl"
)

// ErrUnavailable means the resource could not be probed: the tool exited
// non-zero, timed out, or produced unparseable output. Callers get no finer
// distinction; all three usually mean the URL is not a readable media
// container.
var ErrUnavailable = errors.New("could not fetch media info")

// DefaultTimeout bounds one probe call. Remote probing may need to fetch
// container headers and index data over the network, so it is generous.
const DefaultTimeout = 2 * time.Minute

// Inspector enumerates the streams of a remote media container by driving
// ffprobe as a subprocess.
type Inspector struct {
	binPath string
	timeout time.Duration
}

// NewInspector returns an Inspector using the given ffprobe binary.
// A zero timeout selects DefaultTimeout.
func NewInspector(binPath string, timeout time.Duration) *Inspector {
	if binPath == "" {
		binPath = "ffprobe"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Inspector{binPath: binPath, timeout: timeout}
}

// Available reports whether the probing tool can be found on this host.
func (i *Inspector) Available() bool {
	_, err := exec.LookPath(i.binPath)
	return err == nil
}

// Inspect probes the validated URL and returns its normalized stream
// inventory. Failures of any kind map to ErrUnavailable.
func (i *Inspector) Inspect(ctx context.Context, u safeurl.ValidatedURL) (*MediaDescriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, i.binPath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		u.String(),
	)

	output, err := cmd.Output()
	metrics.ProbeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProbeFailures.Inc()
		logging.Debug("ffprobe failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	desc, err := parseProbeOutput(output)
	if err != nil {
		metrics.ProbeFailures.Inc()
		logging.Debug("ffprobe output unparseable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return desc, nil
}

// ffprobe JSON shapes. Numeric fields arrive as strings in format output.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type probeStream struct {
	Index       int               `json:"index"`
	CodecType   string            `json:"codec_type"`
	CodecName   string            `json:"codec_name"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	RFrameRate  string            `json:"r_frame_rate"`
	Channels    int               `json:"channels"`
	SampleRate  string            `json:"sample_rate"`
	BitRate     string            `json:"bit_rate"`
	Tags        map[string]string `json:"tags"`
	Disposition map[string]int    `json:"disposition"`
}

func parseProbeOutput(output []byte) (*MediaDescriptor, error) {
	var data probeOutput
	if err := json.Unmarshal(output, &data); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	desc := &MediaDescriptor{
		Info: MediaInfo{
			Filename: baseName(data.Format.Filename),
			Format:   defaultString(data.Format.FormatName, "Unknown"),
			Duration: parseFloat(data.Format.Duration),
			Size:     parseInt(data.Format.Size),
			BitRate:  parseInt(data.Format.BitRate),
		},
	}

	for _, s := range data.Streams {
		switch s.CodecType {
		case "video":
			desc.VideoStreams = append(desc.VideoStreams, VideoStream{
				Index:     s.Index,
				Codec:     defaultString(s.CodecName, "Unknown"),
				Width:     s.Width,
				Height:    s.Height,
				FrameRate: NormalizeFrameRate(s.RFrameRate),
				BitRate:   parseInt(s.BitRate),
				Title:     streamTitle(s.Tags, "Video Track", len(desc.VideoStreams)+1),
			})
		case "audio":
			channels := s.Channels
			if channels == 0 {
				channels = 2
			}
			desc.AudioStreams = append(desc.AudioStreams, AudioStream{
				Index:      s.Index,
				Codec:      defaultString(s.CodecName, "Unknown"),
				Language:   language(s.Tags),
				Title:      streamTitle(s.Tags, "Audio Track", len(desc.AudioStreams)+1),
				Channels:   channels,
				SampleRate: defaultString(s.SampleRate, "Unknown"),
				BitRate:    parseInt(s.BitRate),
				Default:    dispositionFlag(s.Disposition, "default"),
			})
		case "subtitle":
			desc.SubtitleStreams = append(desc.SubtitleStreams, SubtitleStream{
				Index:    s.Index,
				Codec:    defaultString(s.CodecName, "Unknown"),
				Language: language(s.Tags),
				Title:    streamTitle(s.Tags, "Subtitle", len(desc.SubtitleStreams)+1),
				Default:  dispositionFlag(s.Disposition, "default"),
				Forced:   dispositionFlag(s.Disposition, "forced"),
			})
		}
	}

	return desc, nil
}

// NormalizeFrameRate converts a rational "num/den" frame rate to a decimal
// string with two-decimal precision. Rates with a zero denominator, or
// values that are not rationals at all, pass through unchanged. An empty
// rate reports as "Unknown".
func NormalizeFrameRate(rate string) string {
	if rate == "" {
		return "Unknown"
	}

	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		return rate
	}

	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return rate
	}

	return fmt.Sprintf("%.2f", n/d)
}

// streamTitle returns the tagged title, or synthesizes "<Kind> <ordinal>"
// using the 1-based position among streams of the same kind.
func streamTitle(tags map[string]string, kind string, ordinal int) string {
	if t := tags["title"]; t != "" {
		return t
	}
	return fmt.Sprintf("%s %d", kind, ordinal)
}

func language(tags map[string]string) string {
	if l := tags["language"]; l != "" {
		return l
	}
	return "und"
}

// dispositionFlag treats the bitmask-style disposition fields as booleans:
// a flag is set iff its value is exactly 1.
func dispositionFlag(disposition map[string]int, name string) bool {
	return disposition[name] == 1
}

func baseName(filename string) string {
	if filename == "" {
		return "Unknown"
	}
	return path.Base(filename)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
