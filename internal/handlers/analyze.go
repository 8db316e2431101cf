package handlers

import (
	"encoding/json"
	"net/http"

	"media-gateway/internal/format"
	"media-gateway/internal/logging"
)

// AnalyzeRequest is the POST body for media analysis.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is the full media inventory returned to the player UI.
// Numeric attributes that players need raw come through unformatted;
// display fields are pre-rendered strings.
type AnalyzeResponse struct {
	Success         bool              `json:"success"`
	VideoInfo       VideoInfoJSON     `json:"video_info"`
	VideoStreams    []VideoStreamJSON `json:"video_streams"`
	AudioStreams    []AudioStreamJSON `json:"audio_streams"`
	SubtitleStreams []SubtitleJSON    `json:"subtitle_streams"`
}

type VideoInfoJSON struct {
	Filename        string  `json:"filename"`
	Format          string  `json:"format"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Size            string  `json:"size"`
	BitRate         string  `json:"bitrate"`
}

type VideoStreamJSON struct {
	Index      int    `json:"index"`
	Codec      string `json:"codec"`
	Resolution string `json:"resolution"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FPS        string `json:"fps"`
	BitRate    string `json:"bitrate"`
	Title      string `json:"title"`
}

type AudioStreamJSON struct {
	Index      int    `json:"index"`
	Codec      string `json:"codec"`
	Language   string `json:"language"`
	Title      string `json:"title"`
	Channels   int    `json:"channels"`
	SampleRate string `json:"sample_rate"`
	BitRate    string `json:"bitrate"`
	Default    bool   `json:"default"`
}

type SubtitleJSON struct {
	Index    int    `json:"index"`
	Codec    string `json:"codec"`
	Language string `json:"language"`
	Title    string `json:"title"`
	Default  bool   `json:"default"`
	Forced   bool   `json:"forced"`
}

// Analyze probes the remote media and returns the container info and
// per-kind stream inventory. Stream indexes in the response are the
// container's own and feed straight back into the streaming endpoints.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSONError(w, "No URL provided", http.StatusBadRequest)
		return
	}

	target, err := h.validator.Validate(req.URL)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.inspector.Available() {
		writeJSONError(w, "ffprobe is not installed on the server", http.StatusInternalServerError)
		return
	}

	// A failed probe means the URL did not lead to readable media; that is
	// a caller-input problem, not a server fault.
	desc, err := h.inspector.Inspect(r.Context(), target)
	if err != nil {
		logging.Debug("analyze failed for %s: %v", target, err)
		writeJSONError(w, "Could not fetch media information. The URL may be invalid or inaccessible.", http.StatusBadRequest)
		return
	}

	response := AnalyzeResponse{
		Success: true,
		VideoInfo: VideoInfoJSON{
			Filename:        desc.Info.Filename,
			Format:          desc.Info.Format,
			Duration:        format.Duration(desc.Info.Duration),
			DurationSeconds: desc.Info.Duration,
			Size:            format.Size(desc.Info.Size),
			BitRate:         format.BitRate(desc.Info.BitRate),
		},
		VideoStreams:    make([]VideoStreamJSON, 0, len(desc.VideoStreams)),
		AudioStreams:    make([]AudioStreamJSON, 0, len(desc.AudioStreams)),
		SubtitleStreams: make([]SubtitleJSON, 0, len(desc.SubtitleStreams)),
	}

	for _, s := range desc.VideoStreams {
		response.VideoStreams = append(response.VideoStreams, VideoStreamJSON{
			Index:      s.Index,
			Codec:      s.Codec,
			Resolution: format.Resolution(s.Width, s.Height),
			Width:      s.Width,
			Height:     s.Height,
			FPS:        s.FrameRate,
			BitRate:    format.BitRate(s.BitRate),
			Title:      s.Title,
		})
	}

	for _, s := range desc.AudioStreams {
		response.AudioStreams = append(response.AudioStreams, AudioStreamJSON{
			Index:      s.Index,
			Codec:      s.Codec,
			Language:   s.Language,
			Title:      s.Title,
			Channels:   s.Channels,
			SampleRate: s.SampleRate,
			BitRate:    format.BitRate(s.BitRate),
			Default:    s.Default,
		})
	}

	for _, s := range desc.SubtitleStreams {
		response.SubtitleStreams = append(response.SubtitleStreams, SubtitleJSON{
			Index:    s.Index,
			Codec:    s.Codec,
			Language: s.Language,
			Title:    s.Title,
			Default:  s.Default,
			Forced:   s.Forced,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
