package probe

// MediaDescriptor is the normalized result of probing one remote resource:
// container-level attributes plus the ordered per-kind stream lists. Built
// fresh per request; never cached or persisted.
type MediaDescriptor struct {
	Info            MediaInfo
	VideoStreams    []VideoStream
	AudioStreams    []AudioStream
	SubtitleStreams []SubtitleStream
}

// MediaInfo holds container-level attributes. Duration is in seconds, Size
// in bytes, BitRate in bits per second; zero means the container did not
// report the value. Presentation formatting is the caller's concern.
type MediaInfo struct {
	Filename string
	Format   string
	Duration float64
	Size     int64
	BitRate  int64
}

// VideoStream describes one elementary video stream. Index is the
// container's own stream index, not the position in VideoStreams; it must
// be passed through unchanged when selecting the stream for extraction.
type VideoStream struct {
	Index     int
	Codec     string
	Width     int
	Height    int
	FrameRate string
	BitRate   int64
	Title     string
}

// AudioStream describes one elementary audio stream.
type AudioStream struct {
	Index      int
	Codec      string
	Language   string
	Title      string
	Channels   int
	SampleRate string
	BitRate    int64
	Default    bool
}

// SubtitleStream describes one subtitle stream.
type SubtitleStream struct {
	Index    int
	Codec    string
	Language string
	Title    string
	Default  bool
	Forced   bool
}
