package format

import "testing"

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "Unknown"},
		{-5, "Unknown"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{7384, "02:03:04"},
		{7384.9, "02:03:04"},
	}

	for _, tt := range tests {
		if got := Duration(tt.seconds); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "Unknown"},
		{-1, "Unknown"},
		{500, "500.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1073741824, "1.00 GB"},
		{1649267441664, "1.50 TB"},
	}

	for _, tt := range tests {
		if got := Size(tt.bytes); got != tt.want {
			t.Errorf("Size(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestBitRate(t *testing.T) {
	tests := []struct {
		bps  int64
		want string
	}{
		{0, "Unknown"},
		{500, "500 bps"},
		{128000, "128 Kbps"},
		{1500000, "1.50 Mbps"},
	}

	for _, tt := range tests {
		if got := BitRate(tt.bps); got != tt.want {
			t.Errorf("BitRate(%d) = %q, want %q", tt.bps, got, tt.want)
		}
	}
}

func TestResolution(t *testing.T) {
	if got := Resolution(1920, 1080); got != "1920x1080" {
		t.Errorf("Resolution = %q", got)
	}
	if got := Resolution(0, 0); got != "?x?" {
		t.Errorf("Resolution = %q", got)
	}
}
