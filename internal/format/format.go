package format

import "fmt"

const unknown = "Unknown"

// Duration renders a duration in seconds as HH:MM:SS.
// Zero or negative values render as "Unknown".
func Duration(seconds float64) string {
	if seconds <= 0 {
		return unknown
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Size renders a byte count with a 1024 divisor and two decimals, for
// example "1.00 GB". Zero renders as "Unknown".
func Size(bytes int64) string {
	if bytes <= 0 {
		return unknown
	}
	v := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if v < 1024 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f TB", v)
}

// BitRate renders a rate in bits per second as Mbps/Kbps/bps.
// Zero renders as "Unknown".
func BitRate(bps int64) string {
	switch {
	case bps <= 0:
		return unknown
	case bps >= 1000000:
		return fmt.Sprintf("%.2f Mbps", float64(bps)/1000000)
	case bps >= 1000:
		return fmt.Sprintf("%.0f Kbps", float64(bps)/1000)
	default:
		return fmt.Sprintf("%d bps", bps)
	}
}

// Resolution renders video dimensions as "WxH", with "?" for unknown sides.
func Resolution(width, height int) string {
	return dimension(width) + "x" + dimension(height)
}

func dimension(v int) string {
	if v <= 0 {
		return "?"
	}
	return fmt.Sprintf("%d", v)
}
