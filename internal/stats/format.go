package stats

import (
	"fmt"
	"math"
)

// FormatSeconds renders a second count as mm:ss, or hh:mm:ss past an hour.
func FormatSeconds(totalSeconds float64) string {
	if math.IsNaN(totalSeconds) || totalSeconds < 0 {
		totalSeconds = 0
	}
	s := int(math.Floor(totalSeconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
