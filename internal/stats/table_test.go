package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRenderDailyTable(t *testing.T) {
	r := Report{
		Rows: []DailyRow{
			{Day: "2026-08-30", Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Total: 90, Video: 90},
			{Day: "2026-08-31", Date: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Total: 3725, Video: 3600, Playlist: 125},
		},
		WeekTotal:    3815,
		WeekVideo:    3690,
		WeekPlaylist: 125,
	}

	var buf bytes.Buffer
	RenderDailyTable(&buf, r)
	out := buf.String()

	for _, want := range []string{"Day", "2026-08-31", "01:02:05", "01:30", "Week", "01:03:35"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
