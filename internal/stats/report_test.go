package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/state"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := state.Open(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	st.AddWatchTime(model.DayKey(now), model.TypeVideo, 120)
	st.AddWatchTime(model.DayKey(now), model.TypePlaylist, 60)
	st.AddWatchTime(model.DayKey(now.AddDate(0, 0, -2)), model.TypeVideo, 30)
	// Outside the window; must not show up anywhere.
	st.AddWatchTime(model.DayKey(now.AddDate(0, 0, -9)), model.TypeVideo, 999)
	st.AddTimelineNote("video:abc", model.TimelineNote{Seconds: 10, Text: "intro"})
	st.AddTimelineNote("video:abc", model.TimelineNote{Seconds: 40, Text: "demo"})

	r := BuildReport(st, now)
	if len(r.Rows) != ReportDays {
		t.Fatalf("expected %d rows, got %d", ReportDays, len(r.Rows))
	}
	if r.Rows[0].Day != model.DayKey(now.AddDate(0, 0, -6)) {
		t.Fatalf("rows not oldest-first: first day %s", r.Rows[0].Day)
	}
	last := r.Rows[ReportDays-1]
	if last.Day != model.DayKey(now) || last.Total != 180 || last.Video != 120 || last.Playlist != 60 {
		t.Fatalf("unexpected today row: %+v", last)
	}
	if r.WeekTotal != 210 || r.WeekVideo != 150 || r.WeekPlaylist != 60 {
		t.Fatalf("unexpected week totals: total=%v video=%v playlist=%v", r.WeekTotal, r.WeekVideo, r.WeekPlaylist)
	}
	if r.TimelineNotes != 2 {
		t.Fatalf("expected 2 timeline notes, got %d", r.TimelineNotes)
	}
}

func TestTrendSeries(t *testing.T) {
	r := Report{Rows: []DailyRow{
		{Day: "2026-08-29", Total: 600},
		{Day: "2026-08-30", Total: 0},
		{Day: "2026-08-31", Total: 90},
	}}
	s := r.TrendSeries()
	want := []float64{10, 0, 1.5}
	if len(s.Values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(s.Values))
	}
	for i, v := range want {
		if s.Values[i] != v {
			t.Errorf("value %d = %v, want %v", i, s.Values[i], v)
		}
	}
}

func TestSplitSeries(t *testing.T) {
	r := Report{Rows: []DailyRow{
		{Day: "2026-08-30", Video: 120, Playlist: 0},
		{Day: "2026-08-31", Video: 60, Playlist: 300},
	}}
	series := r.SplitSeries()
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	if series[0].Values[0] != 2 || series[0].Values[1] != 1 {
		t.Fatalf("unexpected video minutes: %v", series[0].Values)
	}
	if series[1].Values[0] != 0 || series[1].Values[1] != 5 {
		t.Fatalf("unexpected playlist minutes: %v", series[1].Values)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{65, "01:05"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
		{-5, "00:00"},
	}
	for _, c := range cases {
		if got := FormatSeconds(c.in); got != c.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
