// Package stats builds watch-time reports from the persisted state.
package stats

import (
	"time"

	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/state"
)

// ReportDays is the window the dashboard covers, today included.
const ReportDays = 7

// DailyRow is one day of the report.
type DailyRow struct {
	Day      string // YYYY-MM-DD
	Date     time.Time
	Total    float64 // seconds
	Video    float64
	Playlist float64
}

// Report contains precomputed data for analytics rendering.
type Report struct {
	Rows          []DailyRow // oldest first
	WeekTotal     float64
	WeekVideo     float64
	WeekPlaylist  float64
	TimelineNotes int
}

// BuildReport assembles the last ReportDays days ending at now's day.
func BuildReport(st *state.Store, now time.Time) Report {
	var r Report
	for i := ReportDays - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		total, split := st.WatchSeconds(model.DayKey(d))
		r.Rows = append(r.Rows, DailyRow{
			Day:      model.DayKey(d),
			Date:     d,
			Total:    total,
			Video:    split.Video,
			Playlist: split.Playlist,
		})
		r.WeekTotal += total
		r.WeekVideo += split.Video
		r.WeekPlaylist += split.Playlist
	}
	r.TimelineNotes = st.CountTimelineNotes()
	return r
}

// TrendSeries returns total minutes per day for plotting, oldest first.
func (r Report) TrendSeries() Series {
	values := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row.Total / 60
	}
	return Series{Name: "minutes watched", Values: values}
}

// SplitSeries returns per-type minutes per day for plotting.
func (r Report) SplitSeries() []Series {
	videos := make([]float64, len(r.Rows))
	playlists := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		videos[i] = row.Video / 60
		playlists[i] = row.Playlist / 60
	}
	return []Series{
		{Name: "videos", Values: videos},
		{Name: "playlists", Values: playlists},
	}
}
