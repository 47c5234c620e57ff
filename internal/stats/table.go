package stats

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderDailyTable writes the per-day watch-time breakdown as a table.
func RenderDailyTable(w io.Writer, r Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Day", "Total", "Videos", "Playlists"})
	for _, row := range r.Rows {
		t.AppendRow(table.Row{
			row.Day,
			FormatSeconds(row.Total),
			FormatSeconds(row.Video),
			FormatSeconds(row.Playlist),
		})
	}
	t.AppendFooter(table.Row{
		"Week",
		FormatSeconds(r.WeekTotal),
		FormatSeconds(r.WeekVideo),
		FormatSeconds(r.WeekPlaylist),
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Total", Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Name: "Videos", Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Name: "Playlists", Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}
