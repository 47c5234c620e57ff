package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/state"
	"github.com/verte-zerg/cleantube/internal/stats"
)

// renderItemTable writes all saved items with their progress, videos
// first, preserving each list's display order.
func renderItemTable(w io.Writer, st *state.Store) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Type", "Title", "Watched", "%", "URL"})

	for _, t := range []model.ItemType{model.TypeVideo, model.TypePlaylist} {
		for _, item := range st.Items(t) {
			watched := ""
			pct := ""
			if rec, ok := st.Progress(item.Key()); ok {
				watched = stats.FormatSeconds(rec.WatchedSeconds)
				if rec.Percent > 0 {
					pct = fmt.Sprintf("%d%%", rec.Percent)
				}
			}
			title := item.Title
			if title == "" {
				title = item.ID
			}
			tw.AppendRow(table.Row{string(t), title, watched, pct, item.URL})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Watched", Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Name: "%", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.Render()
}
