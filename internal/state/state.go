// Package state owns the persisted application state: saved items, notes,
// watch progress and daily analytics, stored as a single JSON document.
package state

import (
	"encoding/json"

	"github.com/verte-zerg/cleantube/internal/model"
)

// State is the full persisted blob.
type State struct {
	Videos        []model.Item                    `json:"videos"`
	Playlists     []model.Item                    `json:"playlists"`
	Notes         map[string]string               `json:"notes"`
	TimelineNotes map[string][]model.TimelineNote `json:"timelineNotes"`
	Progress      map[string]model.ProgressRecord `json:"progress"`
	Analytics     model.Analytics                 `json:"analytics"`
	Current       *model.Current                  `json:"current"`
}

// Default returns a structurally valid empty state.
func Default() State {
	return State{
		Videos:        []model.Item{},
		Playlists:     []model.Item{},
		Notes:         map[string]string{},
		TimelineNotes: map[string][]model.TimelineNote{},
		Progress:      map[string]model.ProgressRecord{},
		Analytics: model.Analytics{
			DailyWatchSeconds: map[string]float64{},
			DailyWatchByType:  map[string]model.TypeSplit{},
		},
		Current: nil,
	}
}

// Decode parses persisted bytes into a State. It never fails: an empty or
// unparsable blob yields the default state, and any individual field whose
// shape does not match the schema is replaced by its default while valid
// sibling fields are kept. Within the map fields, entries that do not
// decode are dropped rather than discarding the whole map.
func Decode(raw []byte) State {
	s := Default()
	if len(raw) == 0 {
		return s
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}

	s.Videos = decodeItems(fields["videos"])
	s.Playlists = decodeItems(fields["playlists"])
	s.Notes = decodeStringMap(fields["notes"])
	s.TimelineNotes = decodeTimelineNotes(fields["timelineNotes"])
	s.Progress = decodeProgress(fields["progress"])
	s.Analytics = decodeAnalytics(fields["analytics"])
	s.Current = decodeCurrent(fields["current"])
	return s
}

// Encode serializes the state for persistence.
func Encode(s State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func decodeItems(raw json.RawMessage) []model.Item {
	var items []model.Item
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return []model.Item{}
	}
	return items
}

func rawEntries(raw json.RawMessage) map[string]json.RawMessage {
	var entries map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return nil
	}
	return entries
}

func decodeStringMap(raw json.RawMessage) map[string]string {
	out := map[string]string{}
	for key, entry := range rawEntries(raw) {
		var text string
		if json.Unmarshal(entry, &text) == nil {
			out[key] = text
		}
	}
	return out
}

func decodeTimelineNotes(raw json.RawMessage) map[string][]model.TimelineNote {
	out := map[string][]model.TimelineNote{}
	for key, entry := range rawEntries(raw) {
		var notes []model.TimelineNote
		if json.Unmarshal(entry, &notes) == nil && notes != nil {
			out[key] = notes
		}
	}
	return out
}

func decodeProgress(raw json.RawMessage) map[string]model.ProgressRecord {
	out := map[string]model.ProgressRecord{}
	for key, entry := range rawEntries(raw) {
		var rec model.ProgressRecord
		if json.Unmarshal(entry, &rec) == nil {
			out[key] = rec
		}
	}
	return out
}

func decodeAnalytics(raw json.RawMessage) model.Analytics {
	out := model.Analytics{
		DailyWatchSeconds: map[string]float64{},
		DailyWatchByType:  map[string]model.TypeSplit{},
	}
	fields := rawEntries(raw)
	for day, entry := range rawEntries(fields["dailyWatchSeconds"]) {
		var secs float64
		if json.Unmarshal(entry, &secs) == nil {
			out.DailyWatchSeconds[day] = secs
		}
	}
	for day, entry := range rawEntries(fields["dailyWatchByType"]) {
		var split model.TypeSplit
		if json.Unmarshal(entry, &split) == nil {
			out.DailyWatchByType[day] = split
		}
	}
	return out
}

func decodeCurrent(raw json.RawMessage) *model.Current {
	var cur model.Current
	if len(raw) == 0 || json.Unmarshal(raw, &cur) != nil {
		return nil
	}
	if !cur.Type.Valid() || cur.ID == "" {
		return nil
	}
	return &cur
}
