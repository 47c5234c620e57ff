// Package model defines shared data structures.
package model

import "time"

// ItemType distinguishes saved videos from saved playlists.
type ItemType string

// Item types.
const (
	TypeVideo    ItemType = "video"
	TypePlaylist ItemType = "playlist"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	return t == TypeVideo || t == TypePlaylist
}

// Item is a saved video or playlist reference. Identity is (Type, ID);
// slice order is display order and is user-reorderable.
type Item struct {
	Type  ItemType `json:"type"`
	ID    string   `json:"id"`
	URL   string   `json:"url"`
	Title string   `json:"title"`
}

// Key returns the storage key shared by notes and progress records.
func (it Item) Key() string {
	return ItemKey(it.Type, it.ID)
}

// ItemKey builds the "type:id" key used across the persisted maps.
func ItemKey(t ItemType, id string) string {
	return string(t) + ":" + id
}

// Current identifies the active playback target, if any.
type Current struct {
	Type ItemType `json:"type"`
	ID   string   `json:"id"`
}

// ProgressRecord tracks durable playback state for one item.
// WatchedSeconds only ever grows; Percent is derived from LastTime and
// Duration and keeps its previous value while Duration is unknown.
type ProgressRecord struct {
	LastTime       float64 `json:"lastTime"`
	Duration       float64 `json:"duration"`
	WatchedSeconds float64 `json:"watchedSeconds"`
	Percent        int     `json:"percent"`
}

// TimelineNote pins a note to a playback position within an item.
type TimelineNote struct {
	Seconds   float64   `json:"seconds"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TypeSplit partitions accumulated watch seconds by item type.
type TypeSplit struct {
	Video    float64 `json:"video"`
	Playlist float64 `json:"playlist"`
}

// Analytics holds per-day watch-time accumulators keyed by local
// calendar day (YYYY-MM-DD). Days are append-only.
type Analytics struct {
	DailyWatchSeconds map[string]float64   `json:"dailyWatchSeconds"`
	DailyWatchByType  map[string]TypeSplit `json:"dailyWatchByType"`
}

// PlayerState mirrors the state codes reported by the embedded player.
type PlayerState int

// Player states.
const (
	StateUnstarted PlayerState = -1
	StateEnded     PlayerState = 0
	StatePlaying   PlayerState = 1
	StatePaused    PlayerState = 2
	StateBuffering PlayerState = 3
	StateCued      PlayerState = 5
)

// Sample is one telemetry report. Nil fields were absent or non-finite
// at the source and fall back to the last known value downstream.
type Sample struct {
	CurrentTime *float64
	Duration    *float64
	PlayerState *PlayerState
}

// DayKey formats t as the local calendar day used for analytics buckets.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Config holds runtime settings resolved from flags and the config file.
type Config struct {
	Mpv       string
	MpvArgs   []string
	StatePath string
	LogPath   string
	Autoplay  bool
	Debug     bool
}
