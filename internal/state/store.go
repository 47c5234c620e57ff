package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"github.com/verte-zerg/cleantube/internal/model"
)

// saveInterval is the minimum spacing between telemetry-driven writes.
// Explicit saves bypass it and reset the window.
const saveInterval = 5 * time.Second

// ErrStorageFull indicates a save failed because the disk or quota is
// exhausted. Callers warn the user and keep running; the in-memory state
// stays authoritative until the next successful save.
var ErrStorageFull = errors.New("state: storage full")

// Store holds the application state in memory and persists it to a single
// JSON file. Loading never fails: missing or corrupt data degrades to
// defaults field by field. All methods are safe for concurrent use,
// though the application drives the store from a single goroutine.
type Store struct {
	mu         sync.Mutex
	path       string
	lock       *flock.Flock
	state      State
	now        func() time.Time
	lastSaveAt time.Time
}

// Open loads the state file at path, creating directories as needed, and
// takes an advisory lock so two instances cannot fight over one file.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock state file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("state file %s is in use by another instance", path)
	}

	// Read errors are treated like an absent file: the store must always
	// yield a usable state.
	raw, _ := os.ReadFile(path)

	return &Store{
		path:  path,
		lock:  lock,
		state: Decode(raw),
		now:   time.Now,
	}, nil
}

// Close releases the instance lock.
func (s *Store) Close() error {
	return s.lock.Unlock()
}

// Save persists the state immediately and resets the throttle window.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSaveAt = s.now()
	return s.write()
}

// SaveThrottled persists the state at most once per throttle window.
// Telemetry-driven updates go through here so a one-second poll does not
// turn into a one-second write cadence.
func (s *Store) SaveThrottled() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSaveAt) < saveInterval {
		return nil
	}
	s.lastSaveAt = now
	return s.write()
}

func (s *Store) write() error {
	data, err := Encode(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return classifyWriteError(err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func classifyWriteError(err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("%w: %v", ErrStorageFull, err)
	}
	return fmt.Errorf("failed to write state: %w", err)
}

// Items returns a copy of the saved items of the given type in display order.
func (s *Store) Items(t model.ItemType) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.list(t)
	out := make([]model.Item, len(*list))
	copy(out, *list)
	return out
}

func (s *Store) list(t model.ItemType) *[]model.Item {
	if t == model.TypePlaylist {
		return &s.state.Playlists
	}
	return &s.state.Videos
}

// FindItem looks up an item by identity.
func (s *Store) FindItem(t model.ItemType, id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range *s.list(t) {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// AddItem appends item to its list. When an item with the same identity
// already exists, the existing item is returned and added is false.
func (s *Store) AddItem(item model.Item) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.list(item.Type)
	for _, existing := range *list {
		if existing.ID == item.ID {
			return existing, false
		}
	}
	*list = append(*list, item)
	return item, true
}

// RenameItem updates the display title of an item.
func (s *Store) RenameItem(t model.ItemType, id, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.list(t)
	for i := range *list {
		if (*list)[i].ID == id {
			(*list)[i].Title = title
			return true
		}
	}
	return false
}

// MoveItem shifts an item up (delta -1) or down (delta +1) in its list.
func (s *Store) MoveItem(t model.ItemType, id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := *s.list(t)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(list) {
			return false
		}
		list[i], list[j] = list[j], list[i]
		return true
	}
	return false
}

// DeleteItem removes an item and its dependent records: note, timeline
// notes and progress. Skipping that cleanup would leak storage on every
// delete. The current target is cleared when it points at the item.
func (s *Store) DeleteItem(t model.ItemType, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.list(t)
	for i, it := range *list {
		if it.ID != id {
			continue
		}
		*list = append((*list)[:i], (*list)[i+1:]...)
		s.dropRecords(it.Key())
		if s.state.Current != nil && s.state.Current.Type == t && s.state.Current.ID == id {
			s.state.Current = nil
		}
		return true
	}
	return false
}

// ClearItems removes every item of the given type along with their
// dependent records, and clears the current target if it was of that type.
func (s *Store) ClearItems(t model.ItemType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.list(t)
	removed := len(*list)
	for _, it := range *list {
		s.dropRecords(it.Key())
	}
	*list = []model.Item{}
	if s.state.Current != nil && s.state.Current.Type == t {
		s.state.Current = nil
	}
	return removed
}

func (s *Store) dropRecords(key string) {
	delete(s.state.Notes, key)
	delete(s.state.Progress, key)
	delete(s.state.TimelineNotes, key)
}

// Note returns the free-text note for an item key.
func (s *Store) Note(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Notes[key]
}

// SetNote stores the free-text note for an item key, last write wins.
func (s *Store) SetNote(key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notes[key] = text
}

// TimelineNotes returns the timestamped notes for an item key.
func (s *Store) TimelineNotes(key string) []model.TimelineNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.state.TimelineNotes[key]
	out := make([]model.TimelineNote, len(notes))
	copy(out, notes)
	return out
}

// AddTimelineNote appends a timestamped note for an item key.
func (s *Store) AddTimelineNote(key string, note model.TimelineNote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TimelineNotes[key] = append(s.state.TimelineNotes[key], note)
}

// CountTimelineNotes totals timestamped notes across all items.
func (s *Store) CountTimelineNotes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, notes := range s.state.TimelineNotes {
		total += len(notes)
	}
	return total
}

// Progress returns the progress record for an item key.
func (s *Store) Progress(key string) (model.ProgressRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.state.Progress[key]
	return rec, ok
}

// SetProgress stores the progress record for an item key.
func (s *Store) SetProgress(key string, rec model.ProgressRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress[key] = rec
}

// AddWatchTime folds an attributed watch delta into the day's analytics,
// both the overall accumulator and the per-type split.
func (s *Store) AddWatchTime(day string, t model.ItemType, seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Analytics.DailyWatchSeconds[day] += seconds
	split := s.state.Analytics.DailyWatchByType[day]
	if t == model.TypePlaylist {
		split.Playlist += seconds
	} else {
		split.Video += seconds
	}
	s.state.Analytics.DailyWatchByType[day] = split
}

// WatchSeconds returns the accumulated totals for a day.
func (s *Store) WatchSeconds(day string) (float64, model.TypeSplit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Analytics.DailyWatchSeconds[day], s.state.Analytics.DailyWatchByType[day]
}

// Current returns the active playback target, or nil.
func (s *Store) Current() *model.Current {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Current == nil {
		return nil
	}
	cur := *s.state.Current
	return &cur
}

// SetCurrent records the active playback target; nil clears it.
func (s *Store) SetCurrent(cur *model.Current) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur == nil {
		s.state.Current = nil
		return
	}
	c := *cur
	s.state.Current = &c
}
