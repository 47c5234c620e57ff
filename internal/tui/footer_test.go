package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/cleantube/internal/logging"
	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/relay"
	"github.com/verte-zerg/cleantube/internal/state"
	"github.com/verte-zerg/cleantube/internal/tracker"
)

type stubPlayer struct{}

func (stubPlayer) Load(relay.LoadParams) error       { return nil }
func (stubPlayer) CurrentTime() (float64, error)     { return 0, nil }
func (stubPlayer) Duration() (float64, error)        { return 0, nil }
func (stubPlayer) State() (model.PlayerState, error) { return model.StateUnstarted, nil }
func (stubPlayer) SeekTo(float64) error              { return nil }
func (stubPlayer) Play() error                       { return nil }
func (stubPlayer) Pause() error                      { return nil }
func (stubPlayer) Close() error                      { return nil }

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	rl := relay.New(stubPlayer{}, logging.Discard())
	return NewModel(st, tracker.New(st), rl, logging.Discard(), true)
}

func TestRenderStatusIdle(t *testing.T) {
	m := newTestModel(t)
	if got := m.renderStatus(); got != "" {
		t.Fatalf("idle status = %q, want empty", got)
	}
}

func TestRenderStatusPlaying(t *testing.T) {
	m := newTestModel(t)
	item, _ := m.store.AddItem(model.Item{
		Type:  model.TypeVideo,
		ID:    "dQw4w9WgXcQ",
		URL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title: "Some Video",
	})
	if _, err := m.tracker.Start(item); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.lastTime = 65
	m.lastDuration = 300
	m.lastState = model.StatePlaying

	status := m.renderStatus()
	for _, want := range []string{"Playing", "Some Video", "01:05", "05:00"} {
		if !strings.Contains(status, want) {
			t.Errorf("status missing %q: %q", want, status)
		}
	}
}

func TestRenderFooterConfirmPrompt(t *testing.T) {
	m := newTestModel(t)
	m.focus = focusConfirm
	m.confirm = confirmDelete
	m.confirmItem = model.Item{Type: model.TypeVideo, ID: "abc123def45", Title: "Doomed"}

	footer := m.renderFooter()
	if !strings.Contains(footer, "Doomed") || !strings.Contains(footer, "y/n") {
		t.Fatalf("unexpected confirm footer: %q", footer)
	}
}

func TestStateLabel(t *testing.T) {
	cases := []struct {
		state model.PlayerState
		want  string
	}{
		{model.StatePlaying, "Playing"},
		{model.StatePaused, "Paused"},
		{model.StateBuffering, "Buffering"},
		{model.StateEnded, "Ended"},
		{model.StateCued, "Cued"},
		{model.StateUnstarted, "Idle"},
	}
	for _, c := range cases {
		if got := stateLabel(c.state); got != c.want {
			t.Errorf("stateLabel(%d) = %q, want %q", c.state, got, c.want)
		}
	}
}

func TestNoteSaveResultStorageFullSticks(t *testing.T) {
	m := newTestModel(t)
	m.noteSaveResult(state.ErrStorageFull)
	if !m.storageFull {
		t.Fatalf("storage-full error should raise the warning")
	}
	if line := m.renderNoticeLine(); !strings.Contains(line, "Storage full") {
		t.Fatalf("warning not rendered: %q", line)
	}
	m.noteSaveResult(nil)
	if m.storageFull {
		t.Fatalf("successful save should clear the warning")
	}
}

func TestNoteSaveResultOtherErrorToast(t *testing.T) {
	m := newTestModel(t)
	m.now = func() time.Time { return time.Unix(1000, 0) }
	m.noteSaveResult(errors.New("io trouble"))
	if m.storageFull {
		t.Fatalf("generic error must not raise the storage warning")
	}
	if m.notice == "" {
		t.Fatalf("generic save error should surface a notice")
	}
}
