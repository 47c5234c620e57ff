package tracker

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/state"
)

func newTestTracker(t *testing.T) (*Tracker, *state.Store) {
	t.Helper()
	st, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return New(st), st
}

func f(v float64) *float64 { return &v }

func ps(s model.PlayerState) *model.PlayerState { return &s }

func sample(cur, dur float64, st model.PlayerState) model.Sample {
	return model.Sample{CurrentTime: f(cur), Duration: f(dur), PlayerState: ps(st)}
}

func testItem() model.Item {
	return model.Item{Type: model.TypeVideo, ID: "dQw4w9WgXcQ", URL: "u", Title: "T"}
}

func progress(t *testing.T, st *state.Store, it model.Item) model.ProgressRecord {
	t.Helper()
	rec, _ := st.Progress(it.Key())
	return rec
}

func TestContinuousPlaybackSumsDeltas(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	if _, err := tr.Start(it); err != nil {
		t.Fatalf("start: %v", err)
	}

	// First sample can never attribute: the baseline state is unstarted.
	times := []float64{1, 3, 6, 7.5}
	for _, ct := range times {
		if err := tr.Observe(sample(ct, 100, model.StatePlaying)); err != nil {
			t.Fatalf("observe: %v", err)
		}
	}

	rec := progress(t, st, it)
	if got, want := rec.WatchedSeconds, 6.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("watchedSeconds = %v, want %v", got, want)
	}
	if rec.LastTime != 7.5 || rec.Duration != 100 {
		t.Fatalf("bookkeeping wrong: %+v", rec)
	}
	if rec.Percent != 8 {
		t.Fatalf("percent = %d, want 8", rec.Percent)
	}

	day := model.DayKey(time.Now())
	total, split := st.WatchSeconds(day)
	if math.Abs(total-6.5) > 1e-9 || math.Abs(split.Video-6.5) > 1e-9 {
		t.Fatalf("analytics = %v %+v, want 6.5 attributed to video", total, split)
	}
}

func TestPauseGapContributesNothing(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	_, _ = tr.Start(it)

	_ = tr.Observe(sample(10, 100, model.StatePlaying))
	_ = tr.Observe(sample(11, 100, model.StatePlaying)) // +1
	_ = tr.Observe(sample(12, 100, model.StatePaused))  // pause boundary
	_ = tr.Observe(sample(15, 100, model.StatePlaying)) // resume boundary
	_ = tr.Observe(sample(17, 100, model.StatePlaying)) // +2

	rec := progress(t, st, it)
	if got, want := rec.WatchedSeconds, 3.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("watchedSeconds = %v, want %v", got, want)
	}
	if rec.LastTime != 17 {
		t.Fatalf("lastTime = %v, want 17", rec.LastTime)
	}
}

func TestSeekUpdatesPositionWithoutAttribution(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	_, _ = tr.Start(it)

	_ = tr.Observe(sample(10, 100, model.StatePlaying))
	_ = tr.Observe(sample(45, 100, model.StatePlaying)) // delta 35: a seek

	rec := progress(t, st, it)
	if rec.WatchedSeconds != 0 {
		t.Fatalf("seek should not count as watched, got %v", rec.WatchedSeconds)
	}
	if rec.LastTime != 45 || rec.Percent != 45 {
		t.Fatalf("seek should still move the bookmark: %+v", rec)
	}

	// Backwards seek is also ignored (delta <= 0).
	_ = tr.Observe(sample(40, 100, model.StatePlaying))
	if rec := progress(t, st, it); rec.WatchedSeconds != 0 {
		t.Fatalf("backwards seek should not count, got %v", rec.WatchedSeconds)
	}
}

func TestResumeOffset(t *testing.T) {
	cases := []struct {
		name string
		rec  model.ProgressRecord
		want float64
	}{
		{"mid media", model.ProgressRecord{LastTime: 120, Duration: 180}, 120},
		{"near end", model.ProgressRecord{LastTime: 178, Duration: 180}, 0},
		{"exactly at margin", model.ProgressRecord{LastTime: 175, Duration: 180}, 0},
		{"too early", model.ProgressRecord{LastTime: 4, Duration: 180}, 0},
		{"unknown duration", model.ProgressRecord{LastTime: 100, Duration: 0}, 100},
		{"no record", model.ProgressRecord{}, 0},
		{"negative garbage", model.ProgressRecord{LastTime: -30, Duration: -1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResumeOffset(tc.rec); got != tc.want {
				t.Fatalf("ResumeOffset(%+v) = %v, want %v", tc.rec, got, tc.want)
			}
		})
	}
}

func TestStartSeedsBaselineFromResume(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	st.SetProgress(it.Key(), model.ProgressRecord{LastTime: 120, Duration: 180, WatchedSeconds: 50, Percent: 67})

	resume, err := tr.Start(it)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resume != 120 {
		t.Fatalf("resume = %v, want 120", resume)
	}
	if cur := st.Current(); cur == nil || cur.ID != it.ID {
		t.Fatalf("current not set: %+v", cur)
	}

	// The first post-resume sample must not attribute the jump from the
	// seeded offset, whatever the player reports.
	_ = tr.Observe(sample(121, 180, model.StatePlaying))
	if rec := progress(t, st, it); rec.WatchedSeconds != 50 {
		t.Fatalf("first sample after resume attributed time: %v", rec.WatchedSeconds)
	}
	_ = tr.Observe(sample(123, 180, model.StatePlaying))
	if rec := progress(t, st, it); rec.WatchedSeconds != 52 {
		t.Fatalf("steady playback after resume should attribute: %v", rec.WatchedSeconds)
	}
}

func TestPercentStickyWhileDurationUnknown(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	_, _ = tr.Start(it)

	_ = tr.Observe(sample(100, 200, model.StatePlaying))
	if rec := progress(t, st, it); rec.Percent != 50 {
		t.Fatalf("percent = %d, want 50", rec.Percent)
	}

	// Duration temporarily reported as 0: percent must not reset.
	_ = tr.Observe(sample(102, 0, model.StatePlaying))
	rec := progress(t, st, it)
	if rec.Percent != 50 {
		t.Fatalf("percent dropped while duration unknown: %d", rec.Percent)
	}
	if rec.Duration != 0 || rec.LastTime != 102 {
		t.Fatalf("bookkeeping wrong during unknown duration: %+v", rec)
	}

	// Valid duration reappears: percent recovers.
	_ = tr.Observe(sample(104, 200, model.StatePlaying))
	if rec := progress(t, st, it); rec.Percent != 52 {
		t.Fatalf("percent = %d after duration recovered, want 52", rec.Percent)
	}
}

func TestPercentClampedAt100(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	_, _ = tr.Start(it)

	_ = tr.Observe(sample(250, 200, model.StatePlaying))
	if rec := progress(t, st, it); rec.Percent != 100 {
		t.Fatalf("percent = %d, want clamp to 100", rec.Percent)
	}
}

func TestMidnightDeltaLandsInLaterDay(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	_, _ = tr.Start(it)

	dayOne := time.Date(2026, 8, 30, 23, 59, 58, 0, time.Local)
	dayTwo := time.Date(2026, 8, 31, 0, 0, 2, 0, time.Local)

	tr.now = func() time.Time { return dayOne }
	_ = tr.Observe(sample(10, 100, model.StatePlaying))
	_ = tr.Observe(sample(11, 100, model.StatePlaying)) // +1 on day one

	tr.now = func() time.Time { return dayTwo }
	_ = tr.Observe(sample(15, 100, model.StatePlaying)) // +4, wholly on day two

	totalOne, _ := st.WatchSeconds(model.DayKey(dayOne))
	totalTwo, _ := st.WatchSeconds(model.DayKey(dayTwo))
	if totalOne != 1 {
		t.Fatalf("day one total = %v, want 1", totalOne)
	}
	if totalTwo != 4 {
		t.Fatalf("day two total = %v, want 4 (whole delta goes to the later day)", totalTwo)
	}
}

func TestMalformedTelemetryFallsBack(t *testing.T) {
	tr, st := newTestTracker(t)
	it := testItem()
	_, _ = tr.Start(it)

	_ = tr.Observe(sample(10, 100, model.StatePlaying))

	// Missing fields fall back to the last known values.
	if err := tr.Observe(model.Sample{}); err != nil {
		t.Fatalf("observe empty sample: %v", err)
	}
	rec := progress(t, st, it)
	if rec.LastTime != 10 || rec.Duration != 100 {
		t.Fatalf("empty sample changed bookkeeping: %+v", rec)
	}
	if rec.WatchedSeconds != 0 {
		t.Fatalf("empty sample attributed time: %v", rec.WatchedSeconds)
	}

	// Non-finite values degrade per field, never corrupt the record.
	_ = tr.Observe(model.Sample{
		CurrentTime: f(math.NaN()),
		Duration:    f(math.Inf(1)),
		PlayerState: ps(model.StatePlaying),
	})
	rec = progress(t, st, it)
	if rec.LastTime != 10 || rec.Duration != 100 {
		t.Fatalf("non-finite sample corrupted record: %+v", rec)
	}
}

func TestObserveWithoutTargetIsNoop(t *testing.T) {
	tr, st := newTestTracker(t)
	if err := tr.Observe(sample(10, 100, model.StatePlaying)); err != nil {
		t.Fatalf("observe without target: %v", err)
	}
	if _, ok := st.Progress(testItem().Key()); ok {
		t.Fatalf("observe without a target should not create records")
	}
}

func TestTargetSwitchResetsBaseline(t *testing.T) {
	tr, st := newTestTracker(t)
	first := testItem()
	second := model.Item{Type: model.TypeVideo, ID: "abcdefghijk", Title: "Other"}

	_, _ = tr.Start(first)
	_ = tr.Observe(sample(10, 100, model.StatePlaying))
	_ = tr.Observe(sample(12, 100, model.StatePlaying)) // +2 on first

	_, _ = tr.Start(second)
	// Without a reset this would look like a 3s playing delta.
	_ = tr.Observe(sample(15, 90, model.StatePlaying))
	if rec := progress(t, st, second); rec.WatchedSeconds != 0 {
		t.Fatalf("baseline leaked across targets: %v", rec.WatchedSeconds)
	}
	if rec := progress(t, st, first); rec.WatchedSeconds != 2 {
		t.Fatalf("first item's accounting changed: %v", rec.WatchedSeconds)
	}
}

func TestStopClearsTarget(t *testing.T) {
	tr, st := newTestTracker(t)
	_, _ = tr.Start(testItem())
	tr.Stop()

	if tr.Target() != nil {
		t.Fatalf("target should be nil after stop")
	}
	if st.Current() != nil {
		t.Fatalf("current should be cleared after stop")
	}
	if err := tr.Observe(sample(10, 100, model.StatePlaying)); err != nil {
		t.Fatalf("observe after stop: %v", err)
	}
}
