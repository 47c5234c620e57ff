// Package tracker reconciles player telemetry into durable watch progress
// and daily analytics. It decides which time deltas count as genuinely
// watched and which are seeks, pauses or suspend gaps.
package tracker

import (
	"math"
	"time"

	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/state"
)

const (
	// maxAttributedDelta bounds a believable gap between two polled
	// samples. Anything larger is a seek or a suspended tab, not watching.
	maxAttributedDelta = 10.0

	// resumeMargin keeps restarts out of the final seconds of media that
	// is effectively finished.
	resumeMargin = 5.0
)

// Tracker owns the ephemeral per-session telemetry baseline and folds
// samples into the store. Durable records are only touched through the
// store's API.
type Tracker struct {
	store *state.Store
	now   func() time.Time

	target *model.Current

	// Baseline from the previous sample, used to compute deltas.
	prevTime  float64
	prevState model.PlayerState

	// Last known finite values, substituted for absent sample fields.
	snapTime     float64
	snapDuration float64
	snapState    model.PlayerState
}

// New creates a tracker bound to the given store.
func New(store *state.Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Target returns the active playback target, or nil when idle.
func (t *Tracker) Target() *model.Current {
	return t.target
}

// ResumeOffset applies the resume policy to a progress record: resume at
// the last position when it is meaningfully into the media and not within
// the final few seconds, otherwise start over.
func ResumeOffset(rec model.ProgressRecord) float64 {
	last := math.Max(0, finiteOr(rec.LastTime, 0))
	duration := math.Max(0, finiteOr(rec.Duration, 0))
	if last > resumeMargin && (duration <= 0 || last < duration-resumeMargin) {
		return last
	}
	return 0
}

// Start makes item the playback target, seeds the session baseline at the
// resume offset and persists immediately. It returns the offset the
// player should start from.
func (t *Tracker) Start(item model.Item) (float64, error) {
	rec, _ := t.store.Progress(item.Key())
	resume := ResumeOffset(rec)

	t.target = &model.Current{Type: item.Type, ID: item.ID}
	t.prevTime = resume
	t.prevState = model.StateUnstarted
	t.snapTime = resume
	t.snapDuration = math.Max(0, finiteOr(rec.Duration, 0))
	t.snapState = model.StateUnstarted

	t.store.SetCurrent(t.target)
	return resume, t.store.Save()
}

// Stop clears the playback target. Telemetry arriving afterwards is
// ignored until the next Start.
func (t *Tracker) Stop() {
	t.target = nil
	t.store.SetCurrent(nil)
}

// Observe folds one telemetry sample into the target's progress record
// and the day's analytics. Absent sample fields degrade to the last known
// value for that field; bad input never corrupts the record. The write to
// disk is throttled.
func (t *Tracker) Observe(sample model.Sample) error {
	if t.target == nil {
		return nil
	}
	key := model.ItemKey(t.target.Type, t.target.ID)
	rec, _ := t.store.Progress(key)

	cur := t.snapTime
	if sample.CurrentTime != nil {
		cur = finiteOr(*sample.CurrentTime, t.snapTime)
	}
	dur := t.snapDuration
	if sample.Duration != nil {
		dur = finiteOr(*sample.Duration, t.snapDuration)
	}
	st := t.snapState
	if sample.PlayerState != nil {
		st = *sample.PlayerState
	}

	nextTime := math.Max(0, cur)
	nextDuration := math.Max(0, dur)

	// Only a Playing→Playing transition spanning a plausible single poll
	// interval counts as watched time. The first sample after a seek or
	// resume, paused or buffering intervals, and large jumps all fail the
	// check; they still update position bookkeeping below.
	delta := nextTime - t.prevTime
	if t.prevState == model.StatePlaying && st == model.StatePlaying &&
		delta > 0 && delta < maxAttributedDelta {
		rec.WatchedSeconds += delta
		// The whole delta lands in the wall-clock day of the later
		// sample, even when the gap straddles midnight.
		t.store.AddWatchTime(model.DayKey(t.now()), t.target.Type, delta)
	}

	rec.LastTime = nextTime
	rec.Duration = nextDuration
	if nextDuration > 0 {
		pct := int(math.Round(nextTime / nextDuration * 100))
		if pct > 100 {
			pct = 100
		}
		rec.Percent = pct
	}
	t.store.SetProgress(key, rec)

	t.prevTime = nextTime
	t.prevState = st
	t.snapTime = nextTime
	t.snapDuration = nextDuration
	t.snapState = st

	return t.store.SaveThrottled()
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
