package relay

import (
	"log/slog"
	"math"

	"github.com/verte-zerg/cleantube/internal/model"
)

// Player is the backend a relay drives. Implementations report errors for
// values they cannot produce; the relay degrades those to absent fields.
type Player interface {
	Load(params LoadParams) error
	CurrentTime() (float64, error)
	Duration() (float64, error)
	State() (model.PlayerState, error)
	SeekTo(seconds float64) error
	Play() error
	Pause() error
	Close() error
}

const channelDepth = 16

// Relay runs the player-facing actor. The host posts commands with Post
// and consumes telemetry from Info; both sides are non-blocking and
// lossy, matching a rate-limited, best-effort telemetry source.
type Relay struct {
	player Player
	log    *slog.Logger
	cmds   chan Command
	infos  chan PlayerInfo
	done   chan struct{}
}

// New creates a relay around player. Call Start to launch its goroutine.
func New(player Player, log *slog.Logger) *Relay {
	return &Relay{
		player: player,
		log:    log,
		cmds:   make(chan Command, channelDepth),
		infos:  make(chan PlayerInfo, channelDepth),
		done:   make(chan struct{}),
	}
}

// Start launches the relay goroutine.
func (r *Relay) Start() {
	go r.loop()
}

// Stop terminates the relay goroutine and closes the player.
func (r *Relay) Stop() {
	close(r.done)
	if err := r.player.Close(); err != nil {
		r.log.Warn("player close failed", "error", err)
	}
}

// Post hands a command to the relay. It never blocks: when the relay is
// backed up the command is dropped, the next poll will ask again.
func (r *Relay) Post(cmd Command) {
	select {
	case r.cmds <- cmd:
	default:
		r.log.Debug("command dropped, relay busy", "command", cmd.Command)
	}
}

// Info exposes the telemetry stream for the host to consume.
func (r *Relay) Info() <-chan PlayerInfo {
	return r.infos
}

// Load points the player at a new target. Launch parameters do not go
// through the message channel; they are host-initiated and synchronous.
func (r *Relay) Load(params LoadParams) error {
	return r.player.Load(params)
}

func (r *Relay) loop() {
	for {
		select {
		case <-r.done:
			return
		case cmd := <-r.cmds:
			if !ValidCommand(cmd) {
				r.log.Debug("dropped command with bad tags", "source", cmd.Source, "type", cmd.Type)
				continue
			}
			r.handle(cmd)
		}
	}
}

func (r *Relay) handle(cmd Command) {
	switch cmd.Command {
	case CmdGetCurrentTime, CmdGetDuration:
		r.emit(r.snapshot())
	case CmdSeekTo:
		if err := r.player.SeekTo(cmd.Seconds); err != nil {
			r.log.Debug("seek failed", "error", err)
		}
	case CmdPlayVideo:
		if err := r.player.Play(); err != nil {
			r.log.Debug("play failed", "error", err)
		}
	case CmdPauseVideo:
		if err := r.player.Pause(); err != nil {
			r.log.Debug("pause failed", "error", err)
		}
	default:
		r.log.Debug("unknown command ignored", "command", cmd.Command)
	}
}

// snapshot queries the player and reports whichever fields it could read.
func (r *Relay) snapshot() PlayerInfo {
	info := PlayerInfo{Source: SourceRelay, Type: TypePlayerInfo}
	if v, err := r.player.CurrentTime(); err == nil && finite(v) {
		info.CurrentTime = &v
	}
	if v, err := r.player.Duration(); err == nil && finite(v) {
		info.Duration = &v
	}
	if st, err := r.player.State(); err == nil {
		info.PlayerState = &st
	}
	return info
}

func (r *Relay) emit(info PlayerInfo) {
	select {
	case r.infos <- info:
	default:
		// Telemetry is best-effort; a full channel means the host is
		// behind and fresher samples will follow.
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
