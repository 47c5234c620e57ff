// Package relay bridges the host application and the external player.
// The host never calls into the player directly: it exchanges tagged
// command and telemetry messages with a relay actor running in its own
// goroutine, and drops anything whose tags do not match the contract.
package relay

import "github.com/verte-zerg/cleantube/internal/model"

// Message source tags. Anything else is untrusted and dropped.
const (
	SourceHost  = "host-app"
	SourceRelay = "relay"
)

// Message type tags.
const (
	TypeCommand    = "command"
	TypePlayerInfo = "player-info"
)

// CommandName enumerates the player commands the host may issue.
type CommandName string

// Commands.
const (
	CmdGetCurrentTime CommandName = "getCurrentTime"
	CmdGetDuration    CommandName = "getDuration"
	CmdSeekTo         CommandName = "seekTo"
	CmdPlayVideo      CommandName = "playVideo"
	CmdPauseVideo     CommandName = "pauseVideo"
)

// Command is a host-to-relay message.
type Command struct {
	Source  string      `json:"source"`
	Type    string      `json:"type"`
	Command CommandName `json:"command"`
	Seconds float64     `json:"seconds,omitempty"`
}

// NewCommand builds a well-tagged command message.
func NewCommand(name CommandName) Command {
	return Command{Source: SourceHost, Type: TypeCommand, Command: name}
}

// SeekCommand builds a well-tagged seek message.
func SeekCommand(seconds float64) Command {
	cmd := NewCommand(CmdSeekTo)
	cmd.Seconds = seconds
	return cmd
}

// ValidCommand reports whether the relay should act on msg.
func ValidCommand(msg Command) bool {
	return msg.Source == SourceHost && msg.Type == TypeCommand
}

// PlayerInfo is a relay-to-host telemetry message. Each numeric field is
// present only when the player reported a finite value; replies are
// self-contained, best-effort samples with no request correlation.
type PlayerInfo struct {
	Source      string             `json:"source"`
	Type        string             `json:"type"`
	CurrentTime *float64           `json:"currentTime,omitempty"`
	Duration    *float64           `json:"duration,omitempty"`
	PlayerState *model.PlayerState `json:"playerState,omitempty"`
}

// ValidInfo reports whether the host should act on msg.
func ValidInfo(msg PlayerInfo) bool {
	return msg.Source == SourceRelay && msg.Type == TypePlayerInfo
}

// Sample converts a telemetry message into a reconciler sample.
func (p PlayerInfo) Sample() model.Sample {
	return model.Sample{
		CurrentTime: p.CurrentTime,
		Duration:    p.Duration,
		PlayerState: p.PlayerState,
	}
}

// LoadParams are playback-launch parameters. They travel through the
// relay's Load call, not the message channel.
type LoadParams struct {
	URL      string
	Autoplay bool
	StartAt  float64
}
