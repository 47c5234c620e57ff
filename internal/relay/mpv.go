package relay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/verte-zerg/cleantube/internal/model"
)

const (
	ipcDialTimeout   = 5 * time.Second
	ipcCallTimeout   = 2 * time.Second
	ipcRetryInterval = 100 * time.Millisecond
)

// MpvPlayer drives an mpv process over its JSON IPC socket. mpv resolves
// YouTube URLs through yt-dlp, so playback stays entirely outside the
// host process.
type MpvPlayer struct {
	log *slog.Logger
	cmd *exec.Cmd

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID int
}

// StartMpv launches mpv idle with an IPC socket and connects to it.
func StartMpv(bin string, extraArgs []string, log *slog.Logger) (*MpvPlayer, error) {
	if bin == "" {
		bin = "mpv"
	}
	socket := filepath.Join(os.TempDir(), fmt.Sprintf("cleantube-mpv-%d.sock", os.Getpid()))

	args := append([]string{
		"--idle=yes",
		"--no-terminal",
		"--force-window=yes",
		"--input-ipc-server=" + socket,
	}, extraArgs...)
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}
	go func() {
		// Reap the process; Close handles shutdown.
		_ = cmd.Wait()
	}()

	conn, err := dialWithRetry(socket, ipcDialTimeout)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}

	log.Info("mpv started", "bin", bin, "socket", socket)
	return &MpvPlayer{
		log:    log,
		cmd:    cmd,
		conn:   conn,
		reader: bufio.NewReader(conn),
	}, nil
}

func dialWithRetry(socket string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("mpv IPC socket did not appear: %w", err)
		}
		time.Sleep(ipcRetryInterval)
	}
}

// Load points mpv at a new target, honoring start offset and autoplay.
func (p *MpvPlayer) Load(params LoadParams) error {
	args := []any{"loadfile", params.URL, "replace"}
	if params.StartAt > 0 {
		args = append(args, "start="+strconv.Itoa(int(params.StartAt)))
	}
	if _, err := p.roundTrip(args...); err != nil {
		return fmt.Errorf("mpv loadfile: %w", err)
	}
	return p.setProperty("pause", !params.Autoplay)
}

// CurrentTime returns the playhead position in seconds.
func (p *MpvPlayer) CurrentTime() (float64, error) {
	return p.getFloat("time-pos")
}

// Duration returns the media length in seconds.
func (p *MpvPlayer) Duration() (float64, error) {
	return p.getFloat("duration")
}

// State maps mpv's property flags onto the shared player states.
func (p *MpvPlayer) State() (model.PlayerState, error) {
	if idle, err := p.getBool("idle-active"); err == nil && idle {
		return model.StateUnstarted, nil
	}
	if eof, err := p.getBool("eof-reached"); err == nil && eof {
		return model.StateEnded, nil
	}
	if stalled, err := p.getBool("paused-for-cache"); err == nil && stalled {
		return model.StateBuffering, nil
	}
	paused, err := p.getBool("pause")
	if err != nil {
		return model.StateUnstarted, err
	}
	if paused {
		return model.StatePaused, nil
	}
	return model.StatePlaying, nil
}

// SeekTo jumps to an absolute position in seconds.
func (p *MpvPlayer) SeekTo(seconds float64) error {
	_, err := p.roundTrip("seek", seconds, "absolute")
	return err
}

// Play resumes playback.
func (p *MpvPlayer) Play() error {
	return p.setProperty("pause", false)
}

// Pause pauses playback.
func (p *MpvPlayer) Pause() error {
	return p.setProperty("pause", true)
}

// Close asks mpv to quit and tears down the IPC connection.
func (p *MpvPlayer) Close() error {
	_, _ = p.roundTrip("quit")

	p.mu.Lock()
	conn := p.conn
	p.conn = nil
	p.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		// Best effort: mpv normally exits on quit; make sure it does.
		_ = p.cmd.Process.Kill()
	}
	return err
}

func (p *MpvPlayer) getFloat(name string) (float64, error) {
	data, err := p.roundTrip("get_property", name)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("mpv property %s: %w", name, err)
	}
	return v, nil
}

func (p *MpvPlayer) getBool(name string) (bool, error) {
	data, err := p.roundTrip("get_property", name)
	if err != nil {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, fmt.Errorf("mpv property %s: %w", name, err)
	}
	return v, nil
}

func (p *MpvPlayer) setProperty(name string, value any) error {
	_, err := p.roundTrip("set_property", name, value)
	return err
}

type mpvResponse struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int             `json:"request_id"`
	Event     string          `json:"event"`
}

// roundTrip sends one IPC command and waits for its reply, skipping the
// asynchronous events mpv interleaves on the same connection.
func (p *MpvPlayer) roundTrip(command ...any) (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil, errors.New("mpv connection closed")
	}

	p.nextID++
	id := p.nextID
	req := struct {
		Command   []any `json:"command"`
		RequestID int   `json:"request_id"`
	}{Command: command, RequestID: id}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	if err := p.conn.SetDeadline(time.Now().Add(ipcCallTimeout)); err != nil {
		return nil, err
	}
	if _, err := p.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("mpv write: %w", err)
	}

	for {
		line, err := p.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv read: %w", err)
		}
		var resp mpvResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.Event != "" || resp.RequestID != id {
			continue
		}
		if resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp.Data, nil
	}
}
