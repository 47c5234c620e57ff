package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/relay"
	"github.com/verte-zerg/cleantube/internal/state"
	"github.com/verte-zerg/cleantube/internal/stats"
	"github.com/verte-zerg/cleantube/internal/tracker"
	"github.com/verte-zerg/cleantube/internal/youtube"
)

const (
	pollInterval   = time.Second
	noticeDuration = 4 * time.Second
	seekStep       = 10.0
)

type focusArea int

const (
	focusList focusArea = iota
	focusURL
	focusRename
	focusTimeline
	focusNotes
	focusConfirm
)

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmClear
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	panelStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

type tickMsg time.Time

type playerInfoMsg relay.PlayerInfo

// Model implements the Bubble Tea watch UI.
type Model struct {
	store   *state.Store
	tracker *tracker.Tracker
	relay   *relay.Relay
	log     *slog.Logger

	autoplay bool
	now      func() time.Time

	activeType model.ItemType
	cursors    map[model.ItemType]int
	focus      focusArea

	urlInput      textinput.Model
	renameInput   textinput.Model
	timelineInput textinput.Model
	notes         textarea.Model
	notesKey      string

	confirm     confirmKind
	confirmItem model.Item

	// Last telemetry snapshot, for display only. Durable progress lives
	// in the store via the tracker.
	lastTime     float64
	lastDuration float64
	lastState    model.PlayerState

	notice      string
	noticeUntil time.Time
	storageFull bool

	width  int
	height int
}

// NewModel constructs the watch TUI around an opened store and a started
// relay.
func NewModel(st *state.Store, tr *tracker.Tracker, rl *relay.Relay, log *slog.Logger, autoplay bool) *Model {
	m := &Model{
		store:      st,
		tracker:    tr,
		relay:      rl,
		log:        log,
		autoplay:   autoplay,
		now:        time.Now,
		activeType: model.TypeVideo,
		cursors:    map[model.ItemType]int{},
		lastState:  model.StateUnstarted,
	}
	m.urlInput = newInput("Add: ", "youtube link, video ID or playlist link")
	m.renameInput = newInput("Title: ", "")
	m.timelineInput = newInput("Note: ", "pinned at the current position")
	m.notes = textarea.New()
	m.notes.Placeholder = "Notes for this item..."
	m.notes.ShowLineNumbers = false
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.listenInfo())
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenInfo waits for the next telemetry message from the relay and
// feeds it into the update loop.
func (m *Model) listenInfo() tea.Cmd {
	ch := m.relay.Info()
	return func() tea.Msg {
		info, ok := <-ch
		if !ok {
			return nil
		}
		return playerInfoMsg(info)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tickMsg:
		if m.notice != "" && m.now().After(m.noticeUntil) {
			m.notice = ""
		}
		if m.tracker.Target() != nil {
			m.relay.Post(relay.NewCommand(relay.CmdGetCurrentTime))
			m.relay.Post(relay.NewCommand(relay.CmdGetDuration))
		}
		return m, tickCmd()
	case playerInfoMsg:
		m.handlePlayerInfo(relay.PlayerInfo(msg))
		return m, m.listenInfo()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handlePlayerInfo(info relay.PlayerInfo) {
	if !relay.ValidInfo(info) {
		m.log.Debug("dropped telemetry with bad tags", "source", info.Source, "type", info.Type)
		return
	}
	if info.CurrentTime != nil {
		m.lastTime = *info.CurrentTime
	}
	if info.Duration != nil {
		m.lastDuration = *info.Duration
	}
	if info.PlayerState != nil {
		m.lastState = *info.PlayerState
	}
	m.noteSaveResult(m.tracker.Observe(info.Sample()))
}

// noteSaveResult folds a save outcome into the UI. A full disk keeps a
// sticky warning up until some later save succeeds.
func (m *Model) noteSaveResult(err error) {
	if err == nil {
		m.storageFull = false
		return
	}
	if errors.Is(err, state.ErrStorageFull) {
		m.storageFull = true
		return
	}
	m.log.Warn("state save failed", "error", err)
	m.setNotice("Failed to save state")
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = m.now().Add(noticeDuration)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch m.focus {
	case focusURL:
		return m.updateURLInput(msg)
	case focusRename:
		return m.updateRenameInput(msg)
	case focusTimeline:
		return m.updateTimelineInput(msg)
	case focusNotes:
		return m.updateNotes(msg)
	case focusConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.noteSaveResult(m.store.Save())
	return m, tea.Quit
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "tab":
		if m.activeType == model.TypeVideo {
			m.activeType = model.TypePlaylist
		} else {
			m.activeType = model.TypeVideo
		}
		m.clampCursor()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "K":
		m.moveItem(-1)
		return m, nil
	case "J":
		m.moveItem(1)
		return m, nil
	case "enter":
		m.playSelected()
		return m, nil
	case "a":
		m.focus = focusURL
		m.urlInput.SetValue("")
		return m, m.urlInput.Focus()
	case "e":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.focus = focusRename
		m.renameInput.SetValue(item.Title)
		return m, m.renameInput.Focus()
	case "n":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.focus = focusNotes
		m.notesKey = item.Key()
		m.notes.SetValue(m.store.Note(m.notesKey))
		return m, m.notes.Focus()
	case "t":
		if m.tracker.Target() == nil {
			m.setNotice("Nothing is playing")
			return m, nil
		}
		m.focus = focusTimeline
		m.timelineInput.SetValue("")
		return m, m.timelineInput.Focus()
	case "d":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.focus = focusConfirm
		m.confirm = confirmDelete
		m.confirmItem = item
		return m, nil
	case "C":
		if len(m.store.Items(m.activeType)) == 0 {
			return m, nil
		}
		m.focus = focusConfirm
		m.confirm = confirmClear
		return m, nil
	case " ":
		m.togglePlayback()
		return m, nil
	case "[":
		m.seekBy(-seekStep)
		return m, nil
	case "]":
		m.seekBy(seekStep)
		return m, nil
	case "s":
		if m.tracker.Target() == nil {
			return m, nil
		}
		m.relay.Post(relay.NewCommand(relay.CmdPauseVideo))
		m.tracker.Stop()
		m.noteSaveResult(m.store.Save())
		m.lastState = model.StateUnstarted
		return m, nil
	}
	return m, nil
}

func (m *Model) updateURLInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = focusList
		m.urlInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.addFromInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *Model) addFromInput() {
	raw := strings.TrimSpace(m.urlInput.Value())
	if raw == "" {
		m.focus = focusList
		m.urlInput.Blur()
		return
	}
	parsed := youtube.ParseInput(raw)
	if parsed == nil {
		m.setNotice("Not a YouTube link, video ID or playlist link")
		return
	}
	item, added := m.store.AddItem(parsed.Item())
	m.focus = focusList
	m.urlInput.Blur()
	if !added {
		m.setNotice("Already in the list")
	} else {
		m.setNotice("Added " + displayTitle(item))
		m.noteSaveResult(m.store.Save())
	}
	m.activeType = item.Type
	m.cursorTo(item)
}

func (m *Model) updateRenameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = focusList
		m.renameInput.Blur()
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.renameInput.Value())
		m.focus = focusList
		m.renameInput.Blur()
		item, ok := m.selectedItem()
		if !ok || title == "" {
			return m, nil
		}
		if m.store.RenameItem(item.Type, item.ID, title) {
			m.noteSaveResult(m.store.Save())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateTimelineInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = focusList
		m.timelineInput.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.timelineInput.Value())
		m.focus = focusList
		m.timelineInput.Blur()
		target := m.tracker.Target()
		if text == "" || target == nil {
			return m, nil
		}
		key := model.ItemKey(target.Type, target.ID)
		m.store.AddTimelineNote(key, model.TimelineNote{
			Seconds:   m.lastTime,
			Text:      text,
			CreatedAt: m.now(),
		})
		m.noteSaveResult(m.store.Save())
		m.setNotice("Note pinned at " + stats.FormatSeconds(m.lastTime))
		return m, nil
	}
	var cmd tea.Cmd
	m.timelineInput, cmd = m.timelineInput.Update(msg)
	return m, cmd
}

func (m *Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.focus = focusList
		m.notes.Blur()
		m.store.SetNote(m.notesKey, m.notes.Value())
		m.noteSaveResult(m.store.Save())
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	// Every edit lands in the store right away; disk writes stay
	// throttled so typing does not hammer the filesystem.
	m.store.SetNote(m.notesKey, m.notes.Value())
	m.noteSaveResult(m.store.SaveThrottled())
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.applyConfirm()
		m.focus = focusList
		return m, nil
	case "n", "esc":
		m.focus = focusList
		return m, nil
	}
	return m, nil
}

func (m *Model) applyConfirm() {
	switch m.confirm {
	case confirmDelete:
		item := m.confirmItem
		if !m.store.DeleteItem(item.Type, item.ID) {
			return
		}
		if t := m.tracker.Target(); t != nil && t.Type == item.Type && t.ID == item.ID {
			m.relay.Post(relay.NewCommand(relay.CmdPauseVideo))
			m.tracker.Stop()
		}
		m.clampCursor()
		m.noteSaveResult(m.store.Save())
		m.setNotice("Deleted " + displayTitle(item))
	case confirmClear:
		n := m.store.ClearItems(m.activeType)
		if t := m.tracker.Target(); t != nil && t.Type == m.activeType {
			m.relay.Post(relay.NewCommand(relay.CmdPauseVideo))
			m.tracker.Stop()
		}
		m.cursors[m.activeType] = 0
		m.noteSaveResult(m.store.Save())
		m.setNotice(fmt.Sprintf("Removed %d items", n))
	}
}

func (m *Model) playSelected() {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	resume, err := m.tracker.Start(item)
	m.noteSaveResult(err)
	if err := m.relay.Load(relay.LoadParams{URL: item.URL, Autoplay: m.autoplay, StartAt: resume}); err != nil {
		m.log.Warn("player load failed", "url", item.URL, "error", err)
		m.setNotice("Failed to start playback")
		m.tracker.Stop()
		return
	}
	m.lastTime = resume
	m.lastState = model.StateUnstarted
	if rec, ok := m.store.Progress(item.Key()); ok {
		m.lastDuration = rec.Duration
	} else {
		m.lastDuration = 0
	}
	if resume > 0 {
		m.setNotice("Resumed from " + stats.FormatSeconds(resume))
	} else {
		m.setNotice("Playing " + displayTitle(item))
	}
}

func (m *Model) togglePlayback() {
	if m.tracker.Target() == nil {
		return
	}
	if m.lastState == model.StatePlaying || m.lastState == model.StateBuffering {
		m.relay.Post(relay.NewCommand(relay.CmdPauseVideo))
	} else {
		m.relay.Post(relay.NewCommand(relay.CmdPlayVideo))
	}
}

func (m *Model) seekBy(delta float64) {
	if m.tracker.Target() == nil {
		return
	}
	pos := m.lastTime + delta
	if pos < 0 {
		pos = 0
	}
	m.relay.Post(relay.SeekCommand(pos))
}

func (m *Model) selectedItem() (model.Item, bool) {
	items := m.store.Items(m.activeType)
	idx := m.cursors[m.activeType]
	if idx < 0 || idx >= len(items) {
		return model.Item{}, false
	}
	return items[idx], true
}

func (m *Model) moveCursor(delta int) {
	items := m.store.Items(m.activeType)
	if len(items) == 0 {
		return
	}
	idx := m.cursors[m.activeType] + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(items) {
		idx = len(items) - 1
	}
	m.cursors[m.activeType] = idx
}

func (m *Model) moveItem(delta int) {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	if m.store.MoveItem(item.Type, item.ID, delta) {
		m.cursors[m.activeType] += delta
		m.clampCursor()
		m.noteSaveResult(m.store.Save())
	}
}

func (m *Model) clampCursor() {
	items := m.store.Items(m.activeType)
	idx := m.cursors[m.activeType]
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.cursors[m.activeType] = idx
}

func (m *Model) cursorTo(item model.Item) {
	for i, it := range m.store.Items(item.Type) {
		if it.ID == item.ID {
			m.cursors[item.Type] = i
			return
		}
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 {
		return
	}
	for _, input := range []*textinput.Model{&m.urlInput, &m.renameInput, &m.timelineInput} {
		promptWidth := lipgloss.Width(input.Prompt)
		input.Width = maxInt(10, m.width-promptWidth-2)
	}
	m.notes.SetWidth(maxInt(20, m.sideWidth()-4))
	m.notes.SetHeight(maxInt(3, m.bodyHeight()-8))
}

func (m *Model) sideWidth() int {
	return m.width - m.listWidth()
}

func (m *Model) listWidth() int {
	w := m.width * 45 / 100
	if w < 24 {
		w = 24
	}
	return w
}

func (m *Model) bodyHeight() int {
	h := m.height - 3 - m.footerHeight()
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) footerHeight() int {
	h := 1
	if m.inputFocused() {
		h++
	}
	if m.notice != "" || m.storageFull {
		h++
	}
	return h
}

func (m *Model) inputFocused() bool {
	return m.focus == focusURL || m.focus == focusRename || m.focus == focusTimeline
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(),
		m.renderSidePanel(),
	)
	sections := []string{header, body}
	if m.inputFocused() {
		sections = append(sections, m.renderInputLine())
	}
	if line := m.renderNoticeLine(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) renderTabs() string {
	videos := fmt.Sprintf("Videos (%d)", len(m.store.Items(model.TypeVideo)))
	playlists := fmt.Sprintf("Playlists (%d)", len(m.store.Items(model.TypePlaylist)))
	var parts []string
	if m.activeType == model.TypeVideo {
		parts = []string{activeTabStyle.Render(videos), inactiveTabStyle.Render(playlists)}
	} else {
		parts = []string{inactiveTabStyle.Render(videos), activeTabStyle.Render(playlists)}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderList() string {
	items := m.store.Items(m.activeType)
	width := m.listWidth()
	height := m.bodyHeight()
	if len(items) == 0 {
		empty := mutedStyle.Render("Empty. Press 'a' to add.")
		return lipgloss.NewStyle().Width(width).Height(height).Render(empty)
	}

	selected := m.cursors[m.activeType]
	top := 0
	if selected >= height {
		top = selected - height + 1
	}
	target := m.tracker.Target()

	lines := make([]string, 0, height)
	for i := top; i < len(items) && len(lines) < height; i++ {
		it := items[i]
		marker := "  "
		if target != nil && target.Type == it.Type && target.ID == it.ID {
			marker = "▶ "
		}
		pct := "    "
		if rec, ok := m.store.Progress(it.Key()); ok && rec.Percent > 0 {
			pct = fmt.Sprintf("%3d%%", rec.Percent)
		}
		title := truncateText(displayTitle(it), width-8)
		line := fmt.Sprintf("%s%s %s", marker, pct, title)
		if i == selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = itemStyle.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSidePanel() string {
	width := m.sideWidth()
	height := m.bodyHeight()
	inner := maxInt(10, width-4)

	item, ok := m.selectedItem()
	if !ok {
		return panelStyle.Width(width - 2).Height(height - 2).Render("")
	}

	var b strings.Builder
	b.WriteString(selectedStyle.Render(truncateText(displayTitle(item), inner)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(truncateText(item.URL, inner)))
	b.WriteString("\n\n")

	if rec, hasRec := m.store.Progress(item.Key()); hasRec {
		b.WriteString(fmt.Sprintf("Watched %s", stats.FormatSeconds(rec.WatchedSeconds)))
		if rec.Percent > 0 {
			b.WriteString(fmt.Sprintf("  ·  %d%%", rec.Percent))
		}
		if rec.LastTime > 0 {
			b.WriteString(fmt.Sprintf("  ·  at %s", stats.FormatSeconds(rec.LastTime)))
		}
		b.WriteString("\n\n")
	}

	if m.focus == focusNotes {
		b.WriteString(m.notes.View())
	} else {
		if note := m.store.Note(item.Key()); note != "" {
			b.WriteString(wrapText(note, inner))
			b.WriteString("\n")
		}
		for _, tn := range m.store.TimelineNotes(item.Key()) {
			line := fmt.Sprintf("%s  %s", stats.FormatSeconds(tn.Seconds), tn.Text)
			b.WriteString(mutedStyle.Render(truncateText(line, inner)))
			b.WriteString("\n")
		}
	}
	return panelStyle.Width(width - 2).Height(height - 2).Render(b.String())
}

func (m *Model) renderInputLine() string {
	switch m.focus {
	case focusURL:
		return m.urlInput.View()
	case focusRename:
		return m.renameInput.View()
	case focusTimeline:
		return m.timelineInput.View()
	}
	return ""
}

func (m *Model) renderNoticeLine() string {
	if m.storageFull {
		return warnStyle.Render("Storage full: changes are not being saved")
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}
	return ""
}

func (m *Model) renderFooter() string {
	if m.focus == focusConfirm {
		prompt := "Delete " + displayTitle(m.confirmItem) + "?"
		if m.confirm == confirmClear {
			prompt = fmt.Sprintf("Clear all %ss?", m.activeType)
		}
		return warnStyle.Render(prompt + "  y/n")
	}
	if m.focus == focusNotes {
		return footerStyle.Render("esc: save notes and close")
	}
	if m.inputFocused() {
		return footerStyle.Render("enter: apply  esc: cancel")
	}
	status := m.renderStatus()
	help := "enter: play  space: pause  [/]: seek  a: add  n: notes  t: pin note  e: rename  d: delete  q: quit"
	if status == "" {
		return footerStyle.Render(help)
	}
	return status + footerStyle.Render("  ·  "+help)
}

// renderStatus describes the active playback target, or nothing when
// idle.
func (m *Model) renderStatus() string {
	target := m.tracker.Target()
	if target == nil {
		return ""
	}
	title := model.ItemKey(target.Type, target.ID)
	if item, ok := m.store.FindItem(target.Type, target.ID); ok {
		title = displayTitle(item)
	}
	pos := stats.FormatSeconds(m.lastTime)
	if m.lastDuration > 0 {
		pos += " / " + stats.FormatSeconds(m.lastDuration)
	}
	return noticeStyle.Render(fmt.Sprintf("%s %s  %s", stateLabel(m.lastState), truncateText(title, 40), pos))
}

func stateLabel(st model.PlayerState) string {
	switch st {
	case model.StatePlaying:
		return "Playing"
	case model.StatePaused:
		return "Paused"
	case model.StateBuffering:
		return "Buffering"
	case model.StateEnded:
		return "Ended"
	case model.StateCued:
		return "Cued"
	default:
		return "Idle"
	}
}

func displayTitle(item model.Item) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
