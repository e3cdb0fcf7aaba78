package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"akuru/internal/driver"
)

// rowState is the display state of one file.
type rowState uint8

const (
	rowQueued rowState = iota
	rowLoading
	rowLexing
	rowDone
	rowCached
	rowFailed
)

var rowLabels = [...]string{
	rowQueued:  "queued",
	rowLoading: "loading",
	rowLexing:  "lexing",
	rowDone:    "done",
	rowCached:  "cached",
	rowFailed:  "error",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	rowStyles  = [...]lipgloss.Style{
		rowQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		rowLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		rowLexing:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		rowDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func (s rowState) String() string { return rowLabels[s] }

func (s rowState) final() bool { return s >= rowDone }

// stateOf maps a driver event onto a row state.
func stateOf(ev driver.Event) rowState {
	switch ev.Status {
	case driver.StatusError:
		return rowFailed
	case driver.StatusDone:
		if ev.Stage == driver.StageCache {
			return rowCached
		}
		return rowDone
	case driver.StatusWorking:
		if ev.Stage == driver.StageLoad {
			return rowLoading
		}
		return rowLexing
	default:
		return rowQueued
	}
}

type fileRow struct {
	path    string
	state   rowState
	elapsed time.Duration
}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	bar      progress.Model
	rows     []fileRow
	index    map[string]int
	finished int
	failed   int
	width    int
	done     bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model listing the files of a
// directory run with their lexing state. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:  title,
		events: events,
		bar:    progress.New(progress.WithDefaultGradient()),
		rows:   make([]fileRow, len(files)),
		index:  make(map[string]int, len(files)),
		width:  80,
	}
	m.bar.Width = m.width - 4
	for i, f := range files {
		m.rows[i] = fileRow{path: f}
		m.index[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return m.next()
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	if row.state.final() {
		return nil
	}
	row.state = stateOf(ev)
	if !row.state.final() {
		return nil
	}
	row.elapsed = ev.Elapsed
	m.finished++
	if row.state == rowFailed {
		m.failed++
	}
	return m.bar.SetPercent(float64(m.finished) / float64(len(m.rows)))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s  %d/%d", m.title, m.finished, len(m.rows))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d with errors", m.failed)
	}
	if m.done {
		header = "done: " + header
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	for _, r := range m.rows {
		status := rowStyles[r.state].Render(fmt.Sprintf("%8s", r.state))
		fmt.Fprintf(&b, "  %s %s", status, truncate(r.path, nameWidth))
		if r.state.final() && r.elapsed > 0 {
			fmt.Fprintf(&b, " (%s)", r.elapsed.Round(time.Microsecond))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
