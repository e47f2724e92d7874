// Package ui draws the terminal progress screen of "luapretty fmt".
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"luapretty/internal/pipeline"
)

// fileState is where one file is in the run, as the screen shows it.
type fileState uint8

const (
	stateQueued fileState = iota
	stateReading
	stateFormatting
	stateWriting
	stateFormatted
	stateUnchanged
	stateCached
	stateFailed
	numStates
)

var stateLabels = [numStates]string{
	stateQueued:     "queued",
	stateReading:    "reading",
	stateFormatting: "formatting",
	stateWriting:    "writing",
	stateFormatted:  "formatted",
	stateUnchanged:  "unchanged",
	stateCached:     "cached",
	stateFailed:     "error",
}

// weight is the share of a file's work done on entering the state.
var stateWeights = [numStates]float64{
	stateReading:    0.1,
	stateFormatting: 0.3,
	stateWriting:    0.9,
	stateFormatted:  1,
	stateUnchanged:  1,
	stateCached:     1,
	stateFailed:     1,
}

func (s fileState) String() string { return stateLabels[s] }

func (s fileState) finished() bool { return s >= stateFormatted }

// boring states are dropped first when the list is too long.
func (s fileState) boring() bool { return s == stateUnchanged || s == stateCached }

func (s fileState) style() lipgloss.Style {
	st := lipgloss.NewStyle()
	switch s {
	case stateFormatted:
		return st.Foreground(lipgloss.Color("2"))
	case stateFailed:
		return st.Foreground(lipgloss.Color("1"))
	case stateReading, stateFormatting, stateWriting:
		return st.Foreground(lipgloss.Color("6"))
	}
	return st.Foreground(lipgloss.Color("7"))
}

// stateOf maps a driver event to a screen state; ok is false for events
// that change nothing.
func stateOf(ev pipeline.Event) (fileState, bool) {
	switch ev.Status {
	case pipeline.StatusQueued:
		return stateQueued, true
	case pipeline.StatusSkipped:
		return stateCached, true
	case pipeline.StatusError:
		return stateFailed, true
	case pipeline.StatusDone:
		if ev.Changed {
			return stateFormatted, true
		}
		return stateUnchanged, true
	case pipeline.StatusWorking:
		switch ev.Stage {
		case pipeline.StageRead:
			return stateReading, true
		case pipeline.StageFormat:
			return stateFormatting, true
		case pipeline.StageWrite:
			return stateWriting, true
		}
	}
	return 0, false
}

type fileItem struct {
	path    string
	state   fileState
	elapsed time.Duration
}

const (
	maxRows     = 20
	statusWidth = 12
)

type (
	eventMsg pipeline.Event
	doneMsg  struct{}
)

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	index   map[string]int
	counts  [numStates]int
	width   int
	done    bool
}

// NewProgressModel returns a Bubble Tea model that renders the progress of
// formatting files. Files not listed up front are added as their first event
// arrives. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		m.item(file)
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(pipeline.Event(msg)), m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
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

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	rows, hidden := m.visibleItems()
	for _, item := range rows {
		status := item.state.style().Render(fmt.Sprintf("%*s", statusWidth, item.state))
		name := truncate(item.path, nameWidth)
		if item.state.finished() && item.elapsed > 0 {
			name += fmt.Sprintf(" (%s)", item.elapsed.Round(time.Millisecond))
		}
		fmt.Fprintf(&b, "  %s %s\n", status, name)
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more\n", statusWidth, "", hidden)
	}
	fmt.Fprintf(&b, "\n  %d formatted, %d unchanged, %d cached, %d errors\n\n",
		m.counts[stateFormatted], m.counts[stateUnchanged], m.counts[stateCached], m.counts[stateFailed])
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleItems keeps the list short on large runs: files that finished
// without a change are dropped first.
func (m *progressModel) visibleItems() ([]fileItem, int) {
	if len(m.items) <= maxRows {
		return m.items, 0
	}
	rows := make([]fileItem, 0, maxRows)
	for _, item := range m.items {
		if item.state.boring() {
			continue
		}
		if len(rows) == maxRows {
			break
		}
		rows = append(rows, item)
	}
	return rows, len(m.items) - len(rows)
}

func (m *progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// item returns the index of path, adding it when unseen.
func (m *progressModel) item(path string) int {
	if i, ok := m.index[path]; ok {
		return i
	}
	m.items = append(m.items, fileItem{path: path})
	m.index[path] = len(m.items) - 1
	m.counts[stateQueued]++
	return len(m.items) - 1
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	state, ok := stateOf(ev)
	if ev.File == "" || !ok {
		return nil
	}
	it := &m.items[m.item(ev.File)]
	m.counts[it.state]--
	m.counts[state]++
	it.state = state
	it.elapsed = ev.Elapsed
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for s, n := range m.counts {
		total += stateWeights[s] * float64(n)
	}
	return total / float64(len(m.items))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
