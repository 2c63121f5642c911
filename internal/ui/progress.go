package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"moveide/internal/driver"
)

// доля работы, которую считаем сделанной, пока фикстура на этой стадии
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:   0.1,
	driver.StageReplay: 0.4,
	driver.StageRender: 0.8,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:   "loading",
	driver.StageReplay: "replaying",
	driver.StageRender: "rendering",
}

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleBusy   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

const labelWidth = 10

type fixtureRow struct {
	path   string
	stage  driver.Stage
	status driver.Status
	err    error
}

func (r fixtureRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusCached || r.status == driver.StatusError
}

func (r fixtureRow) label() string {
	if r.status == driver.StatusWorking {
		if verb, ok := stageVerb[r.stage]; ok {
			return verb
		}
	}
	return string(r.status)
}

func (r fixtureRow) style() lipgloss.Style {
	switch r.status {
	case driver.StatusDone, driver.StatusCached:
		return styleOK
	case driver.StatusError:
		return styleFailed
	case driver.StatusWorking:
		return styleBusy
	}
	return styleIdle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fixtureRow
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel shows one row per fixture and a completion bar
// until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleBusy))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fixtureRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = fixtureRow{path: file, status: driver.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
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
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	if m.done {
		b.WriteString(styleTitle.Render("done: " + m.title))
	} else {
		b.WriteString(styleTitle.Render(m.spinner.View() + " " + m.title))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-labelWidth-4, 20)
	for _, row := range m.rows {
		label := row.style().Render(fmt.Sprintf("%*s", labelWidth, row.label()))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(row.path, nameWidth))
		if row.err != nil {
			fmt.Fprintf(&b, "  %*s %s\n", labelWidth, "", styleFailed.Render(truncate(row.err.Error(), nameWidth)))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// summary: "2/3 fixtures, 1 cached, 0 failed".
func (m *progressModel) summary() string {
	var finished, cached, failed int
	for _, row := range m.rows {
		if row.finished() {
			finished++
		}
		switch row.status {
		case driver.StatusCached:
			cached++
		case driver.StatusError:
			failed++
		}
	}
	return fmt.Sprintf("%d/%d fixtures, %d cached, %d failed", finished, len(m.rows), cached, failed)
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.stage, row.status = ev.Stage, ev.Status
	if ev.Err != nil {
		row.err = ev.Err
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction считает завершённые фикстуры целиком, остальные по весу стадии.
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.rows {
		if row.finished() {
			sum++
			continue
		}
		if row.status == driver.StatusWorking {
			sum += stageWeight[row.stage]
		}
	}
	return sum / float64(len(m.rows))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
