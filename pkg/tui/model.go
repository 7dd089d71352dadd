package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
)

const (
	defaultWidth = 80
	logHeight    = 10
	headerLines  = 5 // title, status, bar, counts, пустая строка
	minLogHeight = 3
	panelChrome  = 4 // рамка и отступы панели
)

// Option настраивает Model.
type Option func(*Model)

// WithTitle задаёт заголовок экрана.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithColorScheme задаёт цветовую схему по имени (см. ColorSchemes).
func WithColorScheme(name string) Option {
	return func(m *Model) { m.styles = newStyles(GetColorScheme(name)) }
}

// WithOnQuit задаёт callback, вызываемый при выходе по клавише.
// Обычно это cancel контекста запуска.
func WithOnQuit(fn func()) Option {
	return func(m *Model) { m.onQuit = fn }
}

// Model - прогресс-экран пакетной обработки.
//
// Состояние меняется только из Update, поэтому mutex не нужен:
// события приходят через EventMsg.
type Model struct {
	sub    events.Subscriber
	onQuit func()

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model
	log     viewport.Model
	styles  styles

	title    string
	width    int
	showHelp bool

	total        int
	selected     int
	batch        int
	totalBatches int
	processed    int
	percent      float64 // 0..1
	status       string
	lines        []string // лог без переноса, перенос при каждом resize
	warnings     int

	done     *events.DoneData
	err      error
	finished bool
}

var _ tea.Model = (*Model)(nil)

// NewModel создаёт модель, читающую события из sub.
func NewModel(sub events.Subscriber, opts ...Option) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		sub:     sub,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
		log:     viewport.New(defaultWidth, logHeight),
		styles:  newStyles(DefaultColorScheme()),
		title:   "Xylvir icon pipeline",
		width:   defaultWidth,
		status:  "Waiting for run",
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resize(defaultWidth, headerLines+logHeight+panelChrome)
	return m
}

// Init запускает спиннер и чтение событий.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, ReceiveEventCmd(m.sub))
}

// Update реализует tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.ScrollUp):
			m.log.LineUp(1)
		case key.Matches(msg, m.keys.ScrollDown):
			m.log.LineDown(1)
		case key.Matches(msg, m.keys.ToggleHelp):
			m.showHelp = !m.showHelp
		}
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.handleEvent(events.Event(msg))
		return m, ReceiveEventCmd(m.sub)

	case closedMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleEvent(e events.Event) {
	line := FormatEvent(e)

	switch data := e.Data.(type) {
	case events.RunStartedData:
		m.total, m.selected, m.totalBatches = data.Total, data.Selected, data.TotalBatches
		m.status = "Starting"
		m.appendLine(m.styles.info.Render(line))

	case events.BatchData:
		m.batch, m.totalBatches = data.Batch, data.TotalBatches
		if e.Type == events.EventBatchStarted {
			m.status = fmt.Sprintf("Batch %d/%d · %d icons", data.Batch, data.TotalBatches, data.Size)
			return
		}
		m.processed = data.Processed
		m.percent = data.Progress / 100
		m.appendLine(m.styles.info.Render(line))

	case events.DelayData:
		m.status = line

	case events.WarningData:
		m.warnings++
		m.appendLine(m.styles.warning.Render("⚠ " + line))

	case events.ErrorData:
		m.err = data.Err
		m.status = "Failed"
		m.appendLine(m.styles.err.Render(line))

	case events.DoneData:
		m.done = &data
		m.percent = 1
		m.status = "Done"
		m.appendLine(m.styles.success.Render(line))
	}
}

func (m *Model) appendLine(s string) {
	m.lines = append(m.lines, s)
	m.refreshLog()
}

// refreshLog переносит строки под текущую ширину панели.
// wordwrap режет по словам, wrap добивает длинные пути без пробелов.
func (m *Model) refreshLog() {
	w := m.log.Width
	if w <= 0 {
		w = defaultWidth
	}
	wrapped := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		wrapped = append(wrapped, wrap.String(wordwrap.String(line, w), w))
	}
	m.log.SetContent(strings.Join(wrapped, "\n"))
	m.log.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.bar.Width = max(width-20, 10)
	m.help.Width = width

	m.log.Width = max(width-panelChrome, 10)
	m.log.Height = max(height-headerLines-panelChrome, minLogHeight)
	m.refreshLog()
}

// View реализует tea.Model.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.styles.title.Render(m.title))

	statusLine := m.status
	if !m.finished && m.done == nil && m.err == nil {
		statusLine = m.spinner.View() + " " + statusLine
	}
	sections = append(sections, m.styles.status.Render(statusLine))

	sections = append(sections, m.bar.ViewAs(m.percent))

	counts := fmt.Sprintf("%d/%d icons · batch %d/%d", m.processed, m.selected, m.batch, m.totalBatches)
	if m.warnings > 0 {
		counts += m.styles.warning.Render(fmt.Sprintf(" · %d warnings", m.warnings))
	}
	sections = append(sections, m.styles.info.Render(counts), "")

	sections = append(sections, m.styles.panel.Render(m.log.View()))

	m.help.ShowAll = m.showHelp
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Err возвращает ошибку запуска, если пришло событие error.
func (m *Model) Err() error {
	return m.err
}
