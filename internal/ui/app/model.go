package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chartdto "topicmap/internal/modules/chart/dto"
	datasetdto "topicmap/internal/modules/dataset/dto"
	"topicmap/internal/ui/components"
	"topicmap/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type datasetPort interface {
	Inspect(ctx context.Context, source, model string) (datasetdto.SummaryOutput, error)
}

type chartPort interface {
	Palette(ctx context.Context, topics chartdto.TopicsInput) ([]chartdto.TopicColor, error)
	Render(ctx context.Context, input chartdto.RenderInput) (chartdto.RenderOutput, error)
}

// Params selects the dataset the browser shows and where r renders it.
type Params struct {
	Source string
	Model  string
	Topics chartdto.TopicsInput
	Format string
	Output string
}

// ─── async messages ───────────────────────────────────────────────────────────

type summaryLoadedMsg struct {
	summary datasetdto.SummaryOutput
	err     error
}

type paletteLoadedMsg struct {
	colors []chartdto.TopicColor
	err    error
}

type renderedMsg struct {
	out chartdto.RenderOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Render key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Render: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "render")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Render, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Render, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model browses the dropdown buttons of a chart before it is rendered: the
// left pane lists the buttons, the right pane the topic counts of the
// selected one.
type Model struct {
	dataset datasetPort
	chart   chartPort
	params  Params

	summary datasetdto.SummaryOutput
	colors  []chartdto.TopicColor
	buttons []string
	cursor  int

	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	pending   int
	rendering bool
	status    string
	width     int
	height    int
}

func NewModel(dataset datasetPort, chart chartPort, params Params) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		dataset: dataset,
		chart:   chart,
		params:  params,
		buttons: []string{allLabel},
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		pending: 2,
		status:  "loading " + params.Source,
	}
}

const allLabel = "All"

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSummaryCmd(), m.loadPaletteCmd(), m.spinner.Tick)
}

// Selected is the label of the highlighted button.
func (m Model) Selected() string {
	return m.buttons[m.cursor]
}

func (m Model) Status() string {
	return m.status
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case summaryLoadedMsg:
		m.pending--
		if msg.err != nil {
			m.status = "load dataset: " + msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		m.buttons = append([]string{allLabel}, categoryNames(msg.summary)...)
		m.cursor = min(m.cursor, len(m.buttons)-1)
		m.status = fmt.Sprintf("%d points in %d categories", msg.summary.Points, len(msg.summary.Categories))

	case paletteLoadedMsg:
		m.pending--
		if msg.err != nil {
			m.status = "palette: " + msg.err.Error()
			return m, nil
		}
		m.colors = msg.colors

	case renderedMsg:
		m.rendering = false
		if msg.err != nil {
			m.status = "render failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("rendered %s (%d layers, %d points)", msg.out.Path, msg.out.Layers, msg.out.Points)
		if msg.out.PublishedURL != "" {
			m.status += " → " + msg.out.PublishedURL
		}

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.buttons)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Render):
			if m.rendering {
				return m, nil
			}
			m.rendering = true
			m.status = "rendering " + m.params.Output
			return m, tea.Batch(m.renderCmd(), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m Model) busy() bool {
	return m.pending > 0 || m.rendering
}

// ─── commands ─────────────────────────────────────────────────────────────────

func (m Model) loadSummaryCmd() tea.Cmd {
	dataset, params := m.dataset, m.params
	return func() tea.Msg {
		summary, err := dataset.Inspect(context.Background(), params.Source, params.Model)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m Model) loadPaletteCmd() tea.Cmd {
	chart, topics := m.chart, m.params.Topics
	return func() tea.Msg {
		colors, err := chart.Palette(context.Background(), topics)
		return paletteLoadedMsg{colors: colors, err: err}
	}
}

func (m Model) renderCmd() tea.Cmd {
	chart, params := m.chart, m.params
	return func() tea.Msg {
		out, err := chart.Render(context.Background(), chartdto.RenderInput{
			Source: params.Source,
			Model:  params.Model,
			Topics: params.Topics,
			Format: params.Format,
			Output: params.Output,
		})
		return renderedMsg{out: out, err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := theme.Title.Render("topicmap") + "  " + theme.Muted.Render(m.params.Source)
	if m.params.Model != "" {
		header += theme.Muted.Render(" · " + m.params.Model)
	}

	left := theme.PaneActive.Render(m.renderButtons())
	right := theme.Pane.Render(m.renderTopics())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	status := m.status
	if m.busy() {
		status = m.spinner.View() + " " + status
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		status,
		m.help.View(m.keys),
	))
}

func (m Model) renderButtons() string {
	lines := make([]string, 0, len(m.buttons)+1)
	lines = append(lines, theme.Title.Render("Buttons"))
	for i, label := range m.buttons {
		if i == m.cursor {
			lines = append(lines, theme.Selected.Render("▸ "+label))
			continue
		}
		lines = append(lines, "  "+label)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTopics() string {
	title := theme.Title.Render("Topics in " + m.Selected())
	if len(m.colors) == 0 {
		return title + "\n" + theme.Muted.Render("no palette")
	}
	counts := m.topicCounts()
	rows := make([]components.PaletteRow, 0, len(m.colors))
	known := make(map[int]struct{}, len(m.colors))
	for _, c := range m.colors {
		known[c.Code] = struct{}{}
		rows = append(rows, components.PaletteRow{Topic: c, Count: counts[c.Code]})
	}
	out := title + "\n" + components.RenderPalette(rows, true)
	for _, code := range m.summary.TopicCodes {
		if _, ok := known[code]; !ok && counts[code] > 0 {
			out += "\n" + theme.Failure.Render(fmt.Sprintf("topic_%d has no color (%d points)", code, counts[code]))
		}
	}
	return out
}

// topicCounts counts points per topic code for the selected button.
func (m Model) topicCounts() map[int]int {
	counts := make(map[int]int)
	for i, category := range m.summary.Categories {
		if m.cursor != 0 && m.cursor != i+1 {
			continue
		}
		for _, t := range category.Topics {
			counts[t.Code] += t.Count
		}
	}
	return counts
}

func categoryNames(summary datasetdto.SummaryOutput) []string {
	out := make([]string, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		out = append(out, c.Name)
	}
	return out
}
