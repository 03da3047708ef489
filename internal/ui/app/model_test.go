package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chartdto "topicmap/internal/modules/chart/dto"
	datasetdto "topicmap/internal/modules/dataset/dto"
	"topicmap/internal/ui/app"
)

type fakeDataset struct {
	summary datasetdto.SummaryOutput
	err     error
}

func (f fakeDataset) Inspect(_ context.Context, _, _ string) (datasetdto.SummaryOutput, error) {
	return f.summary, f.err
}

type fakeChart struct {
	renders []chartdto.RenderInput
	err     error
}

func (f *fakeChart) Palette(_ context.Context, _ chartdto.TopicsInput) ([]chartdto.TopicColor, error) {
	return []chartdto.TopicColor{
		{Code: 0, Tick: "topic_0", Color: "#db5f57"},
		{Code: 1, Tick: "topic_1", Color: "#57d3db"},
	}, nil
}

func (f *fakeChart) Render(_ context.Context, input chartdto.RenderInput) (chartdto.RenderOutput, error) {
	f.renders = append(f.renders, input)
	if f.err != nil {
		return chartdto.RenderOutput{}, f.err
	}
	return chartdto.RenderOutput{Path: input.Output, Layers: 3, Points: 4}, nil
}

func summary() datasetdto.SummaryOutput {
	return datasetdto.SummaryOutput{
		Points:     4,
		TopicCodes: []int{0, 1},
		Categories: []datasetdto.CategorySummary{
			{Name: "Austin", Points: 3, Topics: []datasetdto.TopicCount{{Code: 0, Count: 2}, {Code: 1, Count: 1}}},
			{Name: "Boston", Points: 1, Topics: []datasetdto.TopicCount{{Code: 1, Count: 1}}},
		},
	}
}

// run executes cmd and feeds the resulting messages back into the model.
// Spinner ticks are dropped so the test never waits on a timer.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
	case spinner.TickMsg:
	default:
		m, _ = m.Update(msg)
	}
	return m
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestModelNavigatesButtons(t *testing.T) {
	t.Parallel()
	model := app.NewModel(fakeDataset{summary: summary()}, &fakeChart{}, app.Params{Source: "listings.csv", Model: "bert"})
	m := run(t, model, model.Init())

	assert.Equal(t, "All", m.(app.Model).Selected())
	assert.Equal(t, "4 points in 2 categories", m.(app.Model).Status())
	view := m.View()
	assert.Contains(t, view, "Topics in All")
	assert.Contains(t, view, "topic_1")

	m = press(m, "j", "down", "down")
	assert.Equal(t, "Boston", m.(app.Model).Selected())
	m = press(m, "k")
	assert.Equal(t, "Austin", m.(app.Model).Selected())
	m = press(m, "up", "up")
	assert.Equal(t, "All", m.(app.Model).Selected())
	assert.Contains(t, m.View(), "Boston")
}

func TestModelRendersOnKey(t *testing.T) {
	t.Parallel()
	chart := &fakeChart{}
	params := app.Params{Source: "listings.csv", Model: "bert", Topics: chartdto.TopicsInput{Count: 2}, Format: "html", Output: "out/map.html"}
	model := app.NewModel(fakeDataset{summary: summary()}, chart, params)
	m := run(t, model, model.Init())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, "rendering out/map.html", m.(app.Model).Status())
	m = run(t, m, cmd)

	require.Len(t, chart.renders, 1)
	assert.Equal(t, chartdto.RenderInput{Source: "listings.csv", Model: "bert", Topics: chartdto.TopicsInput{Count: 2}, Format: "html", Output: "out/map.html"}, chart.renders[0])
	assert.True(t, strings.HasPrefix(m.(app.Model).Status(), "rendered out/map.html"))
}

func TestModelReportsFailures(t *testing.T) {
	t.Parallel()
	chart := &fakeChart{err: errors.New("disk full")}
	model := app.NewModel(fakeDataset{err: errors.New("no such table")}, chart, app.Params{Source: "db.sqlite"})
	m := run(t, model, model.Init())
	assert.Equal(t, "load dataset: no such table", m.(app.Model).Status())
	assert.Equal(t, "All", m.(app.Model).Selected())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = run(t, m, cmd)
	assert.Equal(t, "render failed: disk full", m.(app.Model).Status())
}

func TestModelQuits(t *testing.T) {
	t.Parallel()
	model := app.NewModel(fakeDataset{}, &fakeChart{}, app.Params{})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
