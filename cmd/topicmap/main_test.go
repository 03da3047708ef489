package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingsCSV = `City,x,y,Todo,topic_string,bert_Topic_Keywords,bert_Topic
Austin,1.5,2,Tiny house near the lake,nature,trees lake,1
Boston,3,4.25,Brownstone,history,brick,0
Austin,5,6,Loft downtown,history,brick,0
`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "listings.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(listingsCSV), 0o644))
	cfgPath := filepath.Join(dir, "topicmap.yaml")
	cfg := "data_dir: " + dir + "\nlog:\n  level: error\nchart:\n  title: Test map\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return dir, cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderAndReadBack(t *testing.T) {
	dir, cfg := writeFixtures(t)
	source := filepath.Join(dir, "listings.csv")

	out, err := execute(t, "--config", cfg, "render", "--source", source, "--model", "bert", "--topics", "2")
	require.NoError(t, err)
	doc := filepath.Join(dir, "topicmap.html")
	assert.Contains(t, out, "rendered "+doc+" format=html layers=3 categories=2 points=3")
	assert.FileExists(t, doc)

	out, err = execute(t, "--config", cfg, "figure", "--file", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "layers=3 point_layers=2 legend_layers=1 points=3")
	assert.Contains(t, out, "buttons=All,Austin,Boston")
}

func TestConfiguredPluginFormatFallsBackToHTML(t *testing.T) {
	dir, _ := writeFixtures(t)
	cfgPath := filepath.Join(dir, "plugin.yaml")
	cfg := "data_dir: " + dir + "\nlog:\n  level: error\nrender:\n  format: plugin\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := execute(t, "--config", cfgPath, "render", "--source", filepath.Join(dir, "listings.csv"), "--model", "bert", "--topics", "2")
	require.NoError(t, err)
	doc := filepath.Join(dir, "topicmap.html")
	assert.Contains(t, out, "rendered "+doc+" format=plugin")

	out, err = execute(t, "--config", cfgPath, "figure", "--file", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "layers=3 point_layers=2 legend_layers=1 points=3")
}

func TestSpecPrintsYAML(t *testing.T) {
	dir, cfg := writeFixtures(t)
	out, err := execute(t, "--config", cfg, "spec", "--source", filepath.Join(dir, "listings.csv"),
		"--model", "bert", "--topic-codes", "0,1", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:"))
	assert.Contains(t, out, "Test map")
}

func TestInspectSummarizes(t *testing.T) {
	dir, cfg := writeFixtures(t)
	out, err := execute(t, "--config", cfg, "inspect", "--source", filepath.Join(dir, "listings.csv"), "--model", "bert")
	require.NoError(t, err)
	assert.Contains(t, out, "points=3 categories=2 topics=[0 1]")
	assert.Contains(t, out, "Austin points=2 topic_0=1 topic_1=1")
}

func TestPaletteListsTicks(t *testing.T) {
	_, cfg := writeFixtures(t)
	out, err := execute(t, "--config", cfg, "palette", "--topics", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "topic_0")
	assert.Contains(t, out, "#57d3db")
}

func TestCommandsValidateFlags(t *testing.T) {
	_, cfg := writeFixtures(t)
	_, err := execute(t, "--config", cfg, "render", "--topics", "2")
	require.EqualError(t, err, "--source is required")

	_, err = execute(t, "--config", cfg, "render", "--source", "x.csv")
	require.EqualError(t, err, "--topics or --topic-codes is required")

	_, err = execute(t, "--config", cfg, "figure")
	require.EqualError(t, err, "--file is required")
}
