package dto

import "time"

// TopicsInput selects the topic assignment: Codes wins over Count when set.
type TopicsInput struct {
	Count int
	Codes []int
}

type RenderInput struct {
	Source  string
	Model   string
	Topics  TopicsInput
	Format  string
	Output  string
	Publish bool
}

type RenderOutput struct {
	RenderID     string
	Path         string
	Format       string
	Layers       int
	Categories   int
	Points       int
	PublishedURL string
	Duration     time.Duration
}

type SpecInput struct {
	Source string
	Model  string
	Topics TopicsInput
	Format string
}

type SpecOutput struct {
	Format string
	Body   []byte
}

type TopicColor struct {
	Code  int
	Tick  string
	Color string
}

type FigureOutput struct {
	Path         string
	Layers       int
	PointLayers  int
	LegendLayers int
	Points       int
	Categories   []string
	Buttons      []string
	JSON         []byte
}
