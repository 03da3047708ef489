package domain

type Style struct {
	Title         string
	Height        int
	FontColor     string
	Background    string
	FontSize      int
	TitleFontSize int
	MarkerSize    int
	MarkerOpacity float64
	WrapWidth     int
	LegendTitle   string
}

func DefaultStyle() Style {
	return Style{
		Title:         "Airbnb",
		Height:        800,
		FontColor:     "#FFFFFF",
		Background:    "#000000",
		FontSize:      11,
		TitleFontSize: 14,
		MarkerSize:    12,
		MarkerOpacity: 0.9,
		WrapWidth:     100,
		LegendTitle:   "Topics",
	}
}
