package dto

type LoadInput struct {
	Source string
	Model  string
}

type ListingRow struct {
	Category    string
	X           float64
	Y           float64
	TopicCode   int
	TopicLabel  string
	Keywords    string
	Description string
}

type ListingsOutput struct {
	Rows []ListingRow
}

type TopicCount struct {
	Code  int
	Count int
}

type CategorySummary struct {
	Name   string
	Points int
	Topics []TopicCount
}

type SummaryOutput struct {
	Categories []CategorySummary
	TopicCodes []int
	Points     int
}
