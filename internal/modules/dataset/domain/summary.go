package domain

import "sort"

type CategorySummary struct {
	Name        string
	Points      int
	TopicCounts map[int]int
}

type Summary struct {
	Categories []CategorySummary
	TopicCodes []int
	Points     int
}

// Summarize groups listings by category in first-seen order.
func Summarize(listings []Listing) Summary {
	order := make([]string, 0)
	byName := make(map[string]*CategorySummary)
	codes := make(map[int]struct{})
	for _, l := range listings {
		c, ok := byName[l.Category]
		if !ok {
			c = &CategorySummary{Name: l.Category, TopicCounts: map[int]int{}}
			byName[l.Category] = c
			order = append(order, l.Category)
		}
		c.Points++
		c.TopicCounts[l.TopicCode]++
		codes[l.TopicCode] = struct{}{}
	}
	out := Summary{Points: len(listings), Categories: make([]CategorySummary, 0, len(order))}
	for _, name := range order {
		out.Categories = append(out.Categories, *byName[name])
	}
	out.TopicCodes = make([]int, 0, len(codes))
	for code := range codes {
		out.TopicCodes = append(out.TopicCodes, code)
	}
	sort.Ints(out.TopicCodes)
	return out
}
