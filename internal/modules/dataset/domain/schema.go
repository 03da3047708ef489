package domain

import "strings"

const ModelPlaceholder = "{model}"

type Schema struct {
	Category    string
	X           string
	Y           string
	Description string
	TopicLabel  string
	Keywords    string
	TopicCode   string
}

func DefaultSchema() Schema {
	return Schema{
		Category:    "City",
		X:           "x",
		Y:           "y",
		Description: "Todo",
		TopicLabel:  "topic_string",
		Keywords:    ModelPlaceholder + "_Topic_Keywords",
		TopicCode:   ModelPlaceholder + "_Topic",
	}
}

// ForModel substitutes the model name into every column template.
func (s Schema) ForModel(model string) Schema {
	model = strings.TrimSpace(model)
	sub := func(v string) string { return strings.ReplaceAll(v, ModelPlaceholder, model) }
	return Schema{
		Category:    sub(s.Category),
		X:           sub(s.X),
		Y:           sub(s.Y),
		Description: sub(s.Description),
		TopicLabel:  sub(s.TopicLabel),
		Keywords:    sub(s.Keywords),
		TopicCode:   sub(s.TopicCode),
	}
}

func (s Schema) NeedsModel() bool {
	for _, v := range []string{s.Category, s.X, s.Y, s.Description, s.TopicLabel, s.Keywords, s.TopicCode} {
		if strings.Contains(v, ModelPlaceholder) {
			return true
		}
	}
	return false
}
