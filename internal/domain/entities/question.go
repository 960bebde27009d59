package entities

import "strings"

// OptionKeys lists answer option keys in display order.
var OptionKeys = []string{"A", "B", "C", "D"}

const (
	DefaultGroup = "General"

	TypeGeneral = "general"
	TypeWarmUp  = "warm_up"
)

// Question is one multiple-choice quiz item. Its position in the question bank is its identity.
type Question struct {
	Question    string `json:"question" validate:"required"`
	A           string `json:"A"`
	B           string `json:"B"`
	C           string `json:"C"`
	D           string `json:"D,omitempty"`
	Answer      string `json:"answer" validate:"required,oneof=A B C D"`
	Explanation string `json:"explanation"`
	Group       string `json:"q_group"`
	Type        string `json:"q_type,omitempty"`
}

// Option is a present answer option of a question.
type Option struct {
	Key  string
	Text string
}

// Normalize trims fields and fills defaults for the optional group and type.
func (q *Question) Normalize() {
	q.Answer = strings.ToUpper(strings.TrimSpace(q.Answer))
	q.Group = strings.TrimSpace(q.Group)
	if q.Group == "" {
		q.Group = DefaultGroup
	}
	q.Type = strings.TrimSpace(q.Type)
	if q.Type == "" {
		q.Type = TypeGeneral
	}
}

// OptionText returns the text of the option with the given key.
func (q *Question) OptionText(key string) string {
	switch key {
	case "A":
		return q.A
	case "B":
		return q.B
	case "C":
		return q.C
	case "D":
		return q.D
	default:
		return ""
	}
}

// Options returns the present (non-empty) options in key order.
func (q *Question) Options() []Option {
	opts := make([]Option, 0, len(OptionKeys))
	for _, key := range OptionKeys {
		if text := q.OptionText(key); strings.TrimSpace(text) != "" {
			opts = append(opts, Option{Key: key, Text: text})
		}
	}
	return opts
}

// HasOption reports whether the option with the given key is present.
func (q *Question) HasOption(key string) bool {
	return strings.TrimSpace(q.OptionText(key)) != ""
}

// IsWarmUp reports whether the question is tagged as a warm-up.
func (q *Question) IsWarmUp() bool {
	return q.Type == TypeWarmUp
}

// IndexedQuestion pairs a question with its position in the question bank.
type IndexedQuestion struct {
	Index    int
	Question Question
}

// QuestionGroup is a category with its questions in bank order.
type QuestionGroup struct {
	Name  string
	Items []IndexedQuestion
}

// GroupQuestions groups questions by category. Groups keep first-seen order,
// questions keep their bank order within a group.
func GroupQuestions(questions []Question) []QuestionGroup {
	var groups []QuestionGroup
	pos := make(map[string]int)

	for i, q := range questions {
		name := q.Group
		if name == "" {
			name = DefaultGroup
		}

		idx, ok := pos[name]
		if !ok {
			idx = len(groups)
			pos[name] = idx
			groups = append(groups, QuestionGroup{Name: name})
		}

		groups[idx].Items = append(groups[idx].Items, IndexedQuestion{Index: i, Question: q})
	}

	return groups
}
