package entities

import "testing"

func TestQuestionOptions(t *testing.T) {
	q := Question{Question: "Q", A: "x", B: "y", C: "  ", D: "w", Answer: "B"}

	opts := q.Options()
	if len(opts) != 3 {
		t.Fatalf("expected 3 present options, got %d", len(opts))
	}
	if opts[2].Key != "D" || opts[2].Text != "w" {
		t.Errorf("unexpected last option: %+v", opts[2])
	}
	if q.HasOption("C") {
		t.Error("blank option C should not be present")
	}
	if q.OptionText(q.Answer) != "y" {
		t.Errorf("expected answer text 'y', got '%s'", q.OptionText(q.Answer))
	}
}

func TestGroupQuestionsPreservesOrder(t *testing.T) {
	questions := []Question{
		{Question: "1", Group: "G1"},
		{Question: "2", Group: "G2"},
		{Question: "3", Group: "G1"},
		{Question: "4"},
	}

	groups := GroupQuestions(questions)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	wantNames := []string{"G1", "G2", DefaultGroup}
	for i, g := range groups {
		if g.Name != wantNames[i] {
			t.Errorf("group %d: expected '%s', got '%s'", i, wantNames[i], g.Name)
		}
	}

	if got := groups[0].Items; len(got) != 2 || got[0].Index != 0 || got[1].Index != 2 {
		t.Errorf("unexpected G1 items: %+v", got)
	}
}
