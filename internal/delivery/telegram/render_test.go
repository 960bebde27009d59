package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/index"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
	"github.com/aliskhannn/quiz-presenter-bot/internal/service"
)

func questionView(phase navigation.Phase) service.View {
	idx := 0
	q := entities.Question{Question: "Who <wrote> it?", A: "x", B: "y & z", C: "w", Answer: "B", Group: "A"}
	return service.View{
		State: entities.NavigationState{
			Screen:          entities.ScreenQuestion,
			Authenticated:   true,
			CurrentQuestion: &idx,
		},
		Phase:    phase,
		Question: &q,
		Total:    1,
	}
}

func keyboardData(s screen) []string {
	var out []string
	if s.keyboard == nil {
		return out
	}
	for _, row := range s.keyboard.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func TestRenderLogin(t *testing.T) {
	s := renderView(service.View{State: entities.NewNavigationState()}, nil, 0)
	if s.keyboard != nil {
		t.Fatal("login screen has no keyboard")
	}
	if !strings.Contains(s.text, "/login") {
		t.Fatalf("expected login instructions, got %q", s.text)
	}
}

func TestRenderHome(t *testing.T) {
	v := service.View{
		State: entities.NavigationState{Screen: entities.ScreenHome, Authenticated: true},
		Groups: []index.Group{
			{Name: "A", Tiles: []index.Tile{
				{Index: 0, State: index.TileAnswered},
				{Index: 1, State: index.TileWarmUp},
			}},
			{Name: "B", Tiles: []index.Tile{{Index: 2, State: index.TileDefault}}},
		},
		Answered: 1,
		Total:    3,
	}

	s := renderView(v, nil, 0)
	if !strings.Contains(s.text, "Answered: 1 / 3") {
		t.Fatalf("unexpected text %q", s.text)
	}

	rows := s.keyboard.InlineKeyboard
	if rows[0][0].Text != "📂 A" || rows[1][0].Text != "✅ 1" || rows[1][1].Text != "🔥 2" {
		t.Fatalf("unexpected first group rows: %+v", rows[:2])
	}
	if rows[2][0].Text != "📂 B" || rows[3][0].Text != "▫️ 3" {
		t.Fatalf("unexpected second group rows: %+v", rows[2:4])
	}

	data := keyboardData(s)
	if !contains(data, buildClearCallback()) || contains(data, buildClearConfirmCallback(true)) {
		t.Fatalf("expected clear button only, got %v", data)
	}

	v.State.ConfirmClear = true
	data = keyboardData(renderView(v, nil, 0))
	if contains(data, buildClearCallback()) || !contains(data, buildClearConfirmCallback(true)) || !contains(data, buildClearConfirmCallback(false)) {
		t.Fatalf("expected yes/no confirmation, got %v", data)
	}
}

func TestRenderHome_WrapsTiles(t *testing.T) {
	var tiles []index.Tile
	for i := 0; i < tilesPerRow+1; i++ {
		tiles = append(tiles, index.Tile{Index: i})
	}
	kb := buildHomeKeyboard([]index.Group{{Name: "G", Tiles: tiles}}, false, 0)

	if len(kb.InlineKeyboard[1]) != tilesPerRow || len(kb.InlineKeyboard[2]) != 1 {
		t.Fatalf("expected tiles wrapped at %d", tilesPerRow)
	}
}

func TestRenderHome_PagesLargeIndex(t *testing.T) {
	const total = 130

	tests := []struct {
		name     string
		perGroup int
	}{
		{"ten per group", 10},
		{"one per group", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := make([]entities.Question, 0, total)
			for i := 0; i < total; i++ {
				questions = append(questions, entities.Question{
					Question: fmt.Sprintf("Q%d", i+1),
					A:        "a",
					B:        "b",
					C:        "c",
					Answer:   "A",
					Group:    fmt.Sprintf("G%03d", i/tt.perGroup),
					Type:     entities.TypeGeneral,
				})
			}
			groups := index.Build(questions, nil)

			totalPages := len(paginateTiles(groups, tilesPerPage))
			if totalPages != 4 {
				t.Fatalf("expected 4 pages, got %d", totalPages)
			}

			seen := make(map[string]bool)
			for page := 0; page < totalPages; page++ {
				for _, confirm := range []bool{false, true} {
					kb := buildHomeKeyboard(groups, confirm, page)

					buttons := 0
					for _, row := range kb.InlineKeyboard {
						buttons += len(row)
					}
					if buttons > 100 {
						t.Fatalf("page %d has %d buttons", page, buttons)
					}

					data := keyboardData(screen{keyboard: &kb})
					if !contains(data, buildLogoutCallback()) {
						t.Fatalf("page %d lost logout", page)
					}
					if confirm != contains(data, buildClearConfirmCallback(true)) || confirm == contains(data, buildClearCallback()) {
						t.Fatalf("page %d has wrong clear controls: %v", page, data)
					}
					if got := contains(data, buildHomePageCallback(page-1)); got != (page > 0) {
						t.Fatalf("page %d prev button = %v", page, got)
					}
					if got := contains(data, buildHomePageCallback(page+1)); got != (page < totalPages-1) {
						t.Fatalf("page %d next button = %v", page, got)
					}

					for _, d := range data {
						if strings.HasPrefix(d, actionQuestion+":") {
							seen[d] = true
						}
					}
				}
			}

			if len(seen) != total {
				t.Fatalf("expected every question reachable, got %d", len(seen))
			}
		})
	}
}

func TestRenderHome_ClampsPage(t *testing.T) {
	var tiles []index.Tile
	for i := 0; i < tilesPerPage+5; i++ {
		tiles = append(tiles, index.Tile{Index: i})
	}
	groups := []index.Group{{Name: "G", Tiles: tiles}}

	kb := buildHomeKeyboard(groups, false, 99)
	data := keyboardData(screen{keyboard: &kb})
	if !contains(data, buildQuestionCallback(tilesPerPage)) || contains(data, buildQuestionCallback(0)) {
		t.Fatalf("expected last page, got %v", data)
	}
	if contains(data, buildHomePageCallback(2)) {
		t.Fatal("last page must not offer next")
	}
	if kb.InlineKeyboard[0][0].Text != "📂 G" {
		t.Fatalf("continued group must repeat its header, got %q", kb.InlineKeyboard[0][0].Text)
	}
}

func TestRenderQuestionPhases(t *testing.T) {
	tests := []struct {
		phase    navigation.Phase
		wantData []string
		wantText string
		noText   string
	}{
		{navigation.PhaseViewing, []string{buildRevealCallback(), buildHomeCallback(), buildLogoutCallback()}, "A) x", "Correct answer"},
		{navigation.PhaseConfirming, []string{buildRevealConfirmCallback(true), buildRevealConfirmCallback(false), buildHomeCallback()}, "Reveal the answer?", "Correct answer"},
		{navigation.PhaseRevealed, []string{buildHomeCallback(), buildLogoutCallback()}, "Explanation:</b> None", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			s := renderView(questionView(tt.phase), nil, 0)

			if !strings.Contains(s.text, "Who &lt;wrote&gt; it?") {
				t.Fatalf("prompt not escaped: %q", s.text)
			}
			if !strings.Contains(s.text, tt.wantText) {
				t.Fatalf("expected %q in %q", tt.wantText, s.text)
			}
			if tt.noText != "" && strings.Contains(s.text, tt.noText) {
				t.Fatalf("unexpected %q in %q", tt.noText, s.text)
			}
			data := keyboardData(s)
			for _, want := range tt.wantData {
				if !contains(data, want) {
					t.Fatalf("expected button %q, got %v", want, data)
				}
			}
		})
	}
}

func TestRenderQuestion_RevealedMarksCorrectOption(t *testing.T) {
	s := renderView(questionView(navigation.PhaseRevealed), nil, 0)
	if !strings.Contains(s.text, "✅ <b>B) y &amp; z</b>") {
		t.Fatalf("expected marked correct option, got %q", s.text)
	}
	if strings.Contains(s.text, "D)") {
		t.Fatal("absent option D must not be shown")
	}
}

func TestRenderQuestion_Missing(t *testing.T) {
	idx := 9
	v := service.View{
		State: entities.NavigationState{Screen: entities.ScreenQuestion, Authenticated: true, CurrentQuestion: &idx},
		Phase: navigation.PhaseMissing,
	}

	s := renderView(v, entities.ErrQuestionNotFound, 0)
	if s.text != noticeQuestionNotFound {
		t.Fatalf("expected only the not-found notice, got %q", s.text)
	}
	data := keyboardData(s)
	if !contains(data, buildHomeCallback()) || !contains(data, buildLogoutCallback()) {
		t.Fatalf("navigation must remain, got %v", data)
	}
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{entities.ErrAuthMismatch, noticeAuthMismatch},
		{entities.ErrAuthRequired, noticeAuthRequired},
		{entities.ErrInvalidTransition, noticeInvalidTransition},
		{entities.ErrProgressNotSaved, noticeProgressNotSaved},
	}
	for _, tt := range tests {
		if got := noticeFor(tt.err); got != tt.want {
			t.Errorf("noticeFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestFatalMessage(t *testing.T) {
	if fatalMessage(entities.ErrDataUnavailable) != msgDataUnavailable {
		t.Fatal("unexpected unavailable message")
	}
	if fatalMessage(entities.ErrDataCorrupt) != msgDataCorrupt {
		t.Fatal("unexpected corrupt message")
	}
}
