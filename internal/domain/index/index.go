// Package index builds the grouped question index shown on the home screen.
package index

import (
	"fmt"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

// TileState is the visual state of an index tile.
type TileState string

const (
	TileDefault  TileState = "default"
	TileWarmUp   TileState = "warm_up"
	TileAnswered TileState = "answered"
)

// Tile summarizes one question on the index.
type Tile struct {
	Index int
	Label string
	State TileState
}

// Group is a category of tiles in bank order.
type Group struct {
	Name  string
	Tiles []Tile
}

// Build derives the grouped index from the question bank and the answered set.
// It does not modify its inputs.
func Build(questions []entities.Question, progress *entities.ProgressStore) []Group {
	groups := entities.GroupQuestions(questions)
	out := make([]Group, 0, len(groups))

	for _, g := range groups {
		tiles := make([]Tile, 0, len(g.Items))
		for _, item := range g.Items {
			tiles = append(tiles, Tile{
				Index: item.Index,
				Label: Label(item.Index),
				State: stateOf(item, progress),
			})
		}
		out = append(out, Group{Name: g.Name, Tiles: tiles})
	}

	return out
}

// Label returns the display label of the question at index.
func Label(index int) string {
	return fmt.Sprintf("Question %d", index+1)
}

// answered > warm-up > default
func stateOf(item entities.IndexedQuestion, progress *entities.ProgressStore) TileState {
	if progress != nil && progress.Has(item.Index) {
		return TileAnswered
	}
	if item.Question.IsWarmUp() {
		return TileWarmUp
	}
	return TileDefault
}
