// Package slides lays out the question bank as a linked slide deck and renders it as one HTML file.
//
// Slides are numbered from 1: a title slide, a grouped index, then every question followed by two
// buffer slides, then every answer followed by two buffer slides.
package slides

import (
	"fmt"
	"html/template"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

const (
	titleSlide = 1
	indexSlide = 2

	// slidesPerItem is one question or answer slide plus two buffer slides.
	slidesPerItem = 3
)

// Palette colors index tiles by group in first-seen order.
var Palette = []string{"#287EF3", "#28B463", "#D4AC0D", "#CB4335", "#884EA0", "#17A589", "#D35400"}

type Kind string

const (
	KindTitle    Kind = "title"
	KindIndex    Kind = "index"
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
	KindBuffer   Kind = "buffer"
)

// Options configures the deck.
type Options struct {
	Title      string
	Subtitle   string
	IndexTitle string
	// MaxIndexTiles caps the tiles on the index slide. Zero means no limit.
	MaxIndexTiles int
	// BufferImage is shown full-slide on buffer slides when set.
	BufferImage template.URL
}

// Tile is a clickable question on the index slide.
type Tile struct {
	Label string
	Group string
	Color string
	Link  int
}

// Slide is one page of the deck. Only the fields of its Kind are set.
type Slide struct {
	Number int
	Kind   Kind

	Title    string
	Subtitle string

	Tiles []Tile

	Header     string
	Prompt     string
	Options    []entities.Option
	AnswerLink int

	Answer      string
	Explanation string

	Image template.URL
}

// Deck is a planned slide deck.
type Deck struct {
	Title  string
	Slides []Slide
	// Omitted counts questions left off the index slide by MaxIndexTiles.
	Omitted int
}

// QuestionSlide returns the slide number of question i.
func QuestionSlide(i int) int {
	return indexSlide + 1 + slidesPerItem*i
}

// AnswerStart returns the slide number of the first answer for a bank of n questions.
func AnswerStart(n int) int {
	return indexSlide + slidesPerItem*n + 1
}

// AnswerSlide returns the slide number of the answer to question i in a bank of n questions.
func AnswerSlide(i, n int) int {
	return AnswerStart(n) + slidesPerItem*i
}

// Plan lays out the deck for questions.
func Plan(questions []entities.Question, opts Options) Deck {
	n := len(questions)
	deck := Deck{
		Title:  opts.Title,
		Slides: make([]Slide, 0, 2+2*slidesPerItem*n),
	}

	deck.Slides = append(deck.Slides, Slide{
		Number:   titleSlide,
		Kind:     KindTitle,
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
	})

	tiles, omitted := indexTiles(questions, opts.MaxIndexTiles)
	deck.Omitted = omitted
	deck.Slides = append(deck.Slides, Slide{
		Number: indexSlide,
		Kind:   KindIndex,
		Title:  opts.IndexTitle,
		Tiles:  tiles,
	})

	for i, q := range questions {
		deck.Slides = append(deck.Slides, Slide{
			Number:     QuestionSlide(i),
			Kind:       KindQuestion,
			Header:     fmt.Sprintf("Question %d | %s", i+1, q.Group),
			Prompt:     q.Question,
			Options:    q.Options(),
			AnswerLink: AnswerSlide(i, n),
		})
		deck.Slides = appendBuffers(deck.Slides, opts.BufferImage)
	}

	for _, q := range questions {
		explanation := q.Explanation
		if explanation == "" {
			explanation = "None"
		}
		deck.Slides = append(deck.Slides, Slide{
			Number:      len(deck.Slides) + 1,
			Kind:        KindAnswer,
			Answer:      q.Answer,
			Explanation: explanation,
		})
		deck.Slides = appendBuffers(deck.Slides, opts.BufferImage)
	}

	return deck
}

func appendBuffers(slides []Slide, image template.URL) []Slide {
	for range slidesPerItem - 1 {
		slides = append(slides, Slide{
			Number: len(slides) + 1,
			Kind:   KindBuffer,
			Image:  image,
		})
	}
	return slides
}

func indexTiles(questions []entities.Question, limit int) ([]Tile, int) {
	colors := make(map[string]string)
	for _, g := range entities.GroupQuestions(questions) {
		colors[g.Name] = Palette[len(colors)%len(Palette)]
	}

	count := len(questions)
	if limit > 0 && count > limit {
		count = limit
	}

	tiles := make([]Tile, 0, count)
	for i, q := range questions[:count] {
		tiles = append(tiles, Tile{
			Label: fmt.Sprintf("Q%d", i+1),
			Group: firstRunes(q.Group, 5),
			Color: colors[groupName(q)],
			Link:  QuestionSlide(i),
		})
	}

	return tiles, len(questions) - count
}

func groupName(q entities.Question) string {
	if q.Group == "" {
		return entities.DefaultGroup
	}
	return q.Group
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
