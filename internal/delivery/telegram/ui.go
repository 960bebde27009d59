package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/index"
)

const (
	tilesPerRow = 4
	// Telegram accepts at most 100 buttons per keyboard; a page holds
	// at most 2*tilesPerPage tile and header buttons plus 6 controls.
	tilesPerPage = 40
)

// Tile markers by visual state.
const (
	markerAnswered = "✅"
	markerWarmUp   = "🔥"
	markerDefault  = "▫️"
)

func tileMarker(state index.TileState) string {
	switch state {
	case index.TileAnswered:
		return markerAnswered
	case index.TileWarmUp:
		return markerWarmUp
	default:
		return markerDefault
	}
}

func navigationRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Home", buildHomeCallback()),
		tgbotapi.NewInlineKeyboardButtonData("🚪 Logout", buildLogoutCallback()),
	)
}

// buildHomeKeyboard builds one page of the grouped question index.
// Out of range pages are clamped.
func buildHomeKeyboard(groups []index.Group, confirmClear bool, page int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	pages := paginateTiles(groups, tilesPerPage)
	page = clampPage(page, len(pages))

	if len(pages) > 0 {
		for _, g := range pages[page] {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📂 "+g.Name, buildNoopCallback()),
			))

			var row []tgbotapi.InlineKeyboardButton
			for _, t := range g.Tiles {
				label := fmt.Sprintf("%s %d", tileMarker(t.State), t.Index+1)
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildQuestionCallback(t.Index)))
				if len(row) == tilesPerRow {
					rows = append(rows, row)
					row = nil
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}

	if len(pages) > 1 {
		rows = append(rows, buildPagerRow(page, len(pages)))
	}

	if confirmClear {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, clear", buildClearConfirmCallback(true)),
			tgbotapi.NewInlineKeyboardButtonData("✖️ No", buildClearConfirmCallback(false)),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear progress", buildClearCallback()),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚪 Logout", buildLogoutCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPagerRow builds the prev/next row of the question index.
func buildPagerRow(page, totalPages int) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton

	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Prev", buildHomePageCallback(page-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d / %d", page+1, totalPages), buildNoopCallback(),
	))
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildHomePageCallback(page+1)))
	}

	return row
}

// paginateTiles splits the index into pages of at most perPage tiles, keeping bank order.
// A group cut by a page boundary continues under its own header on the next page.
func paginateTiles(groups []index.Group, perPage int) [][]index.Group {
	var (
		pages [][]index.Group
		page  []index.Group
		count int
	)

	for _, g := range groups {
		tiles := g.Tiles
		for len(tiles) > 0 {
			if count == perPage {
				pages = append(pages, page)
				page, count = nil, 0
			}
			n := min(perPage-count, len(tiles))
			page = append(page, index.Group{Name: g.Name, Tiles: tiles[:n]})
			tiles = tiles[n:]
			count += n
		}
	}

	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}

func clampPage(page, totalPages int) int {
	if page < 0 || totalPages == 0 {
		return 0
	}
	if page >= totalPages {
		return totalPages - 1
	}
	return page
}

// buildQuestionKeyboard builds the keyboard of the viewing sub-state.
func buildQuestionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👁 Reveal answer", buildRevealCallback()),
		),
		navigationRow(),
	)
}

// buildRevealConfirmKeyboard builds the reveal confirmation prompt.
func buildRevealConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, reveal", buildRevealConfirmCallback(true)),
			tgbotapi.NewInlineKeyboardButtonData("✖️ No", buildRevealConfirmCallback(false)),
		),
		navigationRow(),
	)
}

// buildNavigationKeyboard is used by the revealed and error sub-states.
func buildNavigationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(navigationRow())
}
