package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/mooc/internal/formatter"
)

var (
	_ list.Item = cardItem{}
)

// cardItem wraps [formatter.Card] to implement [list.Item].
type cardItem struct {
	card formatter.Card
}

func (i cardItem) FilterValue() string { return i.card.Title }
func (i cardItem) Title() string       { return fmt.Sprintf("%d. %s", i.card.Index, i.card.Title) }
func (i cardItem) Description() string { return i.card.Type }

func cardItems(cards []formatter.Card) []list.Item {
	items := make([]list.Item, len(cards))
	for i, card := range cards {
		items[i] = cardItem{card: card}
	}
	return items
}
