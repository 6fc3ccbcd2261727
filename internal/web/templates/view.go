// Package templates renders the HTML pages of the inventory UI as templ
// components. Edit the .templ sources and regenerate with `templ generate`.
package templates

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/inventory/internal/core"
)

// InventoryView is the data behind the inventory page.
type InventoryView struct {
	Records  core.Inventory
	Total    int
	Term     string
	Category string
	LoadedAt time.Time
	LastLoad *core.LoadSummary
	Error    *core.UserMessage
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// quantity prints whole quantities without decimals.
func quantity(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return amount(v)
}
