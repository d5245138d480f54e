package notification

import (
	"slices"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
)

// Settings is the dispatcher's snapshot of the WhatsApp settings row
type Settings struct {
	Enabled    bool
	Recipients []string
	Categories map[Category]bool
}

// SettingsFromModel converts the persisted settings row
func SettingsFromModel(n model.WhatsappNotification) Settings {
	return Settings{
		Enabled:    n.Enabled,
		Recipients: slices.Clone([]string(n.Recipients)),
		Categories: map[Category]bool{
			CategoryOrder:    n.OrderUpdates,
			CategoryProduct:  n.ProductUpdates,
			CategoryStock:    n.StockUpdates,
			CategoryCustomer: n.CustomerUpdates,
			CategoryReturn:   n.ReturnUpdates,
		},
	}
}

// Allows reports whether an event should reach the Sender at all
func (s Settings) Allows(event Event) bool {
	if !s.Enabled || len(s.Recipients) == 0 {
		return false
	}
	return s.Categories[event.Category()]
}
