package notification

import (
	"sort"
	"strings"
)

// Event names a business change that may trigger a WhatsApp message
type Event string

const (
	EventCustomerCreated Event = "customer.created"
	EventOrderCreated    Event = "order.created"
	EventOrderUpdated    Event = "order.updated"
	EventOrderDeleted    Event = "order.deleted"
	EventProductCreated  Event = "product.created"
	EventProductUpdated  Event = "product.updated"
	EventProductDeleted  Event = "product.deleted"
	EventStockCreated    Event = "stock.created"
	EventStockUpdated    Event = "stock.updated"
	EventStockDeleted    Event = "stock.deleted"
	EventReturnCreated   Event = "return.created"
	EventReturnUpdated   Event = "return.updated"
	EventReturnDeleted   Event = "return.deleted"
	EventTest            Event = "test"
)

// Category groups events under one settings toggle
type Category string

const (
	CategoryOrder    Category = "order"
	CategoryProduct  Category = "product"
	CategoryStock    Category = "stock"
	CategoryCustomer Category = "customer"
	CategoryReturn   Category = "return"
	CategorySystem   Category = "system"
)

// Category derives the toggle group from the event prefix
func (e Event) Category() Category {
	prefix, _, found := strings.Cut(string(e), ".")
	if !found {
		return CategorySystem
	}
	return Category(prefix)
}

var templates = map[Event]string{
	EventCustomerCreated: "👤 New customer added\nName: {{name}}\nType: {{type}}\nPhone: {{phone}}\nCity: {{city}}",
	EventOrderCreated:    "🧾 New order {{orderId}}\nCustomer: {{customer}}\nItems: {{items}}\nTotal: ₹{{total}}\nStatus: {{status}}",
	EventOrderUpdated:    "✏️ Order {{orderId}} updated\nCustomer: {{customer}}\nTotal: ₹{{total}}\nStatus: {{status}}",
	EventOrderDeleted:    "🗑️ Order {{orderId}} deleted\nCustomer: {{customer}}",
	EventProductCreated:  "📦 New product {{name}}\nCategory: {{category}}\nColors: {{colors}}",
	EventProductUpdated:  "✏️ Product {{name}} updated\nColors: {{colors}}",
	EventProductDeleted:  "🗑️ Product {{name}} deleted",
	EventStockCreated:    "🏭 New {{stockType}} entry\nProduct: {{product}}\nQuantity: {{quantity}}\nStatus: {{status}}",
	EventStockUpdated:    "✏️ {{stockType}} entry updated\nProduct: {{product}}\nQuantity: {{quantity}}\nStatus: {{status}}",
	EventStockDeleted:    "🗑️ {{stockType}} entry deleted\nProduct: {{product}}",
	EventReturnCreated:   "↩️ Return {{returnId}} filed\nOrder: {{orderId}}\nCustomer: {{customer}}\nProduct: {{product}} ({{color}})\nQuantity: {{quantity}}\nRefund: ₹{{refund}}",
	EventReturnUpdated:   "↩️ Return {{returnId}} is {{status}}\nCustomer: {{customer}}\nRefund: ₹{{refund}}",
	EventReturnDeleted:   "🗑️ Return {{returnId}} deleted\nCustomer: {{customer}}",
	EventTest:            "✅ Test message from {{business}}. WhatsApp notifications are working.",
}

// Render substitutes {{key}} placeholders. Unknown events render their data
// as key: value lines; placeholders without data become empty.
func Render(event Event, data map[string]string) string {
	tmpl, ok := templates[event]
	if !ok {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := []string{string(event)}
		for _, k := range keys {
			lines = append(lines, k+": "+data[k])
		}
		return strings.Join(lines, "\n")
	}

	return placeholders(tmpl, data).Replace(tmpl)
}

// placeholders builds one replacer for every {{key}} in tmpl. Replacement runs
// in a single pass, so braces inside data values come through as written.
func placeholders(tmpl string, data map[string]string) *strings.Replacer {
	var pairs []string
	rest := tmpl
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			break
		}
		token := rest[start : start+end+2]
		pairs = append(pairs, token, data[token[2:len(token)-2]])
		rest = rest[start+end+2:]
	}
	return strings.NewReplacer(pairs...)
}
