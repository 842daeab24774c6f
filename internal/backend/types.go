package backend

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

// CartLine is one row of the user's cart inside the active order. Name is the
// line identity the cart mutation endpoints accept.
type CartLine struct {
	MenuItemID int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         int64               `json:"id"`
		MenuItemID int64               `json:"menu_item_id"`
		Name       string              `json:"name"`
		ItemName   string              `json:"item_name"`
		Price      decimal.Decimal     `json:"price"`
		Quantity   int                 `json:"quantity"`
		Total      decimal.NullDecimal `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.MenuItemID = raw.ID
	if l.MenuItemID == 0 {
		l.MenuItemID = raw.MenuItemID
	}
	l.Name = raw.Name
	if l.Name == "" {
		l.Name = raw.ItemName
	}
	l.Price = raw.Price
	l.Quantity = raw.Quantity
	if raw.Total.Valid {
		l.Total = raw.Total.Decimal
	} else {
		// /cart and the mutation endpoints omit the line total; derive it from
		// the same payload rather than from any local state.
		l.Total = raw.Price.Mul(decimal.NewFromInt(int64(raw.Quantity)))
	}
	return nil
}

type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user"`
	ActiveOrder   *Order `json:"active_order"`
}

type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type ReceiptLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

type ReceiptParticipant struct {
	Name     string          `json:"name"`
	Items    []ReceiptLine   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Receipt struct {
	OrderName    string               `json:"order_name"`
	OrderPIN     string               `json:"order_pin"`
	Timestamp    time.Time            `json:"timestamp"`
	Participants []ReceiptParticipant `json:"participants"`
	GrandTotal   decimal.Decimal      `json:"grand_total"`
}

type receiptUserOrder struct {
	Name     string          `json:"name"`
	Items    []ReceiptLine   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type receiptPayload struct {
	OrderName   string                      `json:"order_name"`
	OrderPIN    string                      `json:"order_pin"`
	Timestamp   string                      `json:"timestamp"`
	UserOrders  map[string]receiptUserOrder `json:"user_orders"`
	GrandTotal  decimal.NullDecimal         `json:"grand_total"`
	TotalAmount decimal.NullDecimal         `json:"total_amount"`
}

// normalize turns either receipt shape into a Receipt. user_orders is keyed by
// user id or by user name depending on the backend; the entry name wins.
func (p receiptPayload) normalize(fetchedAt time.Time) Receipt {
	out := Receipt{
		OrderName: p.OrderName,
		OrderPIN:  p.OrderPIN,
		Timestamp: fetchedAt,
	}
	if ts, ok := parseTimestamp(p.Timestamp); ok {
		out.Timestamp = ts
	}

	participants := make([]ReceiptParticipant, 0, len(p.UserOrders))
	subtotals := make([]decimal.Decimal, 0, len(p.UserOrders))
	for key, uo := range p.UserOrders {
		name := uo.Name
		if name == "" {
			name = key
		}
		items := uo.Items
		if items == nil {
			items = []ReceiptLine{}
		}
		participants = append(participants, ReceiptParticipant{Name: name, Items: items, Subtotal: uo.Subtotal})
		subtotals = append(subtotals, uo.Subtotal)
	}
	sort.SliceStable(participants, func(i, j int) bool { return participants[i].Name < participants[j].Name })
	out.Participants = participants

	switch {
	case p.GrandTotal.Valid:
		out.GrandTotal = p.GrandTotal.Decimal
	case p.TotalAmount.Valid:
		out.GrandTotal = p.TotalAmount.Decimal
	default:
		total := decimal.Zero
		for _, s := range subtotals {
			total = total.Add(s)
		}
		out.GrandTotal = total
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
