package session

import (
	"fmt"
	"reflect"

	"group-order-client/internal/backend"
	"group-order-client/internal/utils"

	"github.com/shopspring/decimal"
)

type Screen string

const (
	ScreenAuth         Screen = "auth"
	ScreenOrderOptions Screen = "order-options"
	ScreenActiveOrder  Screen = "active-order"
)

type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Forms holds the non-secret fields of the last failed submission so a form
// can be shown again with what the user typed.
type Forms struct {
	SignupName  string `json:"signupName"`
	SignupEmail string `json:"signupEmail"`
	LoginEmail  string `json:"loginEmail"`
	OrderName   string `json:"orderName"`
	OrderPIN    string `json:"orderPin"`
}

type MenuCategory struct {
	Name  string             `json:"name"`
	Items []backend.MenuItem `json:"items"`
}

// View is a copy of the controller's state for rendering. It never aliases the
// controller's slices.
type View struct {
	Screen        Screen             `json:"screen"`
	Authenticated bool               `json:"authenticated"`
	User          *backend.User      `json:"user"`
	Order         *backend.Order     `json:"order"`
	Menu          []MenuCategory     `json:"menu"`
	MenuError     string             `json:"menuError,omitempty"`
	Cart          []backend.CartLine `json:"cart"`
	CartTotal     decimal.Decimal    `json:"cartTotal"`
	Notice        *Notice            `json:"notice,omitempty"`
	Forms         Forms              `json:"forms"`
	Probed        bool               `json:"probed"`
}

func (v View) UserDisplay() string {
	if v.User == nil {
		return ""
	}
	return "Logged in as: " + v.User.Name
}

func (v View) OrderHeader() string {
	if v.Order == nil {
		return ""
	}
	return fmt.Sprintf("Current Order: %s (PIN: %s)", v.Order.Name, v.Order.PIN)
}

func (v View) CartTotalDisplay() string {
	return "Total: " + utils.FormatMoney(v.CartTotal)
}

// groupMenu keeps categories in order of first appearance and items in server
// order inside each category.
func groupMenu(items []backend.MenuItem) []MenuCategory {
	index := make(map[string]int)
	out := make([]MenuCategory, 0)
	for _, item := range items {
		name := item.Category
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, MenuCategory{Name: name})
		}
		out[i].Items = append(out[i].Items, item)
	}
	return out
}

func cartTotal(lines []backend.CartLine) decimal.Decimal {
	totals := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		totals = append(totals, line.Total)
	}
	return utils.SumDecimals(totals...)
}

func copyMenu(menu []MenuCategory) []MenuCategory {
	out := make([]MenuCategory, len(menu))
	for i, c := range menu {
		out[i] = MenuCategory{Name: c.Name, Items: append([]backend.MenuItem(nil), c.Items...)}
	}
	return out
}

// sameState reports whether two views render the same screen content, ignoring
// the notice and form drafts.
func sameState(a, b View) bool {
	a.Notice, b.Notice = nil, nil
	a.Forms, b.Forms = Forms{}, Forms{}
	return reflect.DeepEqual(a, b)
}
