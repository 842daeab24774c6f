package handlers

import (
	"net/http"

	"group-order-client/internal/session"
	"group-order-client/internal/utils"

	"github.com/shopspring/decimal"
)

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	name := formValue(r, "item_name")
	price, ok := utils.ParseMoney(formValue(r, "price"))
	if !ok {
		price = menuPrice(ctrl.Snapshot(), name)
	}
	ctrl.Dispatch(r.Context(), session.AddToCart{
		ItemName:   name,
		Price:      price,
		MenuItemID: formInt64(r, "menu_item_id"),
	})
	redirect(w, r, "/")
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.UpdateQuantity{
		ItemName: formValue(r, "item_name"),
		Quantity: formInt(r, "quantity"),
	}, "")
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.RemoveFromCart{ItemName: formValue(r, "item_name")}, "")
}

// menuPrice looks the price up in the loaded menu when the form did not carry
// a usable one.
func menuPrice(view session.View, name string) decimal.Decimal {
	for _, category := range view.Menu {
		for _, item := range category.Items {
			if item.Name == name {
				return item.Price
			}
		}
	}
	return decimal.Zero
}
