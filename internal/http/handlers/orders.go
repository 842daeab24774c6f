package handlers

import (
	"net/http"

	"group-order-client/internal/session"
)

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.CreateOrder{Name: formValue(r, "order-name")}, "")
}

func (h *Handler) JoinOrder(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.JoinOrder{PIN: formValue(r, "order-pin")}, "")
}

// LeaveOrderConfirm asks before leaving; only the confirmed post leaves.
func (h *Handler) LeaveOrderConfirm(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	view := pageView(ctrl, r)
	if view.Screen != session.ScreenActiveOrder {
		redirect(w, r, "/")
		return
	}
	h.render(w, "leave", pageData{View: view})
}

func (h *Handler) LeaveOrder(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.LeaveOrder{Confirmed: formValue(r, "confirm") == "yes"}, "")
}

func (h *Handler) ReloadMenu(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.LoadMenu{}, "")
}
