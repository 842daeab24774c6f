package handlers

import (
	"net/http"

	"group-order-client/internal/session"
	"group-order-client/pkg/response"
)

// Index renders whichever screen the session is on.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	tab := r.URL.Query().Get("tab")
	if tab != "signup" {
		tab = "login"
	}
	h.render(w, "index", pageData{View: pageView(ctrl, r), Tab: tab})
}

// View returns the view model; the notice is left in place for the next page.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	response.Success(w, ctrl.Snapshot())
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.Signup{
		Name:     formValue(r, "name"),
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}, tabURL("signup"))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.Login{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}, tabURL("login"))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.dispatchForm(w, r, session.Logout{}, "")
}
