package handlers

import (
	"bytes"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"group-order-client/internal/middleware"
	"group-order-client/internal/session"
	"group-order-client/pkg/response"

	"go.uber.org/zap"
)

var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func sanitizeFilename(value string) string {
	cleaned := filenameUnsafe.ReplaceAllString(strings.TrimSpace(value), "_")
	if cleaned == "" {
		return "order"
	}
	return cleaned
}

// controller returns the view-session's controller after making sure the
// initial session probe has run.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	vs, ok := middleware.GetViewSession(r.Context())
	if !ok {
		response.Error(w, http.StatusInternalServerError, "SESSION_ERROR", "View session not found")
		return nil, false
	}
	vs.Controller.Start(r.Context())
	return vs.Controller, true
}

// pageView is the view a page renders with. A page rendered normally consumes
// the notice; a refresh triggered by the view stream (sync=1) leaves it for the
// page the user navigates to next.
func pageView(ctrl *session.Controller, r *http.Request) session.View {
	if r.URL.Query().Get("sync") == "1" {
		view := ctrl.Snapshot()
		view.Notice = nil
		return view
	}
	return ctrl.TakeView()
}

// dispatchForm runs a command for a form post and redirects back (post,
// redirect, get). The notice travels in the session, not in the URL.
func (h *Handler) dispatchForm(w http.ResponseWriter, r *http.Request, cmd session.Command, onFailure string) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	res := ctrl.Dispatch(r.Context(), cmd)
	target := "/"
	if res.Outcome == session.OutcomeFailure && onFailure != "" {
		target = onFailure
	}
	redirect(w, r, target)
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

func formInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(formValue(r, key))
	if err != nil {
		return 0
	}
	return v
}

func formInt64(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(formValue(r, key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func tabURL(tab string) string {
	return "/?" + url.Values{"tab": {tab}}.Encode()
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.Logger.Error("page render failed", zap.String("page", name), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
