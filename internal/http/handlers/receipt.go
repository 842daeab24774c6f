package handlers

import (
	"fmt"
	"net/http"

	"group-order-client/internal/backend"
	"group-order-client/internal/receipt"
	"group-order-client/internal/session"
	"group-order-client/internal/utils"
	"group-order-client/pkg/response"

	"go.uber.org/zap"
)

// fetchReceipt asks the backend for the receipt. On failure the notice is
// already set and the caller is sent back to the order.
func (h *Handler) fetchReceipt(w http.ResponseWriter, r *http.Request) (*session.Controller, *backend.Receipt, bool) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return nil, nil, false
	}
	res := ctrl.Dispatch(r.Context(), session.GenerateReceipt{})
	if !res.OK() || res.Receipt == nil {
		redirect(w, r, "/")
		return nil, nil, false
	}
	rec := *res.Receipt
	rec.Timestamp = utils.InTimezone(rec.Timestamp, h.Config.DisplayTimezone)
	return ctrl, &rec, true
}

func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctrl, rec, ok := h.fetchReceipt(w, r)
	if !ok {
		return
	}
	h.render(w, "receipt", pageData{
		View:           pageView(ctrl, r),
		Receipt:        rec,
		ArchiveEnabled: h.Archiver != nil,
	})
}

func (h *Handler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.fetchReceipt(w, r)
	if !ok {
		return
	}
	body, err := receipt.RenderPDF(*rec)
	if err != nil {
		h.Logger.Error("receipt pdf failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate receipt")
		return
	}

	filename := fmt.Sprintf("receipt_%s.pdf", sanitizeFilename(rec.OrderPIN))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) ArchiveReceipt(w http.ResponseWriter, r *http.Request) {
	if h.Archiver == nil {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Receipt archive is not configured")
		return
	}
	ctrl, rec, ok := h.fetchReceipt(w, r)
	if !ok {
		return
	}
	url, err := h.Archiver.Archive(r.Context(), *rec)
	if err != nil {
		ctrl.Flash(session.NoticeError, "Failed to save receipt. Please try again.")
	} else {
		ctrl.Flash(session.NoticeInfo, "Receipt saved: "+url)
	}
	redirect(w, r, "/receipt")
}
