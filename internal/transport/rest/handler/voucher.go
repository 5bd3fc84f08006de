package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"lyro/internal/service"
	"lyro/internal/transport/rest/middleware"
)

// VoucherHandler handles voucher endpoints
type VoucherHandler struct {
	voucherSvc *service.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherSvc *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherSvc: voucherSvc}
}

// RedeemRequest is the request body for redeeming a voucher
type RedeemRequest struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

// Generate handles POST /v1/admin/vouchers
//
// Quantity and duration may arrive as numbers or strings; anything that
// does not parse falls back to the defaults (1 voucher, 1 month).
func (h *VoucherHandler) Generate(w http.ResponseWriter, r *http.Request) {
	quantity, durationMonths := parseGenerateRequest(r)

	vouchers, err := h.voucherSvc.Generate(r.Context(), quantity, durationMonths, middleware.GetAdminID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"vouchers": vouchers})
}

// List handles GET /v1/admin/vouchers
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.voucherSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"vouchers": vouchers})
}

// Redeem handles POST /v1/vouchers/redeem
func (h *VoucherHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	voucher, err := h.voucherSvc.Redeem(r.Context(), strings.TrimSpace(req.Code), req.UserID)
	switch {
	case errors.Is(err, service.ErrVoucherNotFound):
		writeError(w, http.StatusNotFound, "voucher not found")
		return
	case errors.Is(err, service.ErrVoucherNotActive):
		writeError(w, http.StatusConflict, "voucher is not active")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, voucher)
}

// parseGenerateRequest tolerates JSON bodies and form posts with scalar or
// string-typed numeric fields
func parseGenerateRequest(r *http.Request) (quantity, durationMonths int) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Quantity       interface{} `json:"quantity"`
			DurationMonths interface{} `json:"durationMonths"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			return asInt(req.Quantity), asInt(req.DurationMonths)
		}
		return 0, 0
	}

	if err := r.ParseForm(); err != nil {
		return 0, 0
	}
	quantity, _ = strconv.Atoi(r.PostForm.Get("quantity"))
	durationMonths, _ = strconv.Atoi(r.PostForm.Get("durationMonths"))
	return quantity, durationMonths
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	default:
		return 0
	}
}
