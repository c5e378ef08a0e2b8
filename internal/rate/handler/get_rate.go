package handler

import (
	"context"
	"net/http"

	"tcmbrates/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetRateResponse struct {
	Code  string  `json:"code" example:"USD"`
	Type  string  `json:"type" example:"ForexBuying"`
	Value float64 `json:"value" example:"31.4561"`
}

// GetBuyRate godoc
// @Summary Get buying rate
// @Description Buying rate of a currency per single unit, in TRY
// @Tags Rates
// @Produce json
// @Param code path string true "Currency code" example(USD)
// @Param type query string false "ForexBuying (default) or BanknoteBuying"
// @Success 200 {object} GetRateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{code}/buy [get]
func (h *Handler) GetBuyRate(w http.ResponseWriter, r *http.Request) {
	h.getRate(w, r, "GetBuyRate", h.validator.BuyKind, h.service.LookupBuy)
}

// GetSellRate godoc
// @Summary Get selling rate
// @Description Selling rate of a currency per single unit, in TRY
// @Tags Rates
// @Produce json
// @Param code path string true "Currency code" example(USD)
// @Param type query string false "ForexSelling (default) or BanknoteSelling"
// @Success 200 {object} GetRateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{code}/sell [get]
func (h *Handler) GetSellRate(w http.ResponseWriter, r *http.Request) {
	h.getRate(w, r, "GetSellRate", h.validator.SellKind, h.service.LookupSell)
}

type lookupFunc func(ctx context.Context, code string, kind domain.RateKind) (float64, error)

func (h *Handler) getRate(w http.ResponseWriter, r *http.Request, name string, parseKind func(string) (domain.RateKind, error), lookup lookupFunc) {
	code, err := h.validator.NormalizeCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := parseKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	value, err := lookup(r.Context(), code, kind)
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": name, "code": code, "type": kind.String()})
		return
	}

	writeJSON(w, http.StatusOK, GetRateResponse{
		Code:  code,
		Type:  kind.String(),
		Value: value,
	})
}
