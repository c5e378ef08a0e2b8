package handler

import "net/http"

type CurrencyResponse struct {
	Code string `json:"code" example:"USD"`
	Name string `json:"name" example:"ABD DOLARI"`
}

type GetCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// GetCurrencies godoc
// @Summary List currency names
// @Description Static reference table of currency codes and their Turkish names
// @Tags Rates
// @Produce json
// @Success 200 {object} GetCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	names := h.validator.Names()
	codes := h.validator.KnownCodes()
	res := GetCurrenciesResponse{Currencies: make([]CurrencyResponse, 0, len(codes))}
	for _, code := range codes {
		res.Currencies = append(res.Currencies, CurrencyResponse{Code: code, Name: names[code]})
	}
	writeJSON(w, http.StatusOK, res)
}
