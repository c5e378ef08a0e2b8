package handler

import (
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

type RateEntryResponse struct {
	Code            string  `json:"code" example:"USD"`
	Name            string  `json:"name,omitempty" example:"ABD DOLARI"`
	ForexBuying     float64 `json:"forex_buying" example:"31.4561"`
	ForexSelling    float64 `json:"forex_selling" example:"31.5128"`
	BanknoteBuying  float64 `json:"banknote_buying" example:"31.4341"`
	BanknoteSelling float64 `json:"banknote_selling" example:"31.5601"`
}

type GetSnapshotResponse struct {
	PublicationDate string              `json:"publication_date" example:"04.03.2024"`
	ExpiresAt       time.Time           `json:"expires_at" example:"2024-03-05T15:30:00+03:00"`
	Rates           []RateEntryResponse `json:"rates"`
}

// GetSnapshot godoc
// @Summary Current rate table
// @Description All rates of the current publication, sorted by currency code
// @Tags Rates
// @Produce json
// @Success 200 {object} GetSnapshotResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates [get]
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetSnapshot"})
		return
	}

	res := GetSnapshotResponse{
		PublicationDate: table.PublicationDate,
		ExpiresAt:       table.ExpiresAt,
		Rates:           make([]RateEntryResponse, 0, len(table.Entries)),
	}
	for _, code := range slices.Sorted(maps.Keys(table.Entries)) {
		e := table.Entries[code]
		res.Rates = append(res.Rates, RateEntryResponse{
			Code:            code,
			Name:            e.Name,
			ForexBuying:     e.ForexBuying,
			ForexSelling:    e.ForexSelling,
			BanknoteBuying:  e.BanknoteBuying,
			BanknoteSelling: e.BanknoteSelling,
		})
	}
	writeJSON(w, http.StatusOK, res)
}
