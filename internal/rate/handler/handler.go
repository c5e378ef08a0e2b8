package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tcmbrates/internal/domain"

	"github.com/sirupsen/logrus"
)

type Validator interface {
	NormalizeCode(raw string) (string, error)
	BuyKind(raw string) (domain.RateKind, error)
	SellKind(raw string) (domain.RateKind, error)
	KnownCodes() []string
	Names() map[string]string
}

type RateService interface {
	LookupBuy(ctx context.Context, code string, kind domain.RateKind) (float64, error)
	LookupSell(ctx context.Context, code string, kind domain.RateKind) (float64, error)
	Snapshot(ctx context.Context) (domain.RateTable, error)
}

type Handler struct {
	validator Validator
	service   RateService
}

func NewRateHandler(validator Validator, service RateService) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeServiceError maps service errors to responses; fields are logged for unexpected ones.
func writeServiceError(w http.ResponseWriter, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrUnknownCurrencyCode):
		writeError(w, http.StatusNotFound, "currency not published")
	case errors.Is(err, domain.ErrUnknownRateType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConnectionFailed), errors.Is(err, domain.ErrMalformedSourceDocument):
		logrus.WithError(err).WithFields(fields).Warn("rate source unavailable")
		writeError(w, http.StatusBadGateway, "rate source unavailable")
	default:
		msg := "ups, couldn't get rates this time"
		logrus.WithError(err).WithFields(fields).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}
