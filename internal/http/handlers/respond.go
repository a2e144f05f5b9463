package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/cart"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/clients"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/session"
)

var (
	errItemNotFound    = errors.New("menu item not found")
	errItemUnavailable = errors.New("menu item is not available")
	errEmptyCart       = errors.New("cart is empty")
	errOrderNotFound   = errors.New("order not found")
	errNoSession       = errors.New("no session")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	middleware.WriteError(w, r, status, msg)
}

// writeFailure maps err onto a status code. Remote details are logged,
// not echoed to the browser.
func writeFailure(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, r, http.StatusBadRequest, cart.ErrInvalidQuantity.Error())
	case errors.Is(err, order.ErrIllegalTransition):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, errItemUnavailable), errors.Is(err, errEmptyCart):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, errItemNotFound), errors.Is(err, errOrderNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, clients.ErrRemoteFailure):
		logger.Warn("remote call failed",
			zap.Error(err),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
		)
		writeError(w, r, http.StatusBadGateway, "cafeteria API request failed")
	default:
		logger.Error("request failed",
			zap.Error(err),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// lockedSession returns the caller's session state with its lock held.
func lockedSession(r *http.Request) (*session.State, error) {
	st := middleware.GetSession(r.Context())
	if st == nil {
		return nil, errNoSession
	}
	st.Lock()
	return st, nil
}
