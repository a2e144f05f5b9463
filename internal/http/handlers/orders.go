package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/clients"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/events"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/http/dto"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/session"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/view"
)

type OrderLister interface {
	ListMine(ctx context.Context, credential string) ([]order.Order, error)
	ListAll(ctx context.Context, credential string) ([]order.Order, error)
}

type OrdersHandler struct {
	orders    OrderLister
	service   *order.Service
	publisher events.Publisher
	logger    *zap.Logger
}

func NewOrdersHandler(orders OrderLister, service *order.Service, publisher events.Publisher, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, service: service, publisher: publisher, logger: logger}
}

func (h *OrdersHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.orders.ListMine, false)
}

func (h *OrdersHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.orders.ListAll, true)
}

// list refreshes the session's order board from the service.
func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request,
	fetch func(context.Context, string) ([]order.Order, error), staffView bool) {
	id := middleware.GetIdentity(r.Context())

	orders, err := fetch(r.Context(), id.Credential)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	st.Orders.Replace(orders)
	writeJSON(w, http.StatusOK, view.NewOrderCards(st.Orders.Orders(), staffView))
}

// UpdateStatus applies a staff transition to an order on the session's
// board. If the order is not on the board yet the board is refreshed first.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	orderID := chi.URLParam(r, "orderId")

	var req dto.StatusChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	target := order.Normalize(req.Status)
	if !target.IsKnown() {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}

	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	o := st.Orders.Find(orderID)
	if o == nil {
		orders, err := h.orders.ListAll(r.Context(), id.Credential)
		if err != nil {
			writeFailure(w, r, h.logger, err)
			return
		}
		st.Orders.Replace(orders)
		if o = st.Orders.Find(orderID); o == nil {
			writeFailure(w, r, h.logger, fmt.Errorf("%s: %w", orderID, errOrderNotFound))
			return
		}
	}

	from := o.Status
	if err := h.service.RequestTransition(r.Context(), o, target, id.Credential); err != nil {
		var re *clients.RemoteError
		if errors.As(err, &re) && re.Refused() {
			// The local copy is likely stale; the next attempt should see
			// what the service holds now.
			h.refreshBoard(r.Context(), st, id.Credential)
			h.logger.Info("order status change refused by service",
				zap.String("order_id", orderID),
				zap.Int("status_code", re.StatusCode),
				zap.String("message", re.Message),
			)
			writeError(w, r, http.StatusConflict, "order changed on the server, reload and try again")
			return
		}
		writeFailure(w, r, h.logger, err)
		return
	}

	meta := events.EnvelopeMetadata{CorrelationID: middleware.GetCorrelationID(r.Context())}
	if err := h.publisher.PublishOrderStatusChanged(r.Context(), o.ID, from, o.Status, id.User.ID, meta); err != nil {
		h.logger.Warn("publish OrderStatusChanged failed", zap.String("order_id", o.ID), zap.Error(err))
	}

	h.logger.Info("order status changed",
		zap.String("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(o.Status)),
		zap.String("by", id.User.ID),
	)
	writeJSON(w, http.StatusOK, view.NewOrderCard(*o, true))
}

// refreshBoard reloads the staff board. A failed reload keeps the old board.
func (h *OrdersHandler) refreshBoard(ctx context.Context, st *session.State, credential string) {
	orders, err := h.orders.ListAll(ctx, credential)
	if err != nil {
		h.logger.Warn("refresh order board failed", zap.Error(err))
		return
	}
	st.Orders.Replace(orders)
}
