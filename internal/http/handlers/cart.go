package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/cart"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/events"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/http/dto"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/view"
)

type OrderSubmitter interface {
	Submit(ctx context.Context, lines []cart.Line, credential string) (*order.Order, error)
}

type CartHandler struct {
	menu      MenuReader
	orders    OrderSubmitter
	publisher events.Publisher
	logger    *zap.Logger
}

func NewCartHandler(menuReader MenuReader, orders OrderSubmitter, publisher events.Publisher, logger *zap.Logger) *CartHandler {
	return &CartHandler{menu: menuReader, orders: orders, publisher: publisher, logger: logger}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	writeJSON(w, http.StatusOK, view.NewCart(st.Cart))
}

// AddItem looks the item up in the current menu so name and price come from
// the catalog, never from the browser.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.MenuItemID) == "" {
		writeError(w, r, http.StatusBadRequest, "menuItemId is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	items, err := h.menu.ListAvailable(r.Context())
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	item, ok := menu.Find(items, req.MenuItemID)
	if !ok {
		writeFailure(w, r, h.logger, fmt.Errorf("%s: %w", req.MenuItemID, errItemNotFound))
		return
	}
	if !item.Available {
		writeFailure(w, r, h.logger, fmt.Errorf("%s: %w", item.Name, errItemUnavailable))
		return
	}

	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	if _, err := st.Cart.AddItem(item, qty, strings.TrimSpace(req.Notes)); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewCart(st.Cart))
}

// UpdateItem changes quantity and/or notes. A quantity of zero or less
// removes the line; unknown line ids leave the cart as it is.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")

	var req dto.UpdateCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == nil && req.Notes == nil {
		writeError(w, r, http.StatusBadRequest, "quantity or notes is required")
		return
	}

	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	if req.Quantity != nil {
		if err := st.Cart.UpdateQuantity(lineID, *req.Quantity); err != nil {
			writeFailure(w, r, h.logger, err)
			return
		}
	}
	if req.Notes != nil {
		st.Cart.UpdateNotes(lineID, strings.TrimSpace(*req.Notes))
	}
	writeJSON(w, http.StatusOK, view.NewCart(st.Cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	st.Cart.RemoveItem(chi.URLParam(r, "lineId"))
	writeJSON(w, http.StatusOK, view.NewCart(st.Cart))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	st.Cart.Clear()
	writeJSON(w, http.StatusOK, view.NewCart(st.Cart))
}

// Checkout submits the cart as an order. The cart is only cleared once the
// service confirmed the order; on failure it is left exactly as it was.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	st, err := lockedSession(r)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	defer st.Unlock()

	if st.Cart.IsEmpty() {
		writeFailure(w, r, h.logger, errEmptyCart)
		return
	}

	created, err := h.orders.Submit(r.Context(), st.Cart.Lines(), id.Credential)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	st.Cart.Clear()

	meta := events.EnvelopeMetadata{CorrelationID: middleware.GetCorrelationID(r.Context())}
	if err := h.publisher.PublishOrderPlaced(r.Context(), created, meta); err != nil {
		h.logger.Warn("publish OrderPlaced failed", zap.String("order_id", created.ID), zap.Error(err))
	}

	h.logger.Info("order placed",
		zap.String("order_id", created.ID),
		zap.String("user_id", id.User.ID),
		zap.Stringer("total", created.Total),
	)
	writeJSON(w, http.StatusCreated, dto.CheckoutResponse{
		Order: view.NewOrderCard(*created, false),
		Cart:  view.NewCart(st.Cart),
	})
}
