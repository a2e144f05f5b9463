package clients

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/cart"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// Submit creates an order from the cart lines and returns the created order.
func (oc *OrderClient) Submit(ctx context.Context, lines []cart.Line, credential string) (*order.Order, error) {
	var w orderWire
	body := struct {
		Items []cart.Line `json:"items"`
	}{Items: lines}
	if err := oc.c.doJSON(ctx, http.MethodPost, "/private/orders", "", credential, body, &w); err != nil {
		return nil, err
	}
	o := w.toOrder()
	return &o, nil
}

// ListMine lists the caller's own orders.
func (oc *OrderClient) ListMine(ctx context.Context, credential string) ([]order.Order, error) {
	return oc.list(ctx, "/private/orders/my", credential)
}

// ListAll lists every order. Staff only on the remote side.
func (oc *OrderClient) ListAll(ctx context.Context, credential string) ([]order.Order, error) {
	return oc.list(ctx, "/private/orders", credential)
}

func (oc *OrderClient) list(ctx context.Context, path, credential string) ([]order.Order, error) {
	var ws []orderWire
	if err := oc.c.doJSON(ctx, http.MethodGet, path, "", credential, nil, &ws); err != nil {
		return nil, err
	}
	out := make([]order.Order, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toOrder())
	}
	return out, nil
}

// SetOrderStatus asks the service to move an order to target. The returned
// order is nil when the service answered without a body.
func (oc *OrderClient) SetOrderStatus(ctx context.Context, orderID string, target order.Status, credential string) (*order.Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: target.External()}

	var w *orderWire
	if err := oc.c.doJSON(ctx, http.MethodPut, "/private/orders/"+url.PathEscape(orderID)+"/status", "", credential, body, &w); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	o := w.toOrder()
	return &o, nil
}

// orderWire is the order as the service sends it. Status stays a raw string
// until toOrder normalizes it.
type orderWire struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	UserID        string          `json:"userId"`
	CustomerEmail string          `json:"customerEmail"`
	Items         []orderItemWire `json:"items"`
	Total         money.Money     `json:"total"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type orderItemWire struct {
	ID           string      `json:"id"`
	MenuItemID   string      `json:"menuItemId"`
	MenuItemName string      `json:"menuItemName"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
	Notes        string      `json:"notes"`
	MenuItem     *struct {
		Name string `json:"name"`
	} `json:"menuItem"`
}

func (w orderWire) toOrder() order.Order {
	items := make([]order.Item, 0, len(w.Items))
	for _, it := range w.Items {
		name := it.MenuItemName
		if it.MenuItem != nil && it.MenuItem.Name != "" {
			name = it.MenuItem.Name
		}
		items = append(items, order.Item{
			ID:           it.ID,
			MenuItemID:   it.MenuItemID,
			MenuItemName: name,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Notes:        it.Notes,
		})
	}

	return order.Order{
		ID:            w.ID,
		CustomerID:    w.CustomerID,
		CustomerName:  w.CustomerName,
		UserID:        w.UserID,
		CustomerEmail: w.CustomerEmail,
		Items:         items,
		Total:         w.Total,
		Status:        order.Normalize(w.Status),
		RawStatus:     w.Status,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
