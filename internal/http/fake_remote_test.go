package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

type remoteLine struct {
	ID           string      `json:"id"`
	MenuItemID   string      `json:"menuItemId"`
	MenuItemName string      `json:"menuItemName"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
	Notes        string      `json:"notes,omitempty"`
}

type remoteOrder struct {
	ID           string       `json:"id"`
	CustomerID   string       `json:"customerId"`
	CustomerName string       `json:"customerName"`
	Items        []remoteLine `json:"items"`
	Total        money.Money  `json:"total"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// fakeRemote is an in-memory stand-in for the cafeteria API.
type fakeRemote struct {
	mu sync.Mutex

	menu   []menu.Item
	orders []remoteOrder

	failSubmit   bool
	statusCalls  []string
	submitted    int
	publicReads  int
	lastAuthz    string
	syncedTokens int
}

func newFakeRemote(t *testing.T) (*fakeRemote, *httptest.Server) {
	t.Helper()
	f := &fakeRemote{
		menu: []menu.Item{
			{ID: "latte", Name: "Latte", Description: "Con leche", Price: money.MustParse("3.50"), Category: "Café", Available: true},
			{ID: "medialuna", Name: "Medialuna", Description: "De manteca", Price: money.MustParse("1.25"), Category: "Panadería", Available: true},
			{ID: "tarta", Name: "Tarta", Description: "De frutilla", Price: money.MustParse("4.00"), Category: "Postres", Available: false},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /public/menu", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.publicReads++
		f.reply(w, http.StatusOK, f.menu)
	})
	mux.HandleFunc("GET /private/menu", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, http.StatusOK, f.menu)
	}))
	mux.HandleFunc("POST /private/menu", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var it menu.Item
		_ = json.NewDecoder(r.Body).Decode(&it)
		it.ID = fmt.Sprintf("item-%d", len(f.menu)+1)
		f.menu = append(f.menu, it)
		f.reply(w, http.StatusCreated, it)
	}))
	mux.HandleFunc("PUT /private/menu/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var it menu.Item
		_ = json.NewDecoder(r.Body).Decode(&it)
		it.ID = r.PathValue("id")
		f.reply(w, http.StatusOK, it)
	}))
	mux.HandleFunc("DELETE /private/menu/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("POST /private/orders", f.authed(func(w http.ResponseWriter, r *http.Request) {
		if f.failSubmit {
			f.reply(w, http.StatusInternalServerError, map[string]string{"message": "db down"})
			return
		}
		var body struct {
			Items []remoteLine `json:"items"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		total := money.Zero
		for _, l := range body.Items {
			total = total.Add(l.Price.Mul(l.Quantity))
		}
		f.submitted++
		now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		o := remoteOrder{
			ID:           fmt.Sprintf("o-%d", f.submitted),
			CustomerID:   "cliente-1",
			CustomerName: "Ana",
			Items:        body.Items,
			Total:        total,
			Status:       "PENDIENTE",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		f.orders = append(f.orders, o)
		f.reply(w, http.StatusCreated, o)
	}))
	list := f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, http.StatusOK, f.orders)
	})
	mux.HandleFunc("GET /private/orders", list)
	mux.HandleFunc("GET /private/orders/my", list)
	mux.HandleFunc("PUT /private/orders/{id}/status", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.statusCalls = append(f.statusCalls, body.Status)
		for i := range f.orders {
			if f.orders[i].ID == r.PathValue("id") {
				if !order.Normalize(f.orders[i].Status).CanTransitionTo(order.Normalize(body.Status)) {
					f.reply(w, http.StatusConflict, map[string]string{"message": "invalid status transition"})
					return
				}
				f.orders[i].Status = body.Status
				f.orders[i].UpdatedAt = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
				f.reply(w, http.StatusOK, f.orders[i])
				return
			}
		}
		f.reply(w, http.StatusNotFound, map[string]string{"message": "no such order"})
	}))
	mux.HandleFunc("GET /private/users", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, http.StatusOK, []map[string]any{{"id": "b1", "email": "barista1@cafe.com", "roles": []string{"barista"}}})
	}))
	mux.HandleFunc("POST /private/users", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.reply(w, http.StatusCreated, map[string]any{"id": "b2", "email": body.Email, "roles": []string{"barista"}})
	}))
	mux.HandleFunc("GET /api/me", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.syncedTokens++
		w.WriteHeader(http.StatusNoContent)
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeRemote) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuthz = r.Header.Get("Authorization")
		if f.lastAuthz == "" {
			f.reply(w, http.StatusUnauthorized, map[string]string{"message": "no token"})
			return
		}
		h(w, r)
	}
}

func (f *fakeRemote) reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeRemote) setFailSubmit(v bool) {
	f.mu.Lock()
	f.failSubmit = v
	f.mu.Unlock()
}

func (f *fakeRemote) synced() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncedTokens
}

func (f *fakeRemote) snapshot() (statusCalls []string, submitted int, publicReads int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statusCalls...), f.submitted, f.publicReads
}
