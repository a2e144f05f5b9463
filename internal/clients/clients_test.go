package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/cart"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// newStubServer answers every request with status and body and records
// what it received.
func newStubServer(t *testing.T, status int, body string) (*Client, <-chan recordedRequest) {
	t.Helper()
	ch := make(chan recordedRequest, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		ch <- recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(b),
		}
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient("cafeteria-api", srv.URL, &http.Client{Timeout: 5 * time.Second}), ch
}

func TestListAvailableIsAnonymous(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK,
		`[{"id":"m1","name":"Latte","description":"milk","price":3.5,"category":"cafe","available":true}]`)

	items, err := NewCatalogClient(c).ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3.50", items[0].Price.String())

	req := <-reqs
	assert.Equal(t, "/public/menu", req.Path)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestCredentialAndCorrelationIDArePropagated(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `[]`)

	ctx := middleware.WithCorrelationID(context.Background(), "cid-1")
	_, err := NewCatalogClient(c).ListAll(ctx, "tok")
	require.NoError(t, err)

	req := <-reqs
	assert.Equal(t, "/private/menu", req.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Equal(t, "cid-1", req.Header.Get(middleware.HeaderCorrelationID))
}

func TestCatalogMutations(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `{"id":"m9","name":"Mocha","price":4}`)
	cc := NewCatalogClient(c)
	d := menu.Draft{Name: "Mocha", Description: "choc", Price: money.MustParse("4"), Category: "cafe", Available: true}

	item, err := cc.Create(context.Background(), d, "tok")
	require.NoError(t, err)
	assert.Equal(t, "m9", item.ID)
	req := <-reqs
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"name":"Mocha","description":"choc","price":4.00,"category":"cafe","available":true}`, req.Body)

	_, err = cc.Update(context.Background(), "m9", d, "tok")
	require.NoError(t, err)
	req = <-reqs
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/private/menu/m9", req.Path)

	require.NoError(t, cc.Delete(context.Background(), "m9", "tok"))
	req = <-reqs
	assert.Equal(t, http.MethodDelete, req.Method)
}

func TestDeleteHandlesNoContent(t *testing.T) {
	c, _ := newStubServer(t, http.StatusNoContent, "")
	require.NoError(t, NewCatalogClient(c).Delete(context.Background(), "m1", "tok"))
}

func TestNon2xxIsRemoteFailure(t *testing.T) {
	c, _ := newStubServer(t, http.StatusForbidden, `{"message":"not allowed"}`)

	_, err := NewOrderClient(c).ListAll(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteFailure))

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Equal(t, "not allowed", re.Message)
	assert.Equal(t, "cafeteria-api", re.Service)
}

func TestRemoteErrorRefused(t *testing.T) {
	tests := map[int]bool{
		0:                              false,
		http.StatusBadRequest:          true,
		http.StatusUnauthorized:        false,
		http.StatusForbidden:           false,
		http.StatusNotFound:            true,
		http.StatusConflict:            true,
		http.StatusUnprocessableEntity: true,
		http.StatusInternalServerError: false,
		http.StatusBadGateway:          false,
	}
	for code, want := range tests {
		assert.Equal(t, want, (&RemoteError{StatusCode: code}).Refused(), "status %d", code)
	}
}

func TestTransportErrorIsRemoteFailure(t *testing.T) {
	c := NewClient("cafeteria-api", "http://127.0.0.1:1", &http.Client{Timeout: time.Second})
	_, err := NewCatalogClient(c).ListAvailable(context.Background())
	assert.ErrorIs(t, err, ErrRemoteFailure)
}

func TestOrdersAreNormalizedAtTheBoundary(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `[
		{"id":"o1","customerName":"Ana","status":"EN_PROGRESO","total":7,
		 "items":[{"id":"i1","menuItemId":"m1","menuItem":{"name":"Latte"},"quantity":2,"price":3.5}],
		 "createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-01T10:05:00Z"},
		{"id":"o2","status":"on_hold"}
	]`)

	orders, err := NewOrderClient(c).ListMine(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "/private/orders/my", (<-reqs).Path)
	assert.Equal(t, order.StatusInProgress, orders[0].Status)
	assert.Equal(t, "EN_PROGRESO", orders[0].RawStatus)
	assert.Equal(t, "Latte", orders[0].Items[0].MenuItemName)
	assert.Equal(t, "7.00", orders[0].Items[0].Subtotal().String())
	assert.Equal(t, order.StatusUnknown, orders[1].Status)
	assert.Equal(t, "on_hold", orders[1].RawStatus)
}

func TestSubmitSendsCartLines(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusCreated, `{"id":"o7","status":"PENDIENTE","total":3.5}`)
	crt := cart.New(cart.WithIDGenerator(func() string { return "l1" }))
	_, err := crt.AddItem(menu.Item{ID: "m1", Name: "Latte", Price: money.MustParse("3.50")}, 1, "sin azúcar")
	require.NoError(t, err)

	o, err := NewOrderClient(c).Submit(context.Background(), crt.Lines(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "o7", o.ID)
	assert.Equal(t, order.StatusPending, o.Status)

	req := <-reqs
	assert.Equal(t, "/private/orders", req.Path)
	assert.JSONEq(t, `{"items":[{"id":"l1","menuItemId":"m1","menuItemName":"Latte","quantity":1,"price":3.50,"notes":"sin azúcar"}]}`, req.Body)
}

func TestSetOrderStatusSendsExternalVocabulary(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `{"id":"o1","status":"EN_PROGRESO","updatedAt":"2024-05-01T10:05:00Z"}`)

	o, err := NewOrderClient(c).SetOrderStatus(context.Background(), "o1", order.StatusInProgress, "tok")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, order.StatusInProgress, o.Status)

	req := <-reqs
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/private/orders/o1/status", req.Path)
	assert.JSONEq(t, `{"status":"EN_PROGRESO"}`, req.Body)
}

func TestSetOrderStatusWithoutBody(t *testing.T) {
	c, _ := newStubServer(t, http.StatusNoContent, "")
	o, err := NewOrderClient(c).SetOrderStatus(context.Background(), "o1", order.StatusCancelled, "tok")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestUsers(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `[{"id":"u1","email":"b@cafe.com","roles":["barista"]}]`)
	uc := NewUserClient(c)

	list, err := uc.ListBaristas(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	req := <-reqs
	assert.Equal(t, "/private/users", req.Path)
	assert.Equal(t, "role=barista", req.RawQuery)

}

func TestCreateBarista(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusCreated, `{"id":"u2","email":"new@cafe.com","roles":["barista"]}`)

	acc, err := NewUserClient(c).CreateBarista(context.Background(), "new@cafe.com", "pw", "tok")
	require.NoError(t, err)
	assert.Equal(t, "u2", acc.ID)
	assert.Equal(t, []string{"barista"}, acc.Roles)

	req := <-reqs
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/private/users", req.Path)
	assert.JSONEq(t, `{"email":"new@cafe.com","password":"pw"}`, req.Body)
}

func TestSyncUser(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `{"id":"u1","email":"ana@cafe.com"}`)

	require.NoError(t, NewUserClient(c).SyncUser(context.Background(), "tok"))
	req := <-reqs
	assert.Equal(t, "/api/me", req.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusOK, `[]`)
	prefixed := NewClient(c.Name, c.BaseURL.String()+"/v1/", c.HTTP)

	_, err := NewCatalogClient(prefixed).ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v1/public/menu", (<-reqs).Path)
}

func TestHealthProbe(t *testing.T) {
	c, reqs := newStubServer(t, http.StatusServiceUnavailable, "")
	res := HealthProbe{Name: "cafeteria-api", Client: c, Path: "/public/menu"}.Check(context.Background())
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Empty(t, (<-reqs).Header.Get("Authorization"))

	down := NewClient("down", "http://127.0.0.1:1", c.HTTP)
	res = HealthProbe{Name: "down", Client: down, Path: "/"}.Check(context.Background())
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
}

func TestCopyHeadersDropsHopByHop(t *testing.T) {
	dst := http.Header{}
	copyHeaders(dst, http.Header{"Connection": {"close"}, "Accept": {"application/json"}, "Te": {"trailers"}})
	assert.Equal(t, http.Header{"Accept": {"application/json"}}, dst)
}
