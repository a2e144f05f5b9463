package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
)

// CatalogClient covers the menu endpoints of the remote service.
type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

// ListAvailable reads the public menu. No credential is sent.
func (cc *CatalogClient) ListAvailable(ctx context.Context) ([]menu.Item, error) {
	var items []menu.Item
	if err := cc.c.doJSON(ctx, http.MethodGet, "/public/menu", "", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll reads the full menu, unavailable items included.
func (cc *CatalogClient) ListAll(ctx context.Context, credential string) ([]menu.Item, error) {
	var items []menu.Item
	if err := cc.c.doJSON(ctx, http.MethodGet, "/private/menu", "", credential, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (cc *CatalogClient) Create(ctx context.Context, d menu.Draft, credential string) (menu.Item, error) {
	var item menu.Item
	err := cc.c.doJSON(ctx, http.MethodPost, "/private/menu", "", credential, d, &item)
	return item, err
}

func (cc *CatalogClient) Update(ctx context.Context, id string, d menu.Draft, credential string) (menu.Item, error) {
	var item menu.Item
	err := cc.c.doJSON(ctx, http.MethodPut, "/private/menu/"+url.PathEscape(id), "", credential, d, &item)
	return item, err
}

func (cc *CatalogClient) Delete(ctx context.Context, id, credential string) error {
	return cc.c.doJSON(ctx, http.MethodDelete, "/private/menu/"+url.PathEscape(id), "", credential, nil, nil)
}
