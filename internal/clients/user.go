package clients

import (
	"context"
	"net/http"
	"net/url"
)

// Account is a user record as the remote service lists it. Roles stay raw
// strings; only the identity package interprets them.
type Account struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

type UserClient struct{ c *Client }

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func (uc *UserClient) ListBaristas(ctx context.Context, credential string) ([]Account, error) {
	var out []Account
	q := url.Values{"role": {"barista"}}.Encode()
	if err := uc.c.doJSON(ctx, http.MethodGet, "/private/users", q, credential, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UserClient) CreateBarista(ctx context.Context, email, password, credential string) (Account, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out Account
	err := uc.c.doJSON(ctx, http.MethodPost, "/private/users", "", credential, body, &out)
	return out, err
}

// SyncUser lets the service register or refresh the caller's account.
func (uc *UserClient) SyncUser(ctx context.Context, credential string) error {
	return uc.c.doJSON(ctx, http.MethodGet, "/api/me", "", credential, nil, nil)
}
