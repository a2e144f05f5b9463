package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/clients"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/http/dto"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
)

type MenuAdmin interface {
	Create(ctx context.Context, d menu.Draft, credential string) (menu.Item, error)
	Update(ctx context.Context, id string, d menu.Draft, credential string) (menu.Item, error)
	Delete(ctx context.Context, id, credential string) error
}

type BaristaAdmin interface {
	ListBaristas(ctx context.Context, credential string) ([]clients.Account, error)
	CreateBarista(ctx context.Context, email, password, credential string) (clients.Account, error)
}

// MenuInvalidator drops cached menu snapshots after a change.
type MenuInvalidator interface {
	Invalidate(ctx context.Context)
}

type AdminHandler struct {
	menu   MenuAdmin
	users  BaristaAdmin
	cache  MenuInvalidator
	logger *zap.Logger
}

// NewAdminHandler builds the handler; cache may be nil when no menu cache runs.
func NewAdminHandler(menuAdmin MenuAdmin, users BaristaAdmin, cache MenuInvalidator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{menu: menuAdmin, users: users, cache: cache, logger: logger}
}

func (h *AdminHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	id := middleware.GetIdentity(r.Context())

	item, err := h.menu.Create(r.Context(), d, id.Credential)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	h.invalidate(r.Context())
	writeJSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	id := middleware.GetIdentity(r.Context())

	item, err := h.menu.Update(r.Context(), chi.URLParam(r, "id"), d, id.Credential)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	h.invalidate(r.Context())
	writeJSON(w, http.StatusOK, item)
}

func (h *AdminHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	if err := h.menu.Delete(r.Context(), chi.URLParam(r, "id"), id.Credential); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	h.invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListBaristas(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	list, err := h.users.ListBaristas(r.Context(), id.Credential)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) CreateBarista(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBaristaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}
	id := middleware.GetIdentity(r.Context())

	acc, err := h.users.CreateBarista(r.Context(), req.Email, req.Password, id.Credential)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// readDraft decodes and validates the menu form, writing a 400 listing
// every invalid field when it does not pass.
func (h *AdminHandler) readDraft(w http.ResponseWriter, r *http.Request) (menu.Draft, bool) {
	var d menu.Draft
	if err := decodeJSON(w, r, &d); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return d, false
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)

	if err := d.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:         "invalid menu item",
			Fields:        fieldErrors(err),
			CorrelationID: middleware.GetCorrelationID(r.Context()),
		})
		return d, false
	}
	return d, true
}

func fieldErrors(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		out := []string{}
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func (h *AdminHandler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx)
	}
}
