package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/view"
)

// MenuReader is the public menu, possibly served from the cache.
type MenuReader interface {
	ListAvailable(ctx context.Context) ([]menu.Item, error)
}

// FullMenuReader lists every item, unavailable ones included.
type FullMenuReader interface {
	ListAll(ctx context.Context, credential string) ([]menu.Item, error)
}

type MenuHandler struct {
	public MenuReader
	full   FullMenuReader
	logger *zap.Logger
}

func NewMenuHandler(public MenuReader, full FullMenuReader, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{public: public, full: full, logger: logger}
}

// List serves the public menu. Staff may pass ?all=true to get the full
// listing, which is what the admin screen edits.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	if r.URL.Query().Get("all") == "true" {
		if !id.IsAuthenticated() {
			writeError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		if !id.IsStaff() {
			writeError(w, r, http.StatusForbidden, "insufficient role")
			return
		}
		items, err := h.full.ListAll(r.Context(), id.Credential)
		if err != nil {
			writeFailure(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, view.MenuCards(items, id, id.Has(identity.RoleAdmin)))
		return
	}

	items, err := h.public.ListAvailable(r.Context())
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.MenuCards(items, id, false))
}
