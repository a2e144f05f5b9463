package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/http/dto"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/view"
)

type UserSyncer interface {
	SyncUser(ctx context.Context, credential string) error
}

type MeHandler struct {
	users  UserSyncer
	logger *zap.Logger
}

func NewMeHandler(users UserSyncer, logger *zap.Logger) *MeHandler {
	return &MeHandler{users: users, logger: logger}
}

// Me describes the caller for the shell of the UI. Signed-in users are also
// registered with the remote service; a failed sync does not block the page.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	resp := dto.MeResponse{
		Authenticated: id.IsAuthenticated(),
		PrimaryRole:   id.PrimaryRole(),
		HomeRoute:     view.HomeRoute(id.PrimaryRole()),
		Nav:           view.Nav(id),
		CanOrder:      view.CanOrder(id),
	}

	if id.IsAuthenticated() {
		u := id.User
		resp.User = &u
		if err := h.users.SyncUser(r.Context(), id.Credential); err != nil {
			h.logger.Warn("user sync failed", zap.String("user_id", u.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
