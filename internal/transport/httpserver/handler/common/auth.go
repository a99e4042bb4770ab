package common

import (
	"net/http"

	"mealplanner/internal/domain/session"
	"mealplanner/internal/transport/httpserver/middleware"
)

type authMeResponse struct {
	UUID   string             `json:"uuid"`
	Email  string             `json:"email"`
	Groups []session.GroupRef `json:"groups"`
}

// AuthMe echoes the identity snapshot carried by the caller's token.
func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	groups := identity.Groups
	if groups == nil {
		groups = []session.GroupRef{}
	}
	writeJSON(w, http.StatusOK, authMeResponse{
		UUID:   identity.UUID,
		Email:  identity.Email,
		Groups: groups,
	})
}
