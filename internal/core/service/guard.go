package service

import "github.com/horarios/admin-console/internal/core/domain"

// Authorize decides whether the identity in state may enter a route that
// requires one of roles. An empty role set admits any identity.
func Authorize(state domain.SessionState, roles []string) domain.Decision {
	if state.Loading {
		return domain.DecisionDefer
	}
	if state.Identity == nil {
		return domain.DecisionRedirectLogin
	}
	if len(roles) == 0 {
		return domain.DecisionAllow
	}
	if !state.Identity.HasRole() {
		return domain.DecisionRedirectUnauthorized
	}
	for _, r := range roles {
		if r == state.Identity.Rol.Name {
			return domain.DecisionAllow
		}
	}
	return domain.DecisionRedirectUnauthorized
}
