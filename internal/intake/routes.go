package intake

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/sessions/{sessionID}", func(r chi.Router) {
		r.Post("/turn", h.HandleTurn)
		r.Put("/roles", h.SetRoles)
		r.Put("/org", h.SaveOrg)
		r.Get("/state", h.GetState)
	})
}
