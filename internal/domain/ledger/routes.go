package ledger

import "github.com/go-chi/chi/v5"

// Routes returns admin ledger routes. The caller mounts them behind the
// admin credential gate.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/transactions", h.ListTransactions)

	r.Route("/ledger/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/filters", h.UpdateFilters)
			r.Post("/next", h.NextPage)
			r.Post("/previous", h.PreviousPage)
			r.Put("/page", h.SetPage)
			r.Get("/export", h.Export)
		})
	})

	return r
}
