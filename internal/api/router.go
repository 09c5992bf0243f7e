package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/chainvoice/backend/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.Health)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Route("/invoices", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(mw.APIKeyAuth)
				r.Post("/", h.CreateInvoice)
			})

			r.Get("/pending", h.PendingInvoices)
			r.Get("/completed", h.CompletedInvoices)
			r.Put("/{invoiceID}/payment", h.RecordPayment)
		})

		r.Get("/user/{recipientAddress}/invoices", h.InvoicesByRecipient)
	})

	return mux
}
