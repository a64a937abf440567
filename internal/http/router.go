package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Zchasse63/vercelpickle/internal/middleware"
)

type Deps struct {
	Catalog     *CatalogHandler
	Negotiation *NegotiationHandler
	Shipment    *ShipmentHandler
	Comparison  *ComparisonHandler
	Order       *OrderHandler

	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CorrelationID)
	if len(d.CORSAllowOrigins) > 0 {
		r.Use(middleware.CORS(d.CORSAllowOrigins))
	}

	r.Get("/health", health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", d.Catalog.ListProducts)
		r.Get("/{productId}", d.Catalog.GetProduct)
		r.Put("/{productId}", d.Catalog.UpsertProduct)
	})

	r.Route("/api/negotiations", func(r chi.Router) {
		r.Post("/", d.Negotiation.Start)
		r.Get("/{negotiationId}", d.Negotiation.Get)
		r.Post("/{negotiationId}/messages", d.Negotiation.SendMessage)
		r.Post("/{negotiationId}/offers", d.Negotiation.SendOffer)
		r.Post("/{negotiationId}/offers/{offerId}/accept", d.Negotiation.AcceptOffer)
		r.Post("/{negotiationId}/offers/{offerId}/reject", d.Negotiation.RejectOffer)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", d.Order.ListOrders)
		r.Get("/{orderId}", d.Order.GetOrder)

		r.Route("/{orderId}/shipment", func(r chi.Router) {
			r.Post("/", d.Shipment.CreatePlan)
			r.Get("/", d.Shipment.GetPlan)
			r.Post("/destinations", d.Shipment.AddDestination)
			r.Put("/destinations/{destinationId}", d.Shipment.UpdateDestination)
			r.Delete("/destinations/{destinationId}", d.Shipment.RemoveDestination)
			r.Put("/destinations/{destinationId}/items/{itemId}", d.Shipment.Allocate)
			r.Get("/items/{itemId}/remaining", d.Shipment.RemainingQuantity)
			r.Post("/complete", d.Shipment.Complete)
		})
	})

	r.Route("/api/buyers/{buyerId}/comparison", func(r chi.Router) {
		r.Get("/", d.Comparison.Matrix)
		r.Post("/items", d.Comparison.Add)
		r.Delete("/items/{productId}", d.Comparison.Remove)
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
