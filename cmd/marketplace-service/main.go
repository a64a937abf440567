package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
	"github.com/Zchasse63/vercelpickle/internal/comparison"
	"github.com/Zchasse63/vercelpickle/internal/config"
	"github.com/Zchasse63/vercelpickle/internal/db"
	"github.com/Zchasse63/vercelpickle/internal/events"
	httpapi "github.com/Zchasse63/vercelpickle/internal/http"
	"github.com/Zchasse63/vercelpickle/internal/negotiation"
	"github.com/Zchasse63/vercelpickle/internal/order"
	"github.com/Zchasse63/vercelpickle/internal/sequence"
	"github.com/Zchasse63/vercelpickle/internal/shipment"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	sqlDB, err := db.OpenSQL(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db open: %v", err)
	}
	defer sqlDB.Close()

	catalogRepo := catalog.NewPostgresRepository(pool)
	orderRepo := order.NewRepository(sqlDB)
	sequenceRepo := sequence.NewRepository(sqlDB)

	// --- AMQP ---
	conn := events.MustDialRabbit(cfg.AMQPURL)
	defer conn.Close()

	publisher, err := events.NewPublisher(conn, sequenceRepo)
	if err != nil {
		logger.Fatalf("events publisher: %v", err)
	}
	defer publisher.Close()

	// --- Services ---
	negotiationSvc := negotiation.NewService(
		negotiation.TimerScheduler{},
		cfg.SellerReplyDelay,
		&negotiationCompleter{orders: orderRepo, publisher: publisher, logger: logger},
		logger,
	)
	shipmentSvc := shipment.NewService(orderRepo, &shipmentCompleter{publisher: publisher})
	comparisonSvc := comparison.NewService(catalogRepo)

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Catalog:          httpapi.NewCatalogHandler(catalogRepo),
		Negotiation:      httpapi.NewNegotiationHandler(catalogRepo, negotiationSvc),
		Shipment:         httpapi.NewShipmentHandler(shipmentSvc),
		Comparison:       httpapi.NewComparisonHandler(comparisonSvc),
		Order:            httpapi.NewOrderHandler(orderRepo),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}

// negotiationCompleter turns an accepted negotiation into an order and emits
// NegotiationCompleted.
type negotiationCompleter struct {
	orders    order.Repository
	publisher *events.Publisher
	logger    *log.Logger
}

func (c *negotiationCompleter) NegotiationCompleted(ctx context.Context, outcome negotiation.Outcome) error {
	o := &order.Order{
		BuyerID:       outcome.BuyerID,
		SellerID:      outcome.SellerID,
		NegotiationID: outcome.NegotiationID,
		Items: []order.Item{{
			ItemID:   outcome.ProductID,
			Name:     outcome.ProductName,
			Quantity: outcome.Quantity,
			Unit:     outcome.Unit,
			Price:    outcome.FinalPrice,
		}},
		TotalAmount: outcome.FinalPrice * float64(outcome.Quantity),
		Status:      order.StatusNegotiated,
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.orders.Create(ctx, o); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	ev := events.NegotiationCompleted{
		NegotiationID: outcome.NegotiationID,
		ProductID:     outcome.ProductID,
		BuyerID:       outcome.BuyerID,
		SellerID:      outcome.SellerID,
		OrderID:       o.ID,
		FinalPrice:    outcome.FinalPrice,
		Quantity:      outcome.Quantity,
		DeliveryDate:  outcome.DeliveryDate,
	}
	if err := c.publisher.PublishNegotiationCompleted(ctx, ev, events.EnvelopeMetadata{}); err != nil {
		// The order exists either way; the event is best effort.
		c.logger.Printf("publish NegotiationCompleted: %v", err)
	}
	return nil
}

// shipmentCompleter emits ShipmentPlanned when a plan is confirmed.
type shipmentCompleter struct {
	publisher *events.Publisher
}

func (c *shipmentCompleter) ShipmentPlanned(ctx context.Context, plan shipment.Plan) error {
	ev := events.ShipmentPlanned{OrderID: plan.OrderID}
	for _, d := range plan.Destinations {
		pd := events.PlannedDestination{
			DestinationID: d.ID,
			Location:      d.Location,
			Date:          d.Date,
			TimeSlot:      d.TimeSlot,
		}
		for _, it := range d.Items {
			pd.Items = append(pd.Items, events.PlannedItem{ItemID: it.ItemID, Quantity: it.Quantity})
		}
		ev.Destinations = append(ev.Destinations, pd)
	}
	return c.publisher.PublishShipmentPlanned(ctx, ev, events.EnvelopeMetadata{})
}
