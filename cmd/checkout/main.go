// Command checkout runs one payment attempt end to end against the
// simulated widget runtime and the mock gateway. It is a smoke harness for
// the buyer-side stack: cart persistence, widget readiness, tokenization
// and the charge itself. It needs no environment; everything runs
// in-process with the defaults a live deployment would start from.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/application/services"
	"github.com/ceras-workshop/storefront-gateway/internal/cart"
	"github.com/ceras-workshop/storefront-gateway/internal/checkout"
	"github.com/ceras-workshop/storefront-gateway/internal/config"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/widget"
)

const mountPointID = "card-container"

func main() {
	logger := config.LoggerConfig{Level: "info"}.NewLogger()
	slog.SetDefault(logger)

	dir, err := os.MkdirTemp("", "checkout-demo-")
	if err != nil {
		logger.Error("failed to create cart directory", "error", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	kv, err := cart.NewFileKV(dir)
	if err != nil {
		logger.Error("failed to open cart storage", "error", err)
		os.Exit(1)
	}
	store := cart.NewStore(kv)

	if err := store.Add(cart.Item{
		ID:       "ceramic-vase-terracotta",
		Name:     "Terracotta Ceramic Vase",
		Price:    45.00,
		Quantity: 1,
		Color:    "terracotta",
	}); err != nil {
		logger.Error("failed to seed cart", "error", err)
		os.Exit(1)
	}

	env := widget.NewSimEnvironment()
	env.CreateMountPoint(mountPointID)

	manager := widget.NewManager(env, env, "sandbox-sq0idb-demo", config.WidgetConfig{
		MountPollAttempts: 20,
		MountPollInterval: 100 * time.Millisecond,
		SettleDelay:       50 * time.Millisecond,
	}, logger)

	gateway := services.NewMockGateway(2000 * time.Millisecond)

	flow := checkout.NewFlow(
		checkout.WidgetTokenSource{Manager: manager},
		staticLocation{},
		gateway,
		store,
		logger,
	)

	result, err := flow.Submit(context.Background(), checkout.SubmitRequest{
		MountPointID: mountPointID,
		Customer: domain.CustomerInfo{
			Name:  "Cera Alvarez",
			Email: "cera@example.com",
			Phone: "555-0142",
		},
		Card: domain.CardInfo{
			Number:  "4111 1111 1111 1111",
			Expiry:  "12/27",
			CVV:     "111",
			ZipCode: "28801",
		},
		ShippingDollars: 8.99,
		TaxDollars:      7.19,
	})
	if err != nil {
		logger.Error("checkout failed", "error", err, "state", flow.State())
		os.Exit(1)
	}

	logger.Info("checkout complete",
		"state", flow.State(),
		"order_id", result.OrderID,
		"transaction_id", result.TransactionID,
		"status", result.Status,
	)

	items, err := store.Items()
	if err != nil {
		logger.Error("failed to re-read cart", "error", err)
		os.Exit(1)
	}
	logger.Info("cart after checkout", "items", len(items))
}

// staticLocation stands in for the merchant location lookup; the mock
// gateway never inspects it.
type staticLocation struct{}

func (staticLocation) Resolve(ctx context.Context) (*domain.LocationHandle, error) {
	return &domain.LocationHandle{ID: "L-DEMO", Name: "Demo Workshop", Status: domain.LocationStatusActive}, nil
}
