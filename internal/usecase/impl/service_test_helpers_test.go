package impl

import (
	"io"
	"log/slog"

	"campusmart/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Campus: &config.CampusConfig{
			Name:        "Test Campus",
			EmailSuffix: "@test.edu",
		},
		Checkout: &config.CheckoutConfig{
			DeliveryFee:      50,
			MaxCommitRetries: 3,
		},
	}
}
