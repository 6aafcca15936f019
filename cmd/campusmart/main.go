package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"campusmart/config"
	"campusmart/internal/delivery"
	"campusmart/internal/delivery/http"
	"campusmart/internal/delivery/http/middleware"
	"campusmart/internal/delivery/http/router/handler"
	deliverymw "campusmart/internal/delivery/middleware"
	"campusmart/internal/domain/payment"
	"campusmart/internal/domain/service"
	"campusmart/internal/infra/auth/firebase"
	"campusmart/internal/infra/blob"
	"campusmart/internal/infra/cache"
	logs "campusmart/internal/infra/log"
	"campusmart/internal/infra/persistence/postgres"
	"campusmart/internal/infra/pubsub"
	"campusmart/internal/infra/qrcode"
	"campusmart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewShopRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewReviewRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newIdentityVerifier,
			newQRRenderer,
			newPaymentBuilder,
			cache.New,
			blob.New,
		),
		pubsub.Module,
	)
}

// newIdentityVerifier creates the Firebase token verifier.
func newIdentityVerifier(ctx context.Context, cfg *config.Config) (service.IdentityVerifier, error) {
	if cfg.Firebase == nil {
		return nil, fmt.Errorf("firebase configuration is required")
	}

	verifier, err := firebase.NewVerifier(ctx, cfg.Firebase)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity verifier: %w", err)
	}

	return verifier, nil
}

// newQRRenderer creates the QR renderer with dependency injection
func newQRRenderer(cfg *config.Config) service.QRRenderer {
	if cfg.QRCode == nil {
		return qrcode.NewRenderer(256, "M")
	}

	return qrcode.NewRenderer(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newPaymentBuilder creates the UPI instrument builder
func newPaymentBuilder(cfg *config.Config) *payment.Builder {
	template := ""
	if cfg.QRCode != nil {
		template = cfg.QRCode.TemplateURL
	}

	return payment.NewBuilder(template)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewShopService,
			impl.NewCatalogService,
			impl.NewCheckoutService,
			impl.NewOrderService,
			impl.NewReviewService,
			impl.NewStatsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
			deliverymw.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewShopHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewReviewHandler,
			handler.NewStatsHandler,
			handler.NewPaymentHandler,
			handler.NewUploadHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
