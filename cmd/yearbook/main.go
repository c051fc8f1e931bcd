package main

import (
	"context"
	"log/slog"
	"os"

	"yearbook/config"
	"yearbook/internal/delivery"
	"yearbook/internal/delivery/api"
	"yearbook/internal/delivery/api/middleware"
	"yearbook/internal/delivery/api/router/handler"
	"yearbook/internal/domain/service"
	"yearbook/internal/infra/auth"
	"yearbook/internal/infra/feed"
	logs "yearbook/internal/infra/log"
	"yearbook/internal/infra/mail"
	"yearbook/internal/infra/persistence"
	"yearbook/internal/infra/pubsub"
	"yearbook/internal/infra/qrcode"
	"yearbook/internal/infra/storage"
	"yearbook/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
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
		persistence.New,
		feed.NewChangeFeed,
		pubsub.NewEventPublisher,
		storage.NewFileStorage,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewIdentityVerifier,
			mail.NewLogMailer,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil || cfg.QRCode.Size == 0 {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRosterService,
			impl.NewSessionService,
			impl.NewUploadService,
			impl.NewPageService,
			impl.NewDesignService,
			impl.NewSchoolService,
			impl.NewStorefrontService,
			impl.NewMessageService,
			impl.NewContactService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewMeHandler,
			handler.NewUploadHandler,
			handler.NewMessageHandler,
			handler.NewRosterHandler,
			handler.NewDesignHandler,
			handler.NewSchoolHandler,
			handler.NewStoreHandler,
			handler.NewContactHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
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

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
