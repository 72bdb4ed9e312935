package main

import (
	"context"
	"log/slog"
	"os"

	"parcel/config"
	"parcel/internal/delivery"
	"parcel/internal/delivery/http"
	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/router/handler"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/infra/auth"
	"parcel/internal/infra/firebase"
	logs "parcel/internal/infra/log"
	"parcel/internal/infra/maps"
	"parcel/internal/infra/notification"
	"parcel/internal/infra/persistence/firestore"
	"parcel/internal/infra/pubsub"
	"parcel/internal/infra/qrcode"
	"parcel/internal/infra/realtime"
	"parcel/internal/infra/schedule"
	"parcel/internal/infra/storage"
	"parcel/internal/scheduler"
	"parcel/internal/usecase"
	"parcel/internal/usecase/impl"

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
		firebase.NewApp,
		firebase.NewFirestoreClient,
		firebase.NewDatabaseClient,
		firebase.NewMessagingClient,
		schedule.NewRedisClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewOrderRepository,
			firestore.NewCourierRepository,
			firestore.NewDriverRepository,
			firestore.NewPricingRepository,
			firestore.NewUserRepository,
			firestore.NewPaymentMethodRepository,
			realtime.NewChatRepository,
			realtime.NewLocationRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewFirebaseVerifier,
			notification.NewFirebaseService,
			qrcode.NewQRCodeService,
			maps.NewClient,
			schedule.NewRedisQueue,
			newImageStore,
			newActivator,
		),
	)
}

// newImageStore opens the profile image bucket when storage is
// configured. The store is optional: without it oversized photos are
// rejected instead of offloaded.
func newImageStore(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (service.ImageStore, error) {
	if cfg.Storage == nil || cfg.Storage.BucketURL == "" {
		return nil, nil
	}

	store, closer, err := storage.NewBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return closer()
		},
	})

	return store, nil
}

// newActivator builds the scheduled-order activator with the
// configured lead time before the pickup instant.
func newActivator(
	orders repository.OrderRepository,
	queue service.ScheduleQueue,
	logger *slog.Logger,
	cfg *config.Config,
) *scheduler.Activator {
	return scheduler.NewActivator(orders, queue, logger, cfg.Scheduler.ActivationBuffer)
}

// newProfileService threads the inline photo size cap from config into
// the profile usecase.
func newProfileService(
	users repository.UserRepository,
	verifier service.AuthVerifier,
	tokens service.TokenService,
	hasher service.PasswordHasher,
	images service.ImageStore,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	maxInline := 1 << 20
	if cfg.Storage != nil && cfg.Storage.MaxInlineBytes > 0 {
		maxInline = cfg.Storage.MaxInlineBytes
	}

	return impl.NewProfileService(users, verifier, tokens, hasher, images, maxInline, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOrderService,
			impl.NewPricingService,
			impl.NewCourierService,
			impl.NewChatService,
			impl.NewTrackingService,
			impl.NewPaymentService,
			newProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCourierHandler,
			handler.NewOrderHandler,
			handler.NewPricingHandler,
			handler.NewChatHandler,
			handler.NewProfileHandler,
			handler.NewTrackingHandler,
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
