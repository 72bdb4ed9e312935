package main

import (
	"context"
	"log/slog"
	"os"

	"parcel/config"
	"parcel/internal/delivery"
	"parcel/internal/delivery/worker"
	"parcel/internal/delivery/worker/handler"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/infra/firebase"
	logs "parcel/internal/infra/log"
	"parcel/internal/infra/persistence/firestore"
	"parcel/internal/infra/schedule"
	"parcel/internal/scheduler"

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
		injectRepo(),
		injectService(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
			startDrainLoop,
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
		schedule.NewRedisClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewOrderRepository,
			firestore.NewOrderEventRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			schedule.NewRedisQueue,
			newActivator,
		),
	)
}

func newActivator(
	orders repository.OrderRepository,
	queue service.ScheduleQueue,
	logger *slog.Logger,
	cfg *config.Config,
) *scheduler.Activator {
	return scheduler.NewActivator(orders, queue, logger, cfg.Scheduler.ActivationBuffer)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startDrainLoop keeps popping due scheduled orders from the Redis
// queue until shutdown.
func startDrainLoop(lc fx.Lifecycle, activator *scheduler.Activator, cfg *config.Config) {
	loopCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go activator.RunDrainLoop(loopCtx, cfg.Scheduler.DrainInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()

			return nil
		},
	})
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
