package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/waqfpal/console/migrations"
	"github.com/waqfpal/console/modules/directory"
	"github.com/waqfpal/console/modules/notifications"
	"github.com/waqfpal/console/pkg/config"
	"github.com/waqfpal/console/pkg/httpserver"
	"github.com/waqfpal/console/pkg/logger"
	"github.com/waqfpal/console/pkg/mongo"
	"github.com/waqfpal/console/pkg/pg"
	"github.com/waqfpal/console/pkg/requestid"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"waqfpal-console"`

	// StorageDriver selects the persistence backend: postgres or mongodb.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"waqfpal"`

	HTTP httpserver.Config
}

// backend bundles the persistence layer picked at startup.
type backend struct {
	storage     notifications.Storage
	inbox       notifications.InboxStore
	directory   directory.Directory
	healthcheck func(context.Context) error
	close       func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Environment, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil && err != context.Canceled {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	be, err := newBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	stream := notifications.NewStreamDeliverer(notifications.WithStreamLogger(log))
	defer stream.Close()

	deliverer := notifications.MultiDeliverer{
		notifications.NewInboxDeliverer(be.inbox),
		stream,
	}

	service := notifications.NewService(be.storage, log)
	engine := notifications.NewEngine(be.storage, be.directory, deliverer, log)
	query := notifications.NewQuery(be.storage)
	inbox := notifications.NewInbox(be.inbox, be.storage)
	scheduler := notifications.NewScheduler(engine, be.storage, log)

	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(middleware.Recoverer)
	router.Mount("/notifications", notifications.NewRouter(service, engine, query, inbox, log,
		notifications.WithLiveStream(stream)).Handle())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := be.healthcheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx, router) })
	g.Go(func() error { return scheduler.Run(ctx) })

	return g.Wait()
}

func newBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	switch cfg.StorageDriver {
	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}

		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			pool.Close()
			return nil, err
		}

		return &backend{
			storage:     notifications.NewPGStorage(pool),
			inbox:       notifications.NewPGInboxStore(pool),
			directory:   directory.NewPGDirectory(pool),
			healthcheck: pg.Healthcheck(pool),
			close:       pool.Close,
		}, nil

	case "mongodb":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}

		client, err := mongo.New(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)

		return &backend{
			storage:     notifications.NewMongoStorage(db),
			inbox:       notifications.NewMongoInboxStore(db),
			directory:   directory.NewMongoDirectory(db),
			healthcheck: mongo.Healthcheck(client),
			close: func() {
				_ = client.Disconnect(context.Background())
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
