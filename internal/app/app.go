package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/catalogsource"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/storefront/internal/infrastructure/minio"
	"github.com/DRSN-tech/storefront/internal/infrastructure/payment"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	redisConv "github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/DRSN-tech/storefront/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout     = 10 * time.Second
	cleanupWaitTimeout  = 5 * time.Second
	topicEnsureTimeout  = 10 * time.Second
	dependencyPingLimit = 10 * time.Second
)

// App связывает все слои витрины и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
	outboxWorker *kafka.OutboxWorker
	imagesInfra  *minioInfra.MinioInfrastructure

	// отменяется при остановке: прерывает фоновые задачи (очистка MinIO, outbox)
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	a := &App{
		cfg:      cfg,
		logger:   log,
		closer:   closer.NewCloser(0),
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	if err := a.init(); err != nil {
		bgCancel()
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.closer.Close(closeCtx); cerr != nil {
			log.Warnf("partial init cleanup: %v", cerr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	db, err := initPGDB(a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.AddFunc("postgres", db.Close)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", redisClient.Close)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), dependencyPingLimit)
	defer pingCancel()
	if err := redisClient.Ping(pingCtx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return err
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return err
	}
	if err := clients.EnsureBucket(pingCtx, minioClient, a.cfg.Minio.BucketName, minioInfra.ObjectKeyPrefix); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(topicEnsureTimeout); err != nil {
		// брокер может подняться позже: outbox дождётся его
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	// Репозитории
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{})
	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverter{})
	messageRepo := pgdb.NewContactMessageRepo(db.Pool, pgdbConv.ContactMessageConverter{})
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConverter{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{}, a.cfg.Kafka.OutboxLease)

	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConverter{}, a.cfg.Redis, a.logger)
	cartStorage := redis.NewCartStorage(redisClient, a.cfg.Cart)
	sessionRepo := redis.NewSessionRepo(redisClient)
	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)

	// Инфраструктура
	transactor := tr.NewTransactor(db.Pool)
	source := catalogsource.NewSource(productRepo, catalogsource.SampleProducts(), a.logger)
	gateway := payment.NewSimulatedGateway(a.cfg.Checkout.PaymentDelay, a.logger)
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.bgCtx)

	// Use cases
	catalogUC := usecase.NewCatalogUC(source, cacheRepo, a.cfg.Cart.PageSize, a.logger)
	cartUC := usecase.NewCartUC(cartStorage, catalogUC, a.cfg.Cart.KeyPrefix, a.logger)
	checkoutUC := usecase.NewCheckoutUC(cartUC, gateway, orderRepo, outboxRepo, transactor, a.logger)
	productUC := usecase.NewProductUC(productRepo, transactor, a.imagesInfra, cacheRepo, a.logger)
	contactUC := usecase.NewContactUC(messageRepo, a.logger)
	authUC := usecase.NewAuthUC(
		userRepo,
		sessionRepo,
		a.cfg.Auth.SuperAdminEmail,
		a.cfg.Auth.SessionTTL,
		a.cfg.Auth.BcryptCost,
		a.logger,
	)

	a.outboxWorker = kafka.NewOutboxWorker(
		outboxRepo,
		a.logger,
		producer,
		db.Dsn,
		pgdb.OutboxChannel,
		a.cfg.Kafka.OutboxBatchSize,
		a.cfg.Kafka.OutboxPollEvery,
	)

	// Доставка
	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(catalogUC, cartUC)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.cfg.Http.SwaggerURL, a.logger).Init(v1Http.UseCases{
		Catalog:  catalogUC,
		Cart:     cartUC,
		Checkout: checkoutUC,
		Products: productUC,
		Contact:  contactUC,
		Auth:     authUC,
	})
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

// Run запускает серверы и outbox и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	a.outboxWorker.Start(a.bgCtx)

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("gRPC server", err)
		}
	}()

	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("HTTP server", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// stop останавливает приём запросов, затем фоновые задачи, затем закрывает клиенты (LIFO).
func (a *App) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(ctx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		a.logger.Errorf(err, "gRPC server shutdown error")
	}

	a.outboxWorker.Stop()

	cleanupCtx, cleanupCancel := context.WithTimeout(ctx, cleanupWaitTimeout)
	defer cleanupCancel()
	if err := a.imagesInfra.WaitForCleanup(cleanupCtx); err != nil {
		a.logger.Warnf("MinIO cleanup did not finish before shutdown, some orphan objects may remain: %v", err)
	} else {
		a.logger.Infof("MinIO cleanup completed")
	}
	a.bgCancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("%v", err)
	}
}

// Migrate применяет или откатывает миграции без запуска серверов.
func Migrate(dbCfg *config.PGDBCfg, log logger.Logger, down int) error {
	db, err := postgres.Connect(dbCfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer db.Close()

	if down > 0 {
		return db.RollbackMigrations(log, down)
	}

	return db.RunMigrations(log)
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
