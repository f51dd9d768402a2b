package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/cafe-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/cafe-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/cafe-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/cafe-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/cafe-backend/internal/infrastructure/minio"
	"github.com/DRSN-tech/cafe-backend/internal/infrastructure/rabbitmq"
	s3Repo "github.com/DRSN-tech/cafe-backend/internal/repository/minio"
	"github.com/DRSN-tech/cafe-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/cafe-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/cafe-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/clients"
	"github.com/DRSN-tech/cafe-backend/pkg/closer"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/DRSN-tech/cafe-backend/pkg/metrics"
	"github.com/DRSN-tech/cafe-backend/pkg/postgres"
	"github.com/DRSN-tech/cafe-backend/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const (
	initTimeout        = 10 * time.Second
	shutdownTimeout    = 10 * time.Second
	archiveWaitTimeout = 5 * time.Second
	topicTimeout       = 10 * time.Second
)

// App владеет всеми ресурсами приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	outbox  *kafka.OutboxWorker
	reports *minioInfra.MinioInfrastructure

	// отменяется после ожидания фоновых загрузок отчётов
	archiveCtx    context.Context
	archiveCancel context.CancelFunc
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(2 * time.Second),
	}
	a.archiveCtx, a.archiveCancel = context.WithCancel(context.Background())

	if err := a.init(); err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.archiveCancel()
		if closeErr := a.closer.Close(closeCtx); closeErr != nil {
			logger.Warnf("failed to release resources after init error: %v", closeErr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	// === PostgreSQL ===
	db, err := initPGDB(ctx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.AddSimple("postgres", db.Close)

	txManager := tr.NewManager(db.Pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl())
	stockRepo := pgdb.NewStockRepo(db.Pool, pgdbConv.NewStockConverterImpl())
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverterImpl())
	mailHistoryRepo := pgdb.NewMailHistoryRepo(db.Pool, pgdbConv.NewMailHistoryConverterImpl())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverterImpl(), a.cfg.Outbox.ProcessingLease)

	// === Redis ===
	redisClient := clients.NewRedisClient(a.cfg.Redis, a.logger)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	if err := redisClient.Ping(ctx); err != nil {
		return err
	}
	cacheRepo := redis.NewCacheRepo(redisClient.Client, redisConv.NewProductInfoConverterImpl(), a.cfg.Redis, a.logger)

	// === MinIO ===
	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return err
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName, a.logger); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.reports = minioInfra.NewMinioInfrastructure(s3Repo.NewReportRepo(minioClient), a.cfg.Minio, a.logger, a.archiveCtx)

	// === Kafka ===
	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return err
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		// топик мог быть создан автоматически брокером, outbox всё равно повторит отправку
		a.logger.Warnf("failed to ensure kafka topic: %v", err)
	}

	// === RabbitMQ ===
	rabbitClient, err := clients.NewRabbitMQClient(ctx, a.cfg.RabbitMQ, a.logger)
	if err != nil {
		return err
	}
	a.closer.Add("rabbitmq", func(context.Context) error { return rabbitClient.Close() })
	mailClient := rabbitmq.NewMailClient(rabbitClient.Channel, a.cfg.RabbitMQ, a.logger)

	// === Use cases ===
	productUC := usecase.NewProductUC(productRepo, cacheRepo, txManager, a.logger)
	orderUC := usecase.NewOrderUC(productRepo, stockRepo, orderRepo, outboxRepo, producer, txManager, a.logger)
	stockUC := usecase.NewStockUC(productRepo, stockRepo, a.logger)
	mailUC := usecase.NewMailUC(mailClient, mailHistoryRepo, a.logger)
	statisticsUC := usecase.NewOrderStatisticsUC(orderRepo, mailUC, a.reports, a.cfg.Mail.FromAddress, a.logger)

	a.outbox = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, a.cfg.Outbox, a.cfg.Db.DSN())

	// === Delivery ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger, metrics.NewServerMetrics("http", reg), a.cfg.Http.SwaggerURL).Init(v1Http.UseCases{
		Product:    productUC,
		Order:      orderUC,
		Stock:      stockUC,
		Mail:       mailUC,
		Statistics: statisticsUC,
	})
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices()

	return nil
}

// Run запускает серверы и outbox-воркер и блокируется до сигнала остановки или ошибки сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.outbox.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			return e.Wrap("http server", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			return e.Wrap("grpc server", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Infof("Stopping gracefully...")
		return a.shutdown()
	})

	err := g.Wait()
	if err != nil {
		a.logger.Errorf(err, "Application stopped with error")
	} else {
		a.logger.Infof("Application shutdown complete")
	}
	return err
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if err := a.httpSrv.Stop(ctx); err != nil {
		errs = append(errs, e.Wrap("http shutdown", err))
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.logger.Warnf("gRPC server shutdown timeout")
		} else {
			errs = append(errs, e.Wrap("grpc shutdown", err))
		}
	}

	a.outbox.Stop()
	a.logger.Infof("Outbox worker stopped")

	archiveCtx, archiveCancel := context.WithTimeout(ctx, archiveWaitTimeout)
	if err := a.reports.WaitForArchive(archiveCtx); err != nil {
		a.logger.Warnf("Report archive did not finish before shutdown: %v", err)
	}
	archiveCancel()
	a.archiveCancel()

	if err := a.closer.Close(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
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
