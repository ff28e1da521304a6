package runtime

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lendsafe/internal/app/router"
	"lendsafe/internal/pkg/cleanup"
	"lendsafe/internal/pkg/config"
	mongodb "lendsafe/internal/pkg/db/mongo"
	redisdb "lendsafe/internal/pkg/db/redis"
	"lendsafe/internal/pkg/kafka"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/notification"
	"lendsafe/internal/pkg/pubsub"
	borrowersRepo "lendsafe/internal/pkg/store/impl/borrowers"
	"lendsafe/internal/pkg/store/impl/counters"
	fraudalerts "lendsafe/internal/pkg/store/impl/fraud_alerts"
	loansRepo "lendsafe/internal/pkg/store/impl/loans"
	"lendsafe/internal/pkg/store/impl/notifications"
	"lendsafe/internal/pkg/store/impl/transactions"
	trustevents "lendsafe/internal/pkg/store/impl/trust_events"
	"lendsafe/internal/pkg/store/repository"
	"lendsafe/internal/service/borrowers"
	"lendsafe/internal/service/fraud"
	"lendsafe/internal/service/loans"
	"lendsafe/internal/service/sweeps"
	"lendsafe/internal/service/trustscore"

	goredis "github.com/redis/go-redis/v9"
)

var (
	connectMongoDB   = mongodb.ConnectToMongoDB
	connectRedisDB   = redisdb.ConnectToRedis
	newKafkaProducer = kafka.NewKafkaProducer
)

// App encapsulates application resources and lifecycle.
type App struct {
	Cfg             *config.AppConfig
	MongoClient     *mongodb.MongoClient
	RedisClient     *goredis.Client
	KafkaProducer   *kafka.KafkaProducer
	PubSubPublisher *pubsub.PubSubPublisher
	HTTPServer      *http.Server

	BorrowerService *borrowers.BorrowerService
	TrustScore      *trustscore.TrustScoreService
	LoanService     *loans.LoanService
	FraudService    *fraud.FraudService
	SweepService    *sweeps.SweepService

	transactionRepo *transactions.TransactionRepository
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromConfig()
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedLoadingConfiguration, err)
		return nil, err
	}
	logger.Init(cfg.Logging.LogLevel)

	mClient, err := connectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to MongoDB", err)
		return nil, err
	}

	if err := mongodb.EnsureIndexes(ctx, mClient.Database); err != nil {
		logger.CtxError(ctx, log_messages.ErrorEnsuringIndexes, err)
		return nil, err
	}

	rClient, err := connectRedisDB(ctx, cfg.Redis)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to Redis", err)
		return nil, err
	}

	kafkaProducer, err := newKafkaProducer(cfg.Kafka)
	if err != nil {
		logger.CtxError(ctx, "Failure in Kafka producer creation", err)
		return nil, err
	}

	pubsubPublisher, err := pubsub.NewPubSubPublisher(ctx, cfg.PubSub.ProjectID, cfg.PubSub.NotificationTopic)
	if err != nil {
		logger.CtxError(ctx, "Failure in PubSub publisher creation", err)
		return nil, err
	}

	app := &App{
		Cfg:             cfg,
		MongoClient:     mClient,
		RedisClient:     rClient,
		KafkaProducer:   kafkaProducer,
		PubSubPublisher: pubsubPublisher,
	}
	app.wireServices()

	return app, nil
}

// wireServices builds the repositories and services on top of the connected
// clients.
func (a *App) wireServices() {
	counterRepo := counters.NewCounterRepository(a.MongoClient)
	borrowerRepo := borrowersRepo.NewBorrowerRepository(a.MongoClient)
	loanRepo := loansRepo.NewLoanRepository(a.MongoClient)
	transactionRepo := transactions.NewTransactionRepository(a.MongoClient)
	eventRepo := trustevents.NewTrustEventRepository(a.MongoClient)
	alertRepo := fraudalerts.NewFraudAlertRepository(a.MongoClient)
	notificationRepo := notifications.NewNotificationRepository(a.MongoClient)

	trustScoreCache := repository.NewTrustScoreCache(
		repository.NewRedisStoreAdapter(a.RedisClient), a.Cfg.Redis.TrustScoreTTL)

	notifier := notification.NewNotificationService(notificationRepo, counterRepo, a.PubSubPublisher)

	a.TrustScore = trustscore.NewTrustScoreService(eventRepo, borrowerRepo, trustScoreCache)
	a.BorrowerService = borrowers.NewBorrowerService(borrowerRepo, counterRepo, trustScoreCache)
	a.FraudService = fraud.NewFraudService(loanRepo, alertRepo, counterRepo, a.TrustScore, notifier)
	a.LoanService = loans.NewLoanService(
		loanRepo, borrowerRepo, transactionRepo, counterRepo,
		a.TrustScore, a.FraudService, notifier, a.KafkaProducer,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		a.Cfg.Lending.PaymentRetryAttempts,
	)
	a.SweepService = sweeps.NewSweepService(loanRepo, eventRepo, a.TrustScore, notifier)
	a.transactionRepo = transactionRepo
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	engine := router.SetupRouter(ctx,
		a.BorrowerService, a.TrustScore, a.LoanService, a.FraudService, a.SweepService, a.transactionRepo)

	a.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxError(ctx, log_messages.ServerStartFailure, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.Shutdown(ctx)
	logger.CtxInfo(ctx, log_messages.ServerExiting)
	return nil
}

// Shutdown gracefully closes all resources with bounded timeouts.
func (a *App) Shutdown(ctx context.Context) {
	var publisher interface{ Close() error }
	if a.PubSubPublisher != nil {
		publisher = a.PubSubPublisher
	}
	cleanup.CleanupResources(ctx,
		publisher,
		a.KafkaProducer,
		a.MongoClient,
		a.RedisClient,
		a.HTTPServer,
	)
}
