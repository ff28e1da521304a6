package cleanup

import (
	"context"
	"net/http"
	"time"

	mongodb "lendsafe/internal/pkg/db/mongo"
	"lendsafe/internal/pkg/kafka"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func CleanupResources(
	ctx context.Context,
	pubsubPublisher interface{ Close() error },
	kafkaProducer *kafka.KafkaProducer,
	mongoClient *mongodb.MongoClient,
	redisClient *goredis.Client,
	server *http.Server,
) {
	logger.CtxInfo(ctx, log_messages.CleanupStarted)

	cleanupHTTPServer(server, ctx)
	cleanupPubSubResource(pubsubPublisher, ctx)
	cleanupKafkaResource(kafkaProducer, ctx)
	cleanupMongoResource(mongoClient, ctx)
	cleanupRedisResource(redisClient, ctx)

	logger.CtxInfo(ctx, log_messages.CleanupCompleted)
}

func cleanupPubSubResource(publisher interface{ Close() error }, ctx context.Context) {
	if publisher == nil {
		return
	}
	if err := publisher.Close(); err != nil {
		logger.CtxError(ctx, "Failed to close PubSub publisher", err)
	} else {
		logger.CtxInfo(ctx, "PubSub publisher closed successfully")
	}
}

func cleanupKafkaResource(kafkaProducer *kafka.KafkaProducer, ctx context.Context) {
	if kafkaProducer == nil {
		return
	}
	if err := kafkaProducer.Close(); err != nil {
		logger.CtxError(ctx, "Failed to close Kafka producer", err)
	} else {
		logger.CtxInfo(ctx, "Kafka producer closed successfully")
	}
}

func cleanupMongoResource(mongoClient *mongodb.MongoClient, ctx context.Context) {
	if mongoClient == nil || mongoClient.Client == nil {
		return
	}
	mongoCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Client.Disconnect(mongoCtx); err != nil {
		logger.CtxError(mongoCtx, "Failed to disconnect MongoDB client", err)
	} else {
		logger.CtxInfo(mongoCtx, "MongoDB client disconnected successfully")
	}
}

func cleanupRedisResource(redisClient *goredis.Client, ctx context.Context) {
	if redisClient == nil {
		return
	}
	if err := redisClient.Close(); err != nil {
		logger.CtxError(ctx, "Failed to close Redis client", err)
	} else {
		logger.CtxInfo(ctx, "Redis client closed successfully")
	}
}

func cleanupHTTPServer(server *http.Server, ctx context.Context) {
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.CtxError(shutdownCtx, log_messages.ServerForcedShutdown, err)
	} else {
		logger.CtxInfo(shutdownCtx, "HTTP server shut down successfully")
	}
}
