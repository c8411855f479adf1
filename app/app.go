package app

import (
	"context"
	"net"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shareit/shareit-service/config"
	"github.com/shareit/shareit-service/internal/events"
	"github.com/shareit/shareit-service/internal/handler"
	"github.com/shareit/shareit-service/internal/repository"
	"github.com/shareit/shareit-service/internal/server"
	"github.com/shareit/shareit-service/internal/service"
	"github.com/shareit/shareit-service/migrations"
	"github.com/shareit/shareit-service/pkg/kafka"
	"github.com/shareit/shareit-service/pkg/logger"
	"github.com/shareit/shareit-service/pkg/postgres"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "shareit")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo := repository.NewRepository(db, log)

	var pub events.Publisher = events.Noop{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close() //nolint:errcheck
		pub = events.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	}

	svc := service.NewService(repo, repo, repo, repo, repo, pub, log)
	h := handler.New(svc, svc, svc, svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Debug("Graceful shutdown")
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
