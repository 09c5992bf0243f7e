package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chainvoice/backend/internal/api"
	"github.com/chainvoice/backend/internal/clients/mailer"
	"github.com/chainvoice/backend/internal/repository"
	"github.com/chainvoice/backend/internal/service"
	"github.com/chainvoice/backend/pkg/broker"
	"github.com/chainvoice/backend/pkg/config"
	"github.com/chainvoice/backend/pkg/job"
	"github.com/chainvoice/backend/pkg/logger"
	"github.com/chainvoice/backend/pkg/postgres"
)

const (
	ReadTimeout  = 3 * time.Second
	WriteTimeout = 2 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxConns:     cfg.Postgres.MaxConn,
		PingAttempts: cfg.Postgres.PingAttempts,
		PingInterval: cfg.Postgres.PingInterval,
	})
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	mailClient := mailer.New(cfg.Mailer)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.PaymentsTopic)
	defer producer.Close()

	s := service.New(repo, mailClient, producer, cfg.Invoicing.CollectionAddress, cfg.Invoicing.BaseURL)

	{
		job.NewService().
			RegisterJob("audit invoice balances", cfg.Invoicing.AuditInterval, s.AuditBalances).
			Start(ctx)
	}

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(cfg.HTTP.APIKeyEnabled, cfg.HTTP.APIKey)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
