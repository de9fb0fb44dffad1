package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gyanvix/employee-admin/internal/api"
	"github.com/gyanvix/employee-admin/internal/config"
	"github.com/gyanvix/employee-admin/internal/exchange/producer"
	employeerepo "github.com/gyanvix/employee-admin/internal/repository/employee"
	employeesvc "github.com/gyanvix/employee-admin/internal/service/employee"
	"github.com/gyanvix/employee-admin/internal/web"
	"github.com/gyanvix/employee-admin/library/pg"
	"github.com/gyanvix/employee-admin/library/yamlreader"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := MustNewConfig(parseFlags())

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	views, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("template init failed")
	}

	var audit employeesvc.AuditProducer
	if cfg.Kafka.Enabled() {
		auditProducer, err := initAuditProducer(cfg.Kafka)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer init failed")
		}
		defer func() { _ = auditProducer.Close() }()

		audit = auditProducer
	} else {
		log.Warn().Msg("kafka bootstrap not configured, audit events disabled")
	}

	employeeRepo := employeerepo.NewRepository(pgClient.Pool())
	employeeService := employeesvc.NewService(employeeRepo, audit, log.Logger)

	apiService := api.NewService(api.ServiceDeps{
		Port:        cfg.HTTP.Port.Value,
		Development: cfg.App.Development(),
		Employees:   employeeService,
		DB:          pgClient.Pool(),
		Views:       views,
	})

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP server exited with error")

			return err
		}

		log.Info().Msg("HTTP server stopped")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initAuditProducer(kafkaConfig config.KafkaConfig) (*producer.EmployeeProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer([]string{kafkaConfig.Bootstrap.Value}, sCfg)
	if err != nil {
		return nil, err
	}

	return producer.NewEmployeeProducer(
		sp,
		producer.Config{
			Topic:  kafkaConfig.Topic.Value,
			Source: "employee-admin",
		},
		log.Logger,
	), nil
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)
	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("failed to read application config")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
