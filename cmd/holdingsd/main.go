package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	pkgkafka "github.com/sharada0417/RanRevHoldings-sub000/pkg/kafka"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/observability"
	pkgpostgres "github.com/sharada0417/RanRevHoldings-sub000/pkg/postgres"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/usecase"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/infrastructure/clock"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/infrastructure/config"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/infrastructure/messaging"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/infrastructure/metrics"
	pgRepo "github.com/sharada0417/RanRevHoldings-sub000/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/sharada0417/RanRevHoldings-sub000/internal/presentation/grpc"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting holdings-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"timezone", loc.String(),
	)

	// Tracing and metrics.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	meterProvider, registry, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck
	recorder := metrics.NewRecorder(registry)

	// Database connection.
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		AppName:  cfg.ServiceName,
		TimeZone: loc.String(),
		MaxConns: int32(cfg.DB.MaxConns), //nolint:gosec // small configured value
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	dbCancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if version, dirty, err := pkgpostgres.MigrationVersion(dbCfg.DSN(), cfg.MigrationsDir); err == nil {
		logger.Info("schema ready", "version", version, "dirty", dirty)
	}

	// Infrastructure adapters.
	txManager := pkgpostgres.NewTxManager(pool)
	unitOfWork := pgRepo.NewTxManager(txManager)
	customerRepo := pgRepo.NewCustomerRepo(pool)
	brokerRepo := pgRepo.NewBrokerRepo(pool)
	assetRepo := pgRepo.NewAssetRepo(pool)
	investmentRepo := pgRepo.NewInvestmentRepo(pool, txManager, loc)
	customerLedger := pgRepo.NewCustomerPaymentLedger(pool)
	brokerLedger := pgRepo.NewBrokerPaymentLedger(pool, txManager)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		TLS:           cfg.Kafka.TLS,
		TLSCAFile:     cfg.Kafka.TLSCAFile,
	})
	if err != nil {
		logger.Error("failed to create kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)

	// Domain services.
	clk := clock.NewSystem(loc)
	accrual := service.NewAccrualEngine()
	commission := service.NewCommissionEngine()
	allocator := service.NewPaymentAllocator(accrual)
	reports := service.NewReportBuilder(accrual, commission, cfg.ArrearsWindowDays)

	// Use cases.
	useCases := grpcPresentation.UseCases{
		Originate: usecase.NewOriginateInvestmentUseCase(
			customerRepo, brokerRepo, assetRepo, investmentRepo, publisher, clk),
		RecordPayment: usecase.NewRecordCustomerPaymentUseCase(
			customerRepo, brokerRepo, assetRepo, investmentRepo, customerLedger, unitOfWork, allocator, publisher, clk),
		PayBroker: usecase.NewPayBrokerUseCase(
			brokerRepo, investmentRepo, brokerLedger, unitOfWork, commission, publisher, clk),
		InvestmentAccrual: usecase.NewGetInvestmentAccrualUseCase(investmentRepo, accrual, clk),
		CustomerPosition:  usecase.NewGetCustomerPositionUseCase(customerRepo, investmentRepo, accrual, reports, clk),
		BrokerCommission:  usecase.NewGetBrokerCommissionUseCase(brokerRepo, investmentRepo, commission),
		CustomerFlow:      usecase.NewCustomerFlowUseCase(customerRepo, investmentRepo, reports, clk),
		BrokerFlow:        usecase.NewBrokerFlowUseCase(brokerRepo, investmentRepo, reports),
		AssetFlow:         usecase.NewAssetFlowUseCase(assetRepo, investmentRepo, reports, clk),
		Dashboard:         usecase.NewDashboardUseCase(investmentRepo, customerLedger, brokerLedger, reports, clk),
		InvestmentHistory: usecase.NewInvestmentHistoryUseCase(investmentRepo, customerLedger, reports, clk),
		BrokerHistory:     usecase.NewBrokerHistoryUseCase(brokerRepo, investmentRepo, brokerLedger, reports),
	}

	// gRPC server.
	handler := grpcPresentation.NewHoldingsHandler(useCases, recorder, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, grpcPresentation.ServerOptions{
		TLSCertFile:     cfg.GRPC.TLSCertFile,
		TLSKeyFile:      cfg.GRPC.TLSKeyFile,
		TLSClientCAFile: cfg.GRPC.TLSClientCAFile,
		Reflection:      cfg.GRPC.Reflection,
		Interceptors:    []grpc.UnaryServerInterceptor{recorder.UnaryServerInterceptor()},
	}, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (probes and metrics).
	router := rest.NewRouter(rest.NewHealthHandler(cfg.ServiceName, pool, logger), metricsHandler)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("holdings-service stopped")
}
