package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/folionet/folionet/internal/config"
	"github.com/folionet/folionet/internal/infrastructure/providers"
	"github.com/folionet/folionet/internal/infrastructure/repository"
	"github.com/folionet/folionet/internal/present/rest"
	"github.com/folionet/folionet/internal/present/rest/middleware"
	"github.com/folionet/folionet/internal/service"
	"github.com/folionet/folionet/internal/usecase"
)

func main() {
	path := "config/config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	conf, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = providers.MigrateDatabase(db)
	if err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := providers.NewRedis(conf.Server)

	userRepo := repository.NewUserRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	signal := service.NewSignalService(rdb)

	var cache usecase.ListingCache
	if conf.Server.MemcachedAddr != "" {
		mc := providers.NewMemcache(conf.Server.MemcachedAddr)
		cache = service.NewListingCache(mc, conf.Server.ListingCacheTTL)
	}

	var resolver usecase.ProtectedDataResolver
	if conf.Server.VerifyProtectedData && conf.Server.DataProtectorGateway != "" {
		resolver = providers.NewDataProtectorClient(conf.Server.DataProtectorGateway)
	}

	authUC := usecase.NewAuthUsecase(userRepo, conf.Marketplace.Registration)
	investmentUC := usecase.NewInvestmentUsecase(investmentRepo, cache, resolver, signal)
	purchaseUC := usecase.NewPurchaseUsecase(purchaseRepo, investmentRepo, cache, signal)
	transactionUC := usecase.NewTransactionUsecase(transactionRepo)

	authService := service.NewAuthService(conf.Marketplace, rdb)
	authMiddleware := middleware.NewAuthMiddleware(authService, conf.Server.RequireProof)

	handler := rest.NewHandler(authUC, investmentUC, purchaseUC, transactionUC, authService, signal)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
		e.Use(otelecho.Middleware("folionet"))
	}

	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(":8000"))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("folionet")),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shutdown tracer provider", slog.String("error", err.Error()))
		}
	}
	return cleanup, nil
}
