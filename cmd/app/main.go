package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appLogger := newLogger(config.LogLevel)
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.Config{
		ServiceName:   "marketplace",
		Endpoint:      config.OTelEndpoint,
		Insecure:      true,
		SamplingRatio: config.OTelSamplingRatio,
	}, appLogger)
	if err != nil {
		log.Fatalf("Error initialising tracing: %v", err)
	}

	if err = migrations.Up(config.DSN()); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(config, gormDB, appLogger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e, err := newWebServer(app, appLogger)
	if err != nil {
		log.Fatalf("Error building web server: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			appLogger.Error("HTTP server stopped", "error", startErr)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	if err = shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Tracing shutdown failed", "error", err)
	}
	if err = app.Close(); err != nil {
		appLogger.Error("Closing connections failed", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(config.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.DBConnMaxLifetime)

	return db, nil
}

func newWebServer(app *cmd.CompositionRoot, appLogger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	metrics := httpadapter.NewMetrics("marketplace")

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			appLogger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		if err := app.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "Unhealthy")
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/api/v1/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", servers.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/api/v1/openapi.yaml")))

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := httpadapter.RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e.Use(validator)
	servers.RegisterHandlers(e, app.CreateHTTPServer())

	return e, nil
}
