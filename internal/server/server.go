// Package server boots the catalog: config, logging, Mongo, Redis, the
// HTTP surface (REST + GraphQL + websocket stream) and the gRPC health
// endpoint. Everything is constructed explicitly and injected top-down;
// no package-global store handles.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/prakashraj/godown/app/controllers"
	"github.com/prakashraj/godown/app/events"
	appgraphql "github.com/prakashraj/godown/app/graphql"
	"github.com/prakashraj/godown/app/repositories"
	"github.com/prakashraj/godown/app/routes"
	"github.com/prakashraj/godown/app/services"
	"github.com/prakashraj/godown/config"
	"github.com/prakashraj/godown/pkg/cache"
	"github.com/prakashraj/godown/pkg/database"
	grpcserver "github.com/prakashraj/godown/pkg/grpc"
	"github.com/prakashraj/godown/pkg/logger"
	"github.com/prakashraj/godown/pkg/metrics"
	"github.com/prakashraj/godown/pkg/middleware"
	"github.com/prakashraj/godown/pkg/reqid"
	"github.com/prakashraj/godown/pkg/router"
	"github.com/prakashraj/godown/pkg/storage"
	"github.com/prakashraj/godown/pkg/ws"
)

const shutdownTimeout = 10 * time.Second

// Start runs the catalog server until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(ctx)
	cancel()
	if err != nil {
		return err
	}
	defer database.Disconnect(client)

	setupLogging(client)

	if err := cache.Connect(context.Background()); err != nil {
		logger.Warn("cache unavailable, running without report cache", "error", err)
	}
	defer cache.Close()

	if err := storage.Connect(context.Background()); err != nil {
		logger.Warn("storage: s3 disk disabled", "error", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	collection := client.Database(config.MongoDatabase()).Collection("products")
	repo := repositories.NewProductRepository(collection)
	publisher := events.NewPublisher(hub)
	catalog := services.NewCatalogService(repo, publisher)

	schema, err := appgraphql.NewSchema(catalog)
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.Register(r, routes.Deps{
		Products: controllers.NewProductsController(catalog),
		GraphQL:  appgraphql.Handler(schema),
		Hub:      hub,
		Events:   publisher,
	})

	grpcSrv, err := grpcserver.Start(config.GRPCPort(), func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog server listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// setupLogging re-runs logger setup with the async Mongo sink when
// LOG_COLLECTION is configured.
func setupLogging(client *mongo.Client) {
	name := config.LogCollection()
	if name == "" {
		return
	}
	col := client.Database(config.MongoDatabase()).Collection(name)
	logger.Setup(logger.NewMongoHandler(col))
}
