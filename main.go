package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-showcase/config"
	"go-showcase/controllers"
	"go-showcase/logger"
	"go-showcase/middleware"
	"go-showcase/routes"
	"go-showcase/store"
	"go-showcase/utils"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("production", "info")
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.App.Env, cfg.App.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sentry error tracking
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.App.Env,
		}); err != nil {
			log.Error().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Connect to MongoDB
	client, err := store.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	var pictures utils.PictureStore = utils.InlinePictureStore{}
	if cfg.S3.Bucket != "" {
		s3Pictures, err := utils.NewS3PictureStore(ctx, cfg.S3.Bucket, cfg.S3.Prefix)
		if err != nil {
			return err
		}
		pictures = s3Pictures
	}

	emailService := utils.NewEmailService(cfg.Mail)
	if !emailService.Enabled() {
		log.Info().Msg("notification mail disabled")
	}

	users := store.NewUsers(db)
	products := store.NewProducts(db)
	categories := store.NewCategories(db)
	sessions := utils.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.CookieSecure)

	// Initialize controllers
	router := mux.NewRouter()
	routes.RegisterRoutes(router, middleware.AuthMiddleware(sessions, users), routes.Controllers{
		Users:      controllers.NewUserController(users, sessions, pictures, cfg.Auth.AdminSecret),
		Products:   controllers.NewProductController(products, categories),
		Categories: controllers.NewCategoryController(categories, products),
		Orders:     controllers.NewOrderController(store.NewOrders(db), emailService),
		Inquiries:  controllers.NewInquiryController(store.NewInquiries(db), emailService),
	})

	var handler http.Handler = middleware.RequestLogger(log)(router)
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	if cfg.Sentry.DSN != "" {
		handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)
	}
	handler = middleware.Recover(log)(handler)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
