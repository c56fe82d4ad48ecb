package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"cyco-backend/internal/config"
	"cyco-backend/internal/controllers"
	"cyco-backend/internal/mail"
	"cyco-backend/internal/middleware"
	"cyco-backend/internal/payments"
	"cyco-backend/internal/repository"
	"cyco-backend/internal/routes"
	"cyco-backend/internal/storage"
	"cyco-backend/internal/token"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "cyco-backend")
	log := middleware.Logger

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	client, err := repository.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	db := client.Database(cfg.MongoDB)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("index creation failed")
	}
	cancel()

	media, err := storage.New(context.Background(), cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioPublicEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage initialization failed")
	}

	tokens := token.NewService(cfg.TokenSecret)
	mailer := mail.NewSMTPSender(cfg.MailSenderName, cfg.MailSenderAddress, cfg.MailSenderPassword, cfg.SMTPHost, cfg.SMTPPort)
	intents := payments.NewStripeCreator(cfg.PaymentSecretKey)

	userRepo := repository.NewUserRepo(db)
	forumRepo := repository.NewForumRepo(db)
	reportRepo := repository.NewReportRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	handlers := &routes.Handlers{
		Users:    controllers.NewUserHandler(userRepo, tokens),
		Wishlist: controllers.NewWishlistHandler(userRepo),
		Catalog: controllers.NewCatalogHandler(
			repository.NewCatalogRepo(db, "movies"),
			repository.NewCatalogRepo(db, "series"),
			repository.NewCatalogRepo(db, "liveTV"),
			media,
		),
		Forum:    controllers.NewForumHandler(forumRepo, reportRepo),
		Payments: controllers.NewPaymentHandler(paymentRepo, intents, mailer, cfg.AdminAlertAddress),
		Logs: controllers.NewLogsHandler(
			repository.NewLogRepo(db, "events"),
			repository.NewLogRepo(db, "feedback"),
			repository.NewLogRepo(db, "history"),
			repository.NewLogRepo(db, "manageSubscriptions"),
		),
	}

	app := fiber.New(fiber.Config{
		AppName: "CYCO Engine",
	})
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowCredentials: true,
	}))

	routes.Setup(app, handlers, tokens, userRepo)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("cyco engine listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("database disconnect failed")
	}
}
