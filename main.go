package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ruman-Islam/doctors-portal-server/config"
	"github.com/Ruman-Islam/doctors-portal-server/handlers"
	"github.com/Ruman-Islam/doctors-portal-server/notify"
	"github.com/Ruman-Islam/doctors-portal-server/payments"
	"github.com/Ruman-Islam/doctors-portal-server/routes"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, cfg.DBURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()
	log.Info().Msg("connected to MongoDB")

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	sender := notify.NewSendGridSender(cfg.SendGridKey, cfg.EmailSender)
	mailer := notify.NewDispatcher(sender, log.Logger)
	defer mailer.Close()

	h := handlers.New(db.Stores(), mailer, payments.NewStripe(cfg.StripeKey), cfg.JWTSecret, log.Logger)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.Default())
	routes.Register(router, h)

	log.Info().Str("port", cfg.Port).Msg("doctors portal server is running")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func initLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().
			Str("service", "doctors-portal").
			Logger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "doctors-portal").
		Logger()
}
