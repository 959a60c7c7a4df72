package main

import (
	"net/http"
	"os"
	"time"

	"hadron_scholar_backend/cmd/api/config"
	"hadron_scholar_backend/internal/api"
	"hadron_scholar_backend/internal/auth"
	"hadron_scholar_backend/internal/database"
	"hadron_scholar_backend/internal/ingest"
	"hadron_scholar_backend/internal/mailer"
	"hadron_scholar_backend/internal/scheduler"
	"hadron_scholar_backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var withScheduler bool

	rootCmd := &cobra.Command{
		Use:   "api",
		Short: "Hadron physics paper aggregation service",
		Long:  "Aggregates hadron physics papers from arXiv and journal RSS feeds and serves them over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(withScheduler)
		},
	}
	rootCmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "enable the daily email digest scheduler")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(withScheduler bool) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Init(cfg.DSN())
	if err != nil {
		return err
	}

	paperService := services.NewPaperService(db)
	userService := services.NewUserService(db)
	favoriteService := services.NewFavoriteService(db)

	tagger := ingest.NewTagger(cfg.Vocabulary)
	adapters := []ingest.Adapter{
		ingest.NewArxivAdapter(nil, cfg.ArxivCategories, cfg.ArxivKeywords),
	}
	var filterTerms []string
	if cfg.FilterHadron {
		filterTerms = cfg.HadronTerms
	}
	for _, feed := range cfg.JournalFeeds {
		adapters = append(adapters, ingest.NewJournalAdapter(feed, filterTerms))
	}
	pipeline := ingest.NewPipeline(
		paperService,
		tagger,
		adapters,
		time.Duration(cfg.LookbackDays)*24*time.Hour,
		cfg.MaxResults,
	)

	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
	})
	digestService := services.NewDigestService(paperService, userService, smtpMailer)

	if withScheduler {
		sched, err := scheduler.New(digestService, cfg.DigestHour)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupRoutes(r, paperService, favoriteService, userService, pipeline, cfg.JWTSecret)
	auth.SetupRoutes(r, userService, cfg.JWTSecret, cfg.TokenTTL)

	log.Info().Str("port", cfg.Port).Bool("scheduler", withScheduler).Msg("server starting")
	return r.Run(":" + cfg.Port)
}
