package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-playground/validator/v10"

	"skills-platform-backend/config"
	v1 "skills-platform-backend/internal/delivery/http/v1"
	"skills-platform-backend/internal/repository/ai"
	"skills-platform-backend/internal/repository/elastic"
	"skills-platform-backend/internal/repository/postgres"
	"skills-platform-backend/internal/repository/redisrepo"
	"skills-platform-backend/internal/usecase"
	"skills-platform-backend/pkg/auth"
	"skills-platform-backend/pkg/database"
	"skills-platform-backend/pkg/email"
	"skills-platform-backend/pkg/logger"
	"skills-platform-backend/pkg/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting skills platform backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := redis.NewClient(redis.Config{
		URL:      cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		logger.Log.Error("Failed to build elasticsearch client", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	userSkillRepo := postgres.NewUserSkillRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	directionRepo := postgres.NewDirectionRepository(dbPool)
	salaryRepo := postgres.NewSalaryRepository(dbPool)
	countryRepo := postgres.NewCountryRepository(dbPool)
	cityRepo := postgres.NewCityRepository(dbPool)
	txManager := postgres.NewTxManager(dbPool)
	otpRepo := redisrepo.NewOTPRepository(redisClient)
	directionIndex := elastic.NewDirectionIndex(esClient)
	skillIndex := elastic.NewSkillIndex(esClient)

	emailService := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - OTP delivery will be unavailable")
	}

	recommender := ai.NewRecommender(ai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		Timeout:     time.Duration(cfg.OpenAITimeoutSeconds) * time.Second,
	})

	tokens := auth.NewManager(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLHours)*time.Hour,
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
	)

	validate := validator.New()
	otpTTL := time.Duration(cfg.OTPTTLMinutes) * time.Minute
	authUC := usecase.NewAuthUsecase(userRepo, otpRepo, emailService, tokens, validate, otpTTL)
	userUC := usecase.NewUserUsecase(userRepo, userSkillRepo, skillRepo, directionRepo, cityRepo, recommender, txManager, validate)
	directionUC := usecase.NewDirectionUsecase(directionRepo, salaryRepo, cityRepo, recommender, directionIndex, validate)
	skillUC := usecase.NewSkillUsecase(skillRepo, skillIndex, validate)
	locationUC := usecase.NewLocationUsecase(countryRepo, cityRepo, validate)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		DirectionUC: directionUC,
		SkillUC:     skillUC,
		LocationUC:  locationUC,
		Tokens:      tokens,
		Config:      cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
