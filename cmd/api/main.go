package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medregistry/hospital-api/config"
	"github.com/medregistry/hospital-api/internal/email"
	authHandler "github.com/medregistry/hospital-api/internal/handler/auth"
	doctorHandler "github.com/medregistry/hospital-api/internal/handler/doctor"
	healthHandler "github.com/medregistry/hospital-api/internal/handler/health"
	hospitalHandler "github.com/medregistry/hospital-api/internal/handler/hospital"
	patientHandler "github.com/medregistry/hospital-api/internal/handler/patient"
	searchHandler "github.com/medregistry/hospital-api/internal/handler/search"
	uploadHandler "github.com/medregistry/hospital-api/internal/handler/upload"
	userHandler "github.com/medregistry/hospital-api/internal/handler/user"
	"github.com/medregistry/hospital-api/internal/middleware"
	"github.com/medregistry/hospital-api/internal/repository/postgres"
	"github.com/medregistry/hospital-api/internal/router"
	authService "github.com/medregistry/hospital-api/internal/service/auth"
	doctorService "github.com/medregistry/hospital-api/internal/service/doctor"
	hospitalService "github.com/medregistry/hospital-api/internal/service/hospital"
	patientService "github.com/medregistry/hospital-api/internal/service/patient"
	searchService "github.com/medregistry/hospital-api/internal/service/search"
	uploadService "github.com/medregistry/hospital-api/internal/service/upload"
	userService "github.com/medregistry/hospital-api/internal/service/user"
	"github.com/medregistry/hospital-api/pkg/auth"
	"github.com/medregistry/hospital-api/pkg/logger"
	"github.com/medregistry/hospital-api/pkg/messaging"
	"github.com/medregistry/hospital-api/pkg/messaging/redis"
	"github.com/medregistry/hospital-api/pkg/metrics"
	"github.com/medregistry/hospital-api/pkg/security"
)

func main() {
	appLogger := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	}
	defer broker.Close()

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	emailSvc := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	verifier := authService.NewGoogleVerifier(cfg.Google.ClientID)
	m := metrics.NewMetrics("hospital_api")

	authSvc := authService.NewService(userRepo, jwtSvc, hasher, verifier, emailSvc)
	userSvc := userService.NewService(userRepo, hasher, jwtSvc, emailSvc, broker)
	hospitalSvc := hospitalService.NewService(hospitalRepo, userRepo, broker)
	doctorSvc := doctorService.NewService(doctorRepo, hospitalRepo, broker)
	patientSvc := patientService.NewService(patientRepo, userRepo, broker)
	searchSvc := searchService.NewService(userRepo, doctorRepo, hospitalRepo)
	uploadSvc := uploadService.NewService(cfg.Upload.Dir, userRepo, doctorRepo, hospitalRepo, m)

	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo)
	loginLimiter := middleware.NewLoginLimiter(cfg.RateLimit.LoginAttempts,
		time.Duration(cfg.RateLimit.LoginWindowMin)*time.Minute)

	r := router.New(router.Config{
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           middleware.DefaultCORSConfig(),
	}, m)
	r.Register(
		authHandler.NewHandler(authSvc, loginLimiter, authMW, cfg.Google.ClientID, m),
		userHandler.NewHandler(userSvc, authMW),
		hospitalHandler.NewHandler(hospitalSvc, authMW),
		doctorHandler.NewHandler(doctorSvc, authMW),
		patientHandler.NewHandler(patientSvc),
		searchHandler.NewHandler(searchSvc, authMW, m),
		uploadHandler.NewHandler(uploadSvc, authMW),
	)
	healthHandler.NewHandler(db).RegisterRoutes(r.Engine())

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
