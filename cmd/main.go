package main

import (
	"context"
	"log"

	"nutritrack/config"
	"nutritrack/controllers"
	"nutritrack/routes"
	"nutritrack/services"
	"nutritrack/store"
	"nutritrack/utils"

	"github.com/go-redis/redis/v8"
)

// repository is the full persistence surface; both stores implement it.
type repository interface {
	services.MealRepository
	services.HabitRepository
	services.GoalRepository
	services.SettingsRepository
	services.UserRepository
	services.AlertRepository
	services.DeviceRepository
}

func main() {
	ctx := context.Background()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	catalog, err := services.NewCatalogService(services.DefaultCatalogSeed(), cfg.CatalogCacheSize)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	for _, d := range catalog.Drift() {
		log.Printf("catalog drift premade_meal=%d name=%q seeded=%+v derived=%+v",
			d.MealID, d.Name, d.Seeded, d.Derived)
	}

	repo := openStore(cfg)

	var push *services.PushService
	if cfg.SNSPlatformARN != "" {
		push, err = services.NewSNSPushService(ctx, repo, cfg.AWSRegion, cfg.SNSPlatformARN)
		if err != nil {
			log.Fatalf("sns: %v", err)
		}
	} else {
		push = services.NewPushService(repo, nil, "")
	}

	var mailer services.Mailer
	if cfg.SESEmail != "" {
		m, err := utils.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			log.Fatalf("ses: %v", err)
		}
		mailer = m
	}

	var photos controllers.PhotoUploader
	if cfg.S3Bucket != "" {
		up, err := utils.NewS3Uploader(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		photos = up
	}

	var recognition *services.RecognitionService
	if cfg.Rekognition {
		recognition, err = services.NewRekognitionService(ctx, cfg.AWSRegion, catalog)
		if err != nil {
			log.Fatalf("rekognition: %v", err)
		}
	}

	rt := services.NewRealtimeHub()
	alerts := services.NewAlertBus(repo, rt, push)
	settings := services.NewSettingsService(repo, push)
	goals := services.NewGoalService(repo, alerts)
	meals := services.NewMealService(repo, catalog, settings, alerts, rt)
	auth := services.NewAuthService(repo, settings, goals, mailer, []byte(cfg.JWTSecret), cfg.AdminEmails)

	var dev *controllers.DevController
	if cfg.AppEnv != "production" {
		dev = controllers.NewDevController(alerts)
	}

	r := routes.SetupRouter(routes.Deps{
		JWTSecret:  []byte(cfg.JWTSecret),
		Catalog:    controllers.NewCatalogController(catalog, services.NewMatcherService(catalog), recognition),
		Meals:      controllers.NewMealController(meals, photos),
		Habits:     controllers.NewHabitController(services.NewHabitService(repo)),
		Goals:      controllers.NewGoalController(goals),
		Settings:   controllers.NewSettingsController(settings),
		Auth:       controllers.NewAuthController(auth),
		Assistant:  controllers.NewAssistantController(services.NewAssistantService(repo, settings)),
		Admin:      controllers.NewAdminController(services.NewAdminService(repo, repo, repo), settings),
		Realtime:   controllers.NewRealtimeController(rt, alerts),
		Devices:    controllers.NewDeviceController(push),
		Dev:        dev,
		AdminCheck: settings,
	})

	log.Printf("nutritrack listening port=%s env=%s", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func openStore(cfg config.Config) repository {
	if !cfg.UseDatabase() {
		log.Printf("store=memory (no database configured)")
		return store.NewMemoryStore()
	}

	db := config.InitDB(cfg)
	var locker store.Locker = store.NewLocalLocker()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
		locker = store.NewRedisLocker(client, "nutritrack:lock:")
		log.Printf("store=%s locker=redis addr=%s", cfg.DBDriver, cfg.RedisAddr)
	} else {
		log.Printf("store=%s locker=local", cfg.DBDriver)
	}
	return store.NewGormStore(db, locker)
}
