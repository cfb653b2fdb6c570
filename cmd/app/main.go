package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/matchpoint-club/field-schedule-sync/internal/adapters/in/http"
	"github.com/matchpoint-club/field-schedule-sync/internal/adapters/in/rabbitmq"
	"github.com/matchpoint-club/field-schedule-sync/internal/adapters/out/booking"
	"github.com/matchpoint-club/field-schedule-sync/internal/adapters/out/cache"
	"github.com/matchpoint-club/field-schedule-sync/internal/adapters/out/logger"
	"github.com/matchpoint-club/field-schedule-sync/internal/config"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/out"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/services/schedule_sync_service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной клуба
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	bookingAdapter := booking.NewBookingAdapter(cfg, log.WithModule("BookingAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		fieldCacheAdapter, err := cache.NewFieldCacheAdapter(cfg, mainLogger)
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = fieldCacheAdapter
	}

	// Инициализация сервиса
	syncService := schedule_sync_service.NewScheduleSyncService(
		bookingAdapter,
		cacheAdapter,
		mainLogger,
		cfg.Location(),
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewScheduleSyncController(syncService, cfg)
	controller.RegisterRoutes(router)

	// Слушатель очереди только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewScheduleListener(
			syncService,
			cfg,
			cacheAdapter,
			log.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
