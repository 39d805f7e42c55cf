package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"go-activity-planner/core/cache"
	"go-activity-planner/core/config"
	"go-activity-planner/core/constants"
	"go-activity-planner/core/database"
	"go-activity-planner/core/logger"
	"go-activity-planner/core/middleware"
	"go-activity-planner/core/queue"
	"go-activity-planner/modules/activity"
	"go-activity-planner/modules/auth"
	"go-activity-planner/modules/availability"
	"go-activity-planner/modules/calendar"
	"go-activity-planner/modules/invitation"
	"go-activity-planner/modules/notification"
	notifsvc "go-activity-planner/modules/notification/service"
	"go-activity-planner/modules/suggestion"
)

// Run boots the HTTP server and the asynq worker, blocking until SIGINT or
// SIGTERM, then shuts both down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	if err := cache.Init(cfg.Redis); err != nil {
		// cache is optional: calendar lookups degrade to direct fetches
		logger.Warn("Server:RedisUnavailable", "error", err)
	}
	queue.Init(cfg.Redis)
	defer queue.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	mw := middleware.New(cfg)

	// module wiring, in dependency order
	activityService := activity.Init(e, db, mw)
	calendarService := calendar.Init(e, db, activityService, mw)
	auth.Init(e, db, calendarService, mw)
	availabilityService := availability.Init(e, calendarService, mw)
	suggestion.Init(e, activityService, availabilityService, mw)
	notificationService := notification.Init(e, db, mw)
	invitation.Init(e, db, activityService, calendarService, notificationService, mw)

	worker := queue.NewServer(cfg.Redis)
	mux := asynq.NewServeMux()
	mux.Handle(constants.TaskDeadlineReminder, notifsvc.NewDeadlineReminderHandler(notificationService, activityService))

	if err := worker.Start(mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:ShuttingDown")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("Server:Stopped")
	return nil
}
