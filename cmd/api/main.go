package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/data"
	"github.com/facultyapp/faculty-backend/internal/db"
	"github.com/facultyapp/faculty-backend/internal/middleware"
	"github.com/facultyapp/faculty-backend/internal/notify"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}
	defer func() { _ = dbClient.Close(ctx) }()

	if err := dbClient.CreateIndexes(ctx); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	usersStore := data.NewUsersStore(dbClient.UsersCollection())
	facultyStore := data.NewFacultyStore(dbClient.FacultyProfilesCollection())
	convosStore := data.NewConversationsStore(dbClient.ConversationsCollection())
	msgsStore := data.NewMessagesStore(dbClient.MessagesCollection())
	notifsStore := data.NewNotificationsStore(dbClient.NotificationsCollection())
	eventsStore := data.NewEventsStore(dbClient.CalendarEventsCollection())

	fanout := notify.New(usersStore, notifsStore, logger)

	jwtMgr, err := cfg.jwtManager()
	if err != nil {
		logger.Fatal("invalid JWT configuration", zap.Error(err))
	}

	// small burst so a couple of quick retries on login still pass
	limiter := middleware.NewLimiterStore(cfg.RateLimitRPM, 3, 1*time.Minute)
	defer limiter.Stop()

	srv := newServer(usersStore, facultyStore, convosStore, msgsStore, notifsStore, eventsStore, fanout, jwtMgr, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.routes(limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server exit", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
