package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/server"
	"github.com/theheadmen/coffeeloyalty/internal/serverconfig"
	"github.com/theheadmen/coffeeloyalty/internal/sweep"
)

func main() {
	configStore := serverconfig.NewConfigStore()
	configStore.ParseFlags()

	log := newLogger(configStore.FlagLogLevel)
	if err := configStore.ValidateForAPI(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbconnector.OpenDBConnect(configStore.FlagDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.DBInitialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	ls := server.NewServerSystem(db, log)
	srv := ls.MakeServer(configStore.FlagRunAddr)

	// Ежедневная проверка дней рождения
	sweeper := sweep.New(db, log)
	scheduler := cron.New()
	if err := sweeper.Schedule(scheduler); err != nil {
		log.Fatalf("Failed to schedule birthday sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	go func() {
		log.Infof("Starting server on %s", configStore.FlagRunAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Ожидание сигнала завершения
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
