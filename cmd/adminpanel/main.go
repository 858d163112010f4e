package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/adminpanel"
	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/serverconfig"
)

func main() {
	configStore := serverconfig.NewConfigStore()
	configStore.ParseFlags()

	log := newLogger(configStore.FlagLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	panel := adminpanel.NewPanel(apiclient.New(configStore.FlagAPIBase), configStore, log)
	srv := panel.MakeServer(configStore.FlagAdminAddr)

	go func() {
		log.Infof("Starting admin panel on %s", configStore.FlagAdminAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start admin panel: %v", err)
		}
	}()

	// Ожидание сигнала завершения
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Admin panel shutdown failed: %v", err)
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
