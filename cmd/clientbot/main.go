package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/clientbot"
	"github.com/theheadmen/coffeeloyalty/internal/serverconfig"
)

func main() {
	configStore := serverconfig.NewConfigStore()
	configStore.ParseFlags()

	log := newLogger(configStore.FlagLogLevel)
	if err := configStore.ValidateForBot(configStore.ClientBotToken); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := tgbotapi.NewBotAPI(configStore.ClientBotToken)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}

	bot := clientbot.New(api, apiclient.New(configStore.FlagAPIBase), log)
	bot.Run(ctx)
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
