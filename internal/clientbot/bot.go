// Package clientbot реализует Telegram-бот для клиентов: регистрация, профиль,
// одноразовые коды и обратная связь. Вся работа с данными идет через
// REST API, напрямую в базу бот не ходит.
package clientbot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/botstate"
	"github.com/theheadmen/coffeeloyalty/internal/messages"
)

// Состояния анкет.
const (
	stateRegPhone     = "reg_phone"
	stateRegFirstName = "reg_first_name"
	stateRegLastName  = "reg_last_name"
	stateRegBirthDate = "reg_birth_date"
	stateRegConfirm   = "reg_confirm"

	stateFeedbackScore = "feedback_score"
	stateFeedbackText  = "feedback_text"
	stateIdeaText      = "idea_text"
	stateAdminText     = "admin_text"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	client *apiclient.Client
	states *botstate.Store
	log    *logrus.Logger
}

func New(api *tgbotapi.BotAPI, client *apiclient.Client, log *logrus.Logger) *Bot {
	return &Bot{
		api:    api,
		client: client,
		states: botstate.NewStore(),
		log:    log,
	}
}

// Run крутит long polling до отмены контекста.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("client bot started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) reply(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("failed to send message")
	}
}

func kbStart() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnStart)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func kbMain() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnProfile)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnGenCode)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnFeedback)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func kbFeedback() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnLeaveFeedback)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnLeaveIdea)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnContactAdmin)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func kbBack() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}
