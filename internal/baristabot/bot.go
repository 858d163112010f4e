// Package baristabot реализует Telegram-бот бариста: проведение заказов по коду
// клиента, выдача и списание подарков, уведомления и история заказов.
package baristabot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/botstate"
	"github.com/theheadmen/coffeeloyalty/internal/messages"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

// Состояния сценариев.
const (
	stateOrderCode       = "order_code"
	stateOrderReceipt    = "order_receipt"
	stateOrderSum        = "order_sum"
	stateOrderDrinks     = "order_drinks"
	stateOrderSandwiches = "order_sandwiches"
	stateOrderMode       = "order_mode"
	stateOrderPoints     = "order_points"
	stateOrderConfirm    = "order_confirm"

	stateGiftUser   = "gift_user"
	stateGiftType   = "gift_type"
	stateGiftAmount = "gift_amount"

	stateWriteOffUser = "writeoff_user"
	stateWriteOffPick = "writeoff_pick"

	stateNotifyTarget = "notify_target"
	stateNotifyUser   = "notify_user"
	stateNotifyText   = "notify_text"
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

func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("barista bot started")
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

// ensureBarista регистрирует бариста при первом обращении и кладет его ID
// в данные сценария. Регистрация идемпотентна на стороне API.
func (b *Bot) ensureBarista(ctx context.Context, msg *tgbotapi.Message) (uint, bool) {
	req := models.BaristaRequest{
		TelegramID: strconv.FormatInt(msg.From.ID, 10),
		FirstName:  msg.From.FirstName,
		LastName:   msg.From.LastName,
	}
	barista, err := b.client.RegisterBarista(ctx, req)
	if err != nil {
		b.log.WithError(err).Error("failed to resolve barista")
		b.reply(msg.Chat.ID, messages.GenericError, kbBarista())
		return 0, false
	}
	b.states.SetData(msg.Chat.ID, "barista_id", strconv.FormatUint(uint64(barista.ID), 10))
	return barista.ID, true
}

func (b *Bot) baristaID(chatID int64) uint {
	id, _ := strconv.ParseUint(b.states.GetData(chatID, "barista_id"), 10, 32)
	return uint(id)
}

func kbBarista() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnOrder)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnGift),
			tgbotapi.NewKeyboardButton(messages.BtnWriteOffGift),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnNotification),
			tgbotapi.NewKeyboardButton(messages.BtnHistory),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func kbCancel() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func kbConfirm() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnConfirm),
			tgbotapi.NewKeyboardButton(messages.BtnCancel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
