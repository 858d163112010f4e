package baristabot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/messages"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if state := b.states.Get(chatID); state != "" {
		b.handleState(ctx, state, msg)
		return
	}

	switch msg.Text {
	case "/start":
		if _, ok := b.ensureBarista(ctx, msg); !ok {
			return
		}
		b.states.Clear(chatID)
		b.reply(chatID, messages.BaristaWelcome, kbBarista())
	case messages.BtnOrder:
		b.startOrder(ctx, msg)
	case messages.BtnGift:
		b.startFlow(ctx, msg, stateGiftUser, messages.GiftAskUser)
	case messages.BtnWriteOffGift:
		b.startFlow(ctx, msg, stateWriteOffUser, messages.WriteOffAskUser)
	case messages.BtnNotification:
		b.startNotify(ctx, msg)
	case messages.BtnHistory:
		b.showHistory(ctx, chatID)
	default:
		b.reply(chatID, messages.BaristaWelcome, kbBarista())
	}
}

func (b *Bot) handleState(ctx context.Context, state string, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Text == messages.BtnCancel {
		b.states.Clear(chatID)
		b.reply(chatID, messages.Cancelled, kbBarista())
		return
	}

	switch state {
	case stateOrderCode:
		b.orderCode(ctx, chatID, msg.Text)
	case stateOrderReceipt:
		b.states.SetData(chatID, "receipt", strings.TrimSpace(msg.Text))
		b.states.Set(chatID, stateOrderSum)
		b.reply(chatID, messages.OrderInputSum, nil)
	case stateOrderSum:
		b.orderNumber(chatID, msg.Text, "total_sum", stateOrderDrinks, messages.OrderInputDrinks)
	case stateOrderDrinks:
		b.orderNumber(chatID, msg.Text, "drinks", stateOrderSandwiches, messages.OrderInputSandwiches)
	case stateOrderSandwiches:
		b.orderSandwiches(chatID, msg.Text)
	case stateOrderMode:
		b.orderMode(chatID, msg.Text)
	case stateOrderPoints:
		b.orderPoints(chatID, msg.Text)
	case stateOrderConfirm:
		b.orderConfirm(ctx, chatID, msg.Text)
	case stateGiftUser:
		b.giftUser(ctx, chatID, msg.Text)
	case stateGiftType:
		b.giftType(chatID, msg.Text)
	case stateGiftAmount:
		b.giftAmount(ctx, chatID, msg.Text)
	case stateWriteOffUser:
		b.writeOffUser(ctx, chatID, msg.Text)
	case stateWriteOffPick:
		b.writeOffPick(ctx, chatID, msg.Text)
	case stateNotifyTarget:
		b.notifyTarget(chatID, msg.Text)
	case stateNotifyUser:
		b.notifyUser(ctx, chatID, msg.Text)
	case stateNotifyText:
		b.notifyText(ctx, chatID, msg.Text)
	default:
		b.states.Clear(chatID)
		b.reply(chatID, messages.BaristaWelcome, kbBarista())
	}
}

func (b *Bot) startFlow(ctx context.Context, msg *tgbotapi.Message, state, prompt string) {
	b.states.Clear(msg.Chat.ID)
	if _, ok := b.ensureBarista(ctx, msg); !ok {
		return
	}
	b.states.Set(msg.Chat.ID, state)
	b.reply(msg.Chat.ID, prompt, kbCancel())
}

// ВЫДАЧА ПОДАРКА

func (b *Bot) giftUser(ctx context.Context, chatID int64, text string) {
	user, err := b.client.GetUserByTelegramID(ctx, strings.TrimSpace(text))
	if err != nil {
		if apiclient.IsNotFound(err) {
			b.reply(chatID, messages.UserNotFoundRetry, nil)
			return
		}
		b.fail(chatID, err, messages.GiftFail)
		return
	}

	b.states.SetData(chatID, "user_id", strconv.FormatUint(uint64(user.ID), 10))
	b.states.Set(chatID, stateGiftType)

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnGiftDrink),
			tgbotapi.NewKeyboardButton(messages.BtnGiftSandwich),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnCancel)),
	)
	kb.ResizeKeyboard = true
	b.reply(chatID, messages.GiftAskType, kb)
}

func (b *Bot) giftType(chatID int64, text string) {
	var giftType string
	switch text {
	case messages.BtnGiftDrink:
		giftType = models.GiftTypeDrink
	case messages.BtnGiftSandwich:
		giftType = models.GiftTypeSandwich
	default:
		b.reply(chatID, messages.GiftAskType, nil)
		return
	}

	b.states.SetData(chatID, "gift_type", giftType)
	b.states.Set(chatID, stateGiftAmount)
	b.reply(chatID, messages.GiftAskAmount, kbCancel())
}

func (b *Bot) giftAmount(ctx context.Context, chatID int64, text string) {
	amount, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || amount < 1 {
		amount = 1
	}

	userID, _ := strconv.ParseUint(b.states.GetData(chatID, "user_id"), 10, 32)
	req := models.GiftRequest{
		UserID:    uint(userID),
		Type:      b.states.GetData(chatID, "gift_type"),
		Amount:    amount,
		CreatedBy: b.baristaID(chatID),
	}
	b.states.Clear(chatID)

	if _, err := b.client.CreateGift(ctx, req); err != nil {
		b.fail(chatID, err, messages.GiftFail)
		return
	}
	b.reply(chatID, messages.GiftIssued, kbBarista())
}

// СПИСАНИЕ ПОДАРКА

func (b *Bot) writeOffUser(ctx context.Context, chatID int64, text string) {
	user, err := b.client.GetUserByTelegramID(ctx, strings.TrimSpace(text))
	if err != nil {
		if apiclient.IsNotFound(err) {
			b.reply(chatID, messages.UserNotFoundRetry, nil)
			return
		}
		b.fail(chatID, err, messages.WriteOffFail)
		return
	}

	gifts, err := b.client.GetUserGifts(ctx, user.ID, true)
	if err != nil {
		b.fail(chatID, err, messages.WriteOffFail)
		return
	}
	if len(gifts) == 0 {
		b.states.Clear(chatID)
		b.reply(chatID, messages.WriteOffNoGifts, kbBarista())
		return
	}

	var list strings.Builder
	ids := make([]string, len(gifts))
	for i, gift := range gifts {
		ids[i] = strconv.FormatUint(uint64(gift.ID), 10)
		fmt.Fprintf(&list, "%d. %s x%d (от %s)\n",
			i+1, giftLabel(gift.Type), gift.Amount, gift.DateCreated.Format("02.01.2006"))
	}
	b.states.SetData(chatID, "gift_ids", strings.Join(ids, ","))
	b.states.Set(chatID, stateWriteOffPick)
	b.reply(chatID, list.String()+"\n"+messages.WriteOffPick, kbCancel())
}

func (b *Bot) writeOffPick(ctx context.Context, chatID int64, text string) {
	ids := strings.Split(b.states.GetData(chatID, "gift_ids"), ",")
	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || index < 1 || index > len(ids) {
		b.reply(chatID, messages.WriteOffPick, nil)
		return
	}

	giftID, _ := strconv.ParseUint(ids[index-1], 10, 32)
	baristaID := b.baristaID(chatID)
	b.states.Clear(chatID)

	if _, err := b.client.WriteOffGift(ctx, uint(giftID), baristaID); err != nil {
		b.fail(chatID, err, messages.WriteOffFail)
		return
	}
	b.reply(chatID, messages.WriteOffDone, kbBarista())
}

// УВЕДОМЛЕНИЯ

func (b *Bot) startNotify(ctx context.Context, msg *tgbotapi.Message) {
	b.states.Clear(msg.Chat.ID)
	if _, ok := b.ensureBarista(ctx, msg); !ok {
		return
	}
	b.states.Set(msg.Chat.ID, stateNotifyTarget)

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnNotifyAll),
			tgbotapi.NewKeyboardButton(messages.BtnNotifyOne),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnCancel)),
	)
	kb.ResizeKeyboard = true
	b.reply(msg.Chat.ID, messages.NotificationAskTarget, kb)
}

func (b *Bot) notifyTarget(chatID int64, text string) {
	switch text {
	case messages.BtnNotifyAll:
		b.states.Set(chatID, stateNotifyText)
		b.reply(chatID, messages.NotificationAskText, kbCancel())
	case messages.BtnNotifyOne:
		b.states.Set(chatID, stateNotifyUser)
		b.reply(chatID, messages.NotificationAskUser, kbCancel())
	default:
		b.reply(chatID, messages.NotificationAskTarget, nil)
	}
}

func (b *Bot) notifyUser(ctx context.Context, chatID int64, text string) {
	user, err := b.client.GetUserByTelegramID(ctx, strings.TrimSpace(text))
	if err != nil {
		if apiclient.IsNotFound(err) {
			b.reply(chatID, messages.UserNotFoundRetry, nil)
			return
		}
		b.fail(chatID, err, messages.NotificationFail)
		return
	}

	b.states.SetData(chatID, "target_user_id", strconv.FormatUint(uint64(user.ID), 10))
	b.states.Set(chatID, stateNotifyText)
	b.reply(chatID, messages.NotificationAskText, kbCancel())
}

func (b *Bot) notifyText(ctx context.Context, chatID int64, text string) {
	req := models.NotificationRequest{
		Text:   text,
		SentBy: b.baristaID(chatID),
	}
	if raw := b.states.GetData(chatID, "target_user_id"); raw != "" {
		parsed, _ := strconv.ParseUint(raw, 10, 32)
		userID := uint(parsed)
		req.UserID = &userID
	}
	b.states.Clear(chatID)

	if _, err := b.client.SendNotification(ctx, req); err != nil {
		b.fail(chatID, err, messages.NotificationFail)
		return
	}
	b.reply(chatID, messages.NotificationSent, kbBarista())
}

// ИСТОРИЯ

func (b *Bot) showHistory(ctx context.Context, chatID int64) {
	orders, err := b.client.RecentOrders(ctx, 10)
	if err != nil {
		b.fail(chatID, err, messages.HistoryFail)
		return
	}
	if len(orders) == 0 {
		b.reply(chatID, messages.HistoryEmpty, kbBarista())
		return
	}

	var list strings.Builder
	for _, order := range orders {
		mode := "накопление"
		if order.UsePoints {
			mode = fmt.Sprintf("списание %d баллов", order.UsedPointsAmount)
		}
		fmt.Fprintf(&list, "%s | чек %s | %d руб. | напитки %d, сэндвичи %d | %s\n",
			order.DateCreated.Format("02.01 15:04"), order.ReceiptNumber,
			order.TotalSum, order.DrinksCount, order.SandwichesCount, mode)
	}
	b.reply(chatID, list.String(), kbBarista())
}

func (b *Bot) fail(chatID int64, err error, text string) {
	b.log.WithError(err).Error("barista flow failed")
	b.states.Clear(chatID)
	b.reply(chatID, text, kbBarista())
}

func giftLabel(giftType string) string {
	switch giftType {
	case models.GiftTypeSandwich:
		return "Сэндвич"
	case models.GiftTypeBirthdayDrink:
		return "Напиток (день рождения)"
	default:
		return "Напиток"
	}
}
