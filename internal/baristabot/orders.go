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

func (b *Bot) startOrder(ctx context.Context, msg *tgbotapi.Message) {
	b.states.Clear(msg.Chat.ID)
	if _, ok := b.ensureBarista(ctx, msg); !ok {
		return
	}
	b.states.Set(msg.Chat.ID, stateOrderCode)
	b.reply(msg.Chat.ID, messages.OrderCodeInput, kbCancel())
}

// orderCode гасит одноразовый код и находит клиента. Код помечается
// использованным сразу, повторно его ввести нельзя.
func (b *Bot) orderCode(ctx context.Context, chatID int64, text string) {
	code, err := b.client.UseCode(ctx, strings.TrimSpace(text))
	if err != nil {
		if apiclient.IsClientError(err) {
			b.reply(chatID, messages.CodeInvalid, nil)
			return
		}
		b.fail(chatID, err, messages.OrderFail)
		return
	}

	user, err := b.client.GetUserByID(ctx, code.UserID)
	if err != nil {
		b.fail(chatID, err, messages.OrderFail)
		return
	}

	b.states.SetData(chatID, "user_id", strconv.FormatUint(uint64(user.ID), 10))
	b.states.SetData(chatID, "code_id", strconv.FormatUint(uint64(code.ID), 10))
	b.states.SetData(chatID, "user_points", strconv.Itoa(user.Points))
	b.states.Set(chatID, stateOrderReceipt)

	b.reply(chatID, fmt.Sprintf(messages.OrderClientFound, user.FirstName, user.LastName), nil)
	b.reply(chatID, messages.OrderInputReceipt, nil)
}

// orderNumber делает общий шаг "введите целое число": сохранить и перейти дальше.
func (b *Bot) orderNumber(chatID int64, text, key, nextState, nextPrompt string) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		b.reply(chatID, messages.OrderBadNumber, nil)
		return
	}
	b.states.SetData(chatID, key, strconv.Itoa(value))
	b.states.Set(chatID, nextState)
	b.reply(chatID, nextPrompt, nil)
}

func (b *Bot) orderSandwiches(chatID int64, text string) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		b.reply(chatID, messages.OrderBadNumber, nil)
		return
	}
	b.states.SetData(chatID, "sandwiches", strconv.Itoa(value))
	b.states.Set(chatID, stateOrderMode)

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnOrderPoints),
			tgbotapi.NewKeyboardButton(messages.BtnOrderAccumulate),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnCancel)),
	)
	kb.ResizeKeyboard = true
	points := b.states.GetData(chatID, "user_points")
	b.reply(chatID, fmt.Sprintf("%s\nУ клиента %s баллов.", messages.OrderPointsOrAccum, points), kb)
}

func (b *Bot) orderMode(chatID int64, text string) {
	switch text {
	case messages.BtnOrderPoints:
		b.states.SetData(chatID, "use_points", "true")
		b.states.Set(chatID, stateOrderPoints)
		b.reply(chatID, messages.OrderInputPoints, kbCancel())
	case messages.BtnOrderAccumulate:
		b.states.SetData(chatID, "use_points", "false")
		b.askOrderConfirm(chatID)
	default:
		b.reply(chatID, messages.OrderPointsOrAccum, nil)
	}
}

func (b *Bot) orderPoints(chatID int64, text string) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value <= 0 {
		b.reply(chatID, messages.OrderBadNumber, nil)
		return
	}
	b.states.SetData(chatID, "points", strconv.Itoa(value))
	b.askOrderConfirm(chatID)
}

func (b *Bot) askOrderConfirm(chatID int64) {
	b.states.Set(chatID, stateOrderConfirm)

	mode := "накопить"
	if b.states.GetData(chatID, "use_points") == "true" {
		mode = "списать " + b.states.GetData(chatID, "points") + " баллов"
	}
	summary := fmt.Sprintf("Чек: %s\nСумма: %s руб.\nНапитки: %s\nСэндвичи: %s\nБаллы: %s\n\n%s",
		b.states.GetData(chatID, "receipt"),
		b.states.GetData(chatID, "total_sum"),
		b.states.GetData(chatID, "drinks"),
		b.states.GetData(chatID, "sandwiches"),
		mode,
		messages.OrderConfirm,
	)
	b.reply(chatID, summary, kbConfirm())
}

func (b *Bot) orderConfirm(ctx context.Context, chatID int64, text string) {
	if text != messages.BtnConfirm {
		b.states.Clear(chatID)
		b.reply(chatID, messages.Cancelled, kbBarista())
		return
	}

	req := b.buildOrderRequest(chatID)
	b.states.Clear(chatID)

	resp, err := b.client.CreateOrder(ctx, req)
	if err != nil {
		b.fail(chatID, err, messages.OrderFail)
		return
	}

	result := fmt.Sprintf("%s\nНачислено баллов: %d\nСписано баллов: %d\nБаланс клиента: %d",
		messages.OrderSuccess,
		resp.Summary.PointsEarned, resp.Summary.PointsUsed, resp.Summary.NewPointsTotal)
	if resp.Summary.LevelUpgraded {
		result += fmt.Sprintf("\nНовый уровень клиента: %s", resp.Summary.NewLevel)
	}
	if resp.Summary.BirthdayGift {
		result += "\nУ клиента день рождения, подарочный напиток уже начислен!"
	}
	b.reply(chatID, result, kbBarista())
}

func (b *Bot) buildOrderRequest(chatID int64) models.OrderRequest {
	atoi := func(key string) int {
		value, _ := strconv.Atoi(b.states.GetData(chatID, key))
		return value
	}
	userID, _ := strconv.ParseUint(b.states.GetData(chatID, "user_id"), 10, 32)
	codeID, _ := strconv.ParseUint(b.states.GetData(chatID, "code_id"), 10, 32)

	return models.OrderRequest{
		UserID:           uint(userID),
		BaristaID:        b.baristaID(chatID),
		CodeID:           uint(codeID),
		ReceiptNumber:    b.states.GetData(chatID, "receipt"),
		TotalSum:         atoi("total_sum"),
		DrinksCount:      atoi("drinks"),
		SandwichesCount:  atoi("sandwiches"),
		UsePoints:        b.states.GetData(chatID, "use_points") == "true",
		UsedPointsAmount: atoi("points"),
	}
}
