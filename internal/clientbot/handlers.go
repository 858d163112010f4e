package clientbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/messages"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

const (
	minAge = 10
	maxAge = 100
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	telegramID := strconv.FormatInt(msg.From.ID, 10)

	if state := b.states.Get(chatID); state != "" {
		b.handleState(ctx, state, msg, telegramID)
		return
	}

	switch msg.Text {
	case "/start":
		b.handleStart(ctx, chatID, telegramID)
	case messages.BtnStart:
		b.startRegistration(ctx, chatID, telegramID)
	case messages.BtnProfile:
		b.showProfile(ctx, chatID, telegramID)
	case messages.BtnGenCode, messages.BtnGenNewCode:
		b.generateCode(ctx, chatID, telegramID)
	case messages.BtnFeedback:
		b.reply(chatID, messages.FeedbackMenu, kbFeedback())
	case messages.BtnLeaveFeedback:
		b.states.Set(chatID, stateFeedbackScore)
		b.reply(chatID, messages.FeedbackAskScore, kbBack())
	case messages.BtnLeaveIdea:
		b.states.Set(chatID, stateIdeaText)
		b.reply(chatID, messages.IdeaAsk, kbBack())
	case messages.BtnContactAdmin:
		b.states.Set(chatID, stateAdminText)
		b.reply(chatID, messages.AdminMessageAsk, kbBack())
	case messages.BtnBack:
		b.reply(chatID, messages.MainMenu, kbMain())
	default:
		b.reply(chatID, messages.MainMenu, kbMain())
	}
}

func (b *Bot) handleState(ctx context.Context, state string, msg *tgbotapi.Message, telegramID string) {
	chatID := msg.Chat.ID

	// Кнопка "Назад" обрывает любой сценарий.
	if msg.Text == messages.BtnBack {
		b.states.Clear(chatID)
		b.reply(chatID, messages.MainMenu, kbMain())
		return
	}

	switch state {
	case stateRegPhone:
		b.regPhone(chatID, msg)
	case stateRegFirstName:
		b.states.SetData(chatID, "first_name", msg.Text)
		b.states.Set(chatID, stateRegLastName)
		b.reply(chatID, messages.RegisterLastName, nil)
	case stateRegLastName:
		b.states.SetData(chatID, "last_name", msg.Text)
		b.states.Set(chatID, stateRegBirthDate)
		b.reply(chatID, messages.RegisterBirthDate, nil)
	case stateRegBirthDate:
		b.regBirthDate(chatID, msg.Text)
	case stateRegConfirm:
		b.regConfirm(ctx, chatID, telegramID, msg.Text)
	case stateFeedbackScore:
		b.feedbackScore(ctx, chatID, telegramID, msg.Text)
	case stateFeedbackText:
		b.feedbackText(ctx, chatID, telegramID, msg.Text)
	case stateIdeaText:
		b.sendIdea(ctx, chatID, telegramID, msg.Text, messages.IdeaSent)
	case stateAdminText:
		b.sendIdea(ctx, chatID, telegramID, "[Руководству] "+msg.Text, messages.AdminMessageSent)
	default:
		b.states.Clear(chatID)
		b.reply(chatID, messages.MainMenu, kbMain())
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64, telegramID string) {
	if _, err := b.client.GetUserByTelegramID(ctx, telegramID); err == nil {
		b.reply(chatID, messages.MainMenu, kbMain())
		return
	}
	b.reply(chatID, messages.Welcome, kbStart())
}

func (b *Bot) startRegistration(ctx context.Context, chatID int64, telegramID string) {
	if _, err := b.client.GetUserByTelegramID(ctx, telegramID); err == nil {
		b.reply(chatID, messages.AlreadyRegistered, kbMain())
		return
	}

	b.states.Set(chatID, stateRegPhone)
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(messages.BtnSendPhone)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnBack)),
	)
	kb.ResizeKeyboard = true
	b.reply(chatID, messages.RegisterPhone, kb)
}

func (b *Bot) regPhone(chatID int64, msg *tgbotapi.Message) {
	if msg.Contact == nil {
		b.reply(chatID, messages.RegisterPhone, nil)
		return
	}
	b.states.SetData(chatID, "phone", msg.Contact.PhoneNumber)
	b.states.Set(chatID, stateRegFirstName)
	b.reply(chatID, messages.RegisterFirstName, tgbotapi.NewRemoveKeyboard(true))
}

func (b *Bot) regBirthDate(chatID int64, text string) {
	birthDate, err := time.Parse("02.01.2006", strings.TrimSpace(text))
	if err != nil {
		b.reply(chatID, messages.RegisterBadDate, nil)
		return
	}

	age := ageAt(birthDate, time.Now())
	if age < minAge || age > maxAge {
		b.reply(chatID, messages.RegisterBadAge, nil)
		return
	}

	b.states.SetData(chatID, "birth_date", birthDate.Format("2006-01-02"))
	b.states.Set(chatID, stateRegConfirm)

	summary := fmt.Sprintf("Проверьте данные:\nИмя: %s\nФамилия: %s\nТелефон: %s\nДата рождения: %s",
		b.states.GetData(chatID, "first_name"),
		b.states.GetData(chatID, "last_name"),
		b.states.GetData(chatID, "phone"),
		birthDate.Format("02.01.2006"),
	)
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.BtnConfirm),
			tgbotapi.NewKeyboardButton(messages.BtnCancel),
		),
	)
	kb.ResizeKeyboard = true
	b.reply(chatID, summary, kb)
}

func (b *Bot) regConfirm(ctx context.Context, chatID int64, telegramID, text string) {
	if text != messages.BtnConfirm {
		b.states.Clear(chatID)
		b.reply(chatID, messages.Welcome, kbStart())
		return
	}

	req := models.UserRequest{
		TelegramID: telegramID,
		Phone:      b.states.GetData(chatID, "phone"),
		FirstName:  b.states.GetData(chatID, "first_name"),
		LastName:   b.states.GetData(chatID, "last_name"),
		BirthDate:  b.states.GetData(chatID, "birth_date"),
	}
	b.states.Clear(chatID)

	if _, err := b.client.RegisterUser(ctx, req); err != nil {
		b.log.WithError(err).Error("failed to register user")
		b.reply(chatID, messages.GenericError, kbStart())
		return
	}
	b.reply(chatID, messages.RegistrationSuccess, kbMain())
}

func (b *Bot) showProfile(ctx context.Context, chatID int64, telegramID string) {
	user, err := b.client.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		if apiclient.IsNotFound(err) {
			b.reply(chatID, messages.NotRegistered, kbStart())
			return
		}
		b.log.WithError(err).Error("failed to load profile")
		b.reply(chatID, messages.GenericError, kbMain())
		return
	}

	birthDate := user.BirthDate
	if parsed, err := time.Parse("2006-01-02", birthDate); err == nil {
		birthDate = parsed.Format("02.01.2006")
	}

	text := fmt.Sprintf(messages.ProfileTemplate,
		user.FirstName, user.LastName, user.Phone, birthDate,
		user.LoyaltyStatus, user.Points,
		user.DrinksCount, user.SandwichesCount,
		user.GiftDrinks, user.GiftSandwiches,
	)
	b.reply(chatID, text, kbMain())
}

func (b *Bot) generateCode(ctx context.Context, chatID int64, telegramID string) {
	user, err := b.client.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		if apiclient.IsNotFound(err) {
			b.reply(chatID, messages.NotRegistered, kbStart())
			return
		}
		b.log.WithError(err).Error("failed to load user for code")
		b.reply(chatID, messages.GenericError, kbMain())
		return
	}

	code, err := b.client.GenerateCode(ctx, user.ID)
	if err != nil {
		b.log.WithError(err).Error("failed to generate code")
		b.reply(chatID, messages.GenericError, kbMain())
		return
	}

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnGenNewCode)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(messages.BtnBack)),
	)
	kb.ResizeKeyboard = true
	b.reply(chatID, fmt.Sprintf(messages.CodeGenerated, code.Code), kb)
}

func (b *Bot) feedbackScore(ctx context.Context, chatID int64, telegramID, text string) {
	score, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || score < 1 || score > 10 {
		b.reply(chatID, messages.FeedbackBadScore, nil)
		return
	}

	// Высокие оценки отправляем сразу, низкие уточняем текстом.
	if score >= 8 {
		b.createFeedback(ctx, chatID, telegramID, score, "")
		b.states.Clear(chatID)
		b.reply(chatID, messages.FeedbackThanksGood, kbMain())
		return
	}

	b.states.SetData(chatID, "score", strconv.Itoa(score))
	b.states.Set(chatID, stateFeedbackText)
	b.reply(chatID, messages.FeedbackThanksBad, nil)
}

func (b *Bot) feedbackText(ctx context.Context, chatID int64, telegramID, text string) {
	score, _ := strconv.Atoi(b.states.GetData(chatID, "score"))
	b.createFeedback(ctx, chatID, telegramID, score, text)
	b.states.Clear(chatID)
	b.reply(chatID, messages.FeedbackSent, kbMain())
}

func (b *Bot) createFeedback(ctx context.Context, chatID int64, telegramID string, score int, text string) {
	user, err := b.client.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		b.log.WithError(err).Error("failed to load user for feedback")
		return
	}
	req := models.FeedbackRequest{UserID: user.ID, Score: score, Text: text}
	if _, err := b.client.CreateFeedback(ctx, req); err != nil {
		b.log.WithError(err).Error("failed to save feedback")
	}
}

func (b *Bot) sendIdea(ctx context.Context, chatID int64, telegramID, text, thanks string) {
	user, err := b.client.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		b.states.Clear(chatID)
		if apiclient.IsNotFound(err) {
			b.reply(chatID, messages.NotRegistered, kbStart())
			return
		}
		b.log.WithError(err).Error("failed to load user for idea")
		b.reply(chatID, messages.GenericError, kbMain())
		return
	}

	req := models.IdeaRequest{UserID: user.ID, Text: text}
	b.states.Clear(chatID)
	if _, err := b.client.CreateIdea(ctx, req); err != nil {
		b.log.WithError(err).Error("failed to save idea")
		b.reply(chatID, messages.GenericError, kbMain())
		return
	}
	b.reply(chatID, thanks, kbMain())
}

func ageAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		age--
	}
	return age
}
