package service

import (
	"context"
	"time"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

type Storage interface {
	GetUserByTelegramID(ctx context.Context, telegramID string, user *dbconnector.User) error
	GetUserByUserID(ctx context.Context, userID uint, user *dbconnector.User) error
	AddUser(ctx context.Context, newUser *dbconnector.User) error
	UpdateUser(ctx context.Context, updUser *dbconnector.User) error
	GetAllUsers(ctx context.Context, limit, offset int, users *[]dbconnector.User) error
	GetBirthdayCandidates(ctx context.Context, users *[]dbconnector.User) error

	GetBaristaByTelegramID(ctx context.Context, telegramID string, barista *dbconnector.Barista) error
	AddBarista(ctx context.Context, newBarista *dbconnector.Barista) error
	AddBaristaAction(ctx context.Context, action *dbconnector.BaristaAction) error

	AddOrder(ctx context.Context, newOrder *dbconnector.Order) error
	GetOrdersByUserID(ctx context.Context, userID uint, limit, offset int, orders *[]dbconnector.Order) error
	GetAllOrders(ctx context.Context, limit, offset int, orders *[]dbconnector.Order) error

	GetUnusedCodeByValue(ctx context.Context, codeValue string, code *dbconnector.Code) error
	AddCode(ctx context.Context, newCode *dbconnector.Code) error
	UpdateCode(ctx context.Context, updCode *dbconnector.Code) error

	AddGift(ctx context.Context, newGift *dbconnector.Gift) error
	GetActiveGiftByID(ctx context.Context, giftID uint, gift *dbconnector.Gift) error
	GetGiftsByUserID(ctx context.Context, userID uint, activeOnly bool, gifts *[]dbconnector.Gift) error
	GetAllGifts(ctx context.Context, limit, offset int, gifts *[]dbconnector.Gift) error
	HasBirthdayGiftOn(ctx context.Context, userID uint, day time.Time) (bool, error)

	AddFeedback(ctx context.Context, newFeedback *dbconnector.Feedback) error
	GetFeedbacks(ctx context.Context, limit, offset int, feedbacks *[]dbconnector.Feedback) error
	AddIdea(ctx context.Context, newIdea *dbconnector.Idea) error
	GetIdeas(ctx context.Context, limit, offset int, ideas *[]dbconnector.Idea) error

	AddNotification(ctx context.Context, newNotification *dbconnector.Notification) error
	GetNotificationsForUser(ctx context.Context, userID uint, limit, offset int, notifications *[]dbconnector.Notification) error

	GetAnalyticsSummary(ctx context.Context, summary *models.AnalyticsSummary) error

	OrderTransaction(ctx context.Context, order *dbconnector.Order, updUser *dbconnector.User, birthdayGift *dbconnector.Gift) error
	GiftWriteOffTransaction(ctx context.Context, gift *dbconnector.Gift, updUser *dbconnector.User) error
}
