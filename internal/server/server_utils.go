package server

import (
	"net/http"
	"strconv"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

// parseLimitOffset читает limit/offset из query-параметров с разумными
// значениями по умолчанию.
func parseLimitOffset(r *http.Request, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func parseUintVar(value string) (uint, error) {
	parsed, err := strconv.ParseUint(value, 10, 32)
	return uint(parsed), err
}

func toUserResponse(user *dbconnector.User) models.UserResponse {
	resp := models.UserResponse{
		ID:              user.ID,
		TelegramID:      user.TelegramID,
		Phone:           user.Phone,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		LoyaltyStatus:   user.LoyaltyStatus,
		Points:          user.Points,
		DrinksCount:     user.DrinksCount,
		SandwichesCount: user.SandwichesCount,
		GiftDrinks:      user.GiftDrinks,
		GiftSandwiches:  user.GiftSandwiches,
		IsActive:        user.IsActive,
		Role:            user.Role,
	}
	if user.BirthDate != nil {
		resp.BirthDate = user.BirthDate.Format("2006-01-02")
	}
	return resp
}

func toOrderResponse(order *dbconnector.Order) models.OrderResponse {
	return models.OrderResponse{
		ID:               order.ID,
		UserID:           order.UserID,
		BaristaID:        order.BaristaID,
		CodeID:           order.CodeID,
		ReceiptNumber:    order.ReceiptNumber,
		TotalSum:         order.TotalSum,
		DrinksCount:      order.DrinksCount,
		SandwichesCount:  order.SandwichesCount,
		UsePoints:        order.UsePoints,
		UsedPointsAmount: order.UsedPointsAmount,
		DateCreated:      order.CreatedAt,
	}
}

func toOrderResponses(orders []dbconnector.Order) []models.OrderResponse {
	responses := make([]models.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	return responses
}

func toCodeResponse(code *dbconnector.Code) models.CodeResponse {
	return models.CodeResponse{
		ID:        code.ID,
		Code:      code.Code,
		UserID:    code.UserID,
		IsUsed:    code.IsUsed,
		ExpiresAt: code.ExpiresAt,
		CreatedAt: code.CreatedAt,
	}
}

func toGiftResponse(gift *dbconnector.Gift) models.GiftResponse {
	return models.GiftResponse{
		ID:           gift.ID,
		UserID:       gift.UserID,
		Type:         gift.Type,
		Amount:       gift.Amount,
		CreatedBy:    gift.CreatedBy,
		DateCreated:  gift.CreatedAt,
		IsWrittenOff: gift.IsWrittenOff,
	}
}

func toGiftResponses(gifts []dbconnector.Gift) []models.GiftResponse {
	responses := make([]models.GiftResponse, len(gifts))
	for i := range gifts {
		responses[i] = toGiftResponse(&gifts[i])
	}
	return responses
}

func toFeedbackResponse(feedback *dbconnector.Feedback) models.FeedbackResponse {
	return models.FeedbackResponse{
		ID:        feedback.ID,
		UserID:    feedback.UserID,
		Score:     feedback.Score,
		Text:      feedback.Text,
		CreatedAt: feedback.CreatedAt,
	}
}

func toIdeaResponse(idea *dbconnector.Idea) models.IdeaResponse {
	return models.IdeaResponse{
		ID:        idea.ID,
		UserID:    idea.UserID,
		Text:      idea.Text,
		CreatedAt: idea.CreatedAt,
	}
}

func toNotificationResponse(notification *dbconnector.Notification) models.NotificationResponse {
	return models.NotificationResponse{
		ID:       notification.ID,
		UserID:   notification.UserID,
		Text:     notification.Text,
		SentBy:   notification.SentBy,
		DateSent: notification.CreatedAt,
	}
}
