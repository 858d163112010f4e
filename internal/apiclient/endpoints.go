package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func (c *Client) GetUserByTelegramID(ctx context.Context, telegramID string) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(telegramID), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, userID uint) (*models.UserResponse, error) {
	var user models.UserResponse
	path := "/users/id/" + strconv.FormatUint(uint64(userID), 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) RegisterUser(ctx context.Context, req models.UserRequest) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context, limit, offset int) ([]models.UserResponse, error) {
	var users []models.UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users/", listQuery(limit, offset), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) RegisterBarista(ctx context.Context, req models.BaristaRequest) (*models.BaristaResponse, error) {
	var barista models.BaristaResponse
	if err := c.doJSON(ctx, http.MethodPost, "/baristas/", nil, req, &barista); err != nil {
		return nil, err
	}
	return &barista, nil
}

func (c *Client) GetBaristaByTelegramID(ctx context.Context, telegramID string) (*models.BaristaResponse, error) {
	var barista models.BaristaResponse
	if err := c.doJSON(ctx, http.MethodGet, "/baristas/"+url.PathEscape(telegramID), nil, nil, &barista); err != nil {
		return nil, err
	}
	return &barista, nil
}

func (c *Client) GenerateCode(ctx context.Context, userID uint) (*models.CodeResponse, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatUint(uint64(userID), 10))

	var code models.CodeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/codes/generate", query, nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) UseCode(ctx context.Context, codeValue string) (*models.CodeResponse, error) {
	query := url.Values{}
	query.Set("code_value", codeValue)

	var code models.CodeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/codes/use", query, nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.OrderCreateResponse, error) {
	var resp models.OrderCreateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/orders/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RecentOrders(ctx context.Context, limit int) ([]models.OrderResponse, error) {
	var orders []models.OrderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/orders/recent", listQuery(limit, 0), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListOrders(ctx context.Context, limit, offset int) ([]models.OrderResponse, error) {
	var orders []models.OrderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/orders/", listQuery(limit, offset), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateGift(ctx context.Context, req models.GiftRequest) (*models.GiftResponse, error) {
	var gift models.GiftResponse
	if err := c.doJSON(ctx, http.MethodPost, "/gifts/", nil, req, &gift); err != nil {
		return nil, err
	}
	return &gift, nil
}

func (c *Client) GetUserGifts(ctx context.Context, userID uint, activeOnly bool) ([]models.GiftResponse, error) {
	query := url.Values{}
	query.Set("active_only", strconv.FormatBool(activeOnly))

	var gifts []models.GiftResponse
	path := "/gifts/user/" + strconv.FormatUint(uint64(userID), 10)
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &gifts); err != nil {
		return nil, err
	}
	return gifts, nil
}

func (c *Client) ListGifts(ctx context.Context, limit, offset int) ([]models.GiftResponse, error) {
	var gifts []models.GiftResponse
	if err := c.doJSON(ctx, http.MethodGet, "/gifts/", listQuery(limit, offset), nil, &gifts); err != nil {
		return nil, err
	}
	return gifts, nil
}

func (c *Client) WriteOffGift(ctx context.Context, giftID, baristaID uint) (*models.GiftResponse, error) {
	var query url.Values
	if baristaID > 0 {
		query = url.Values{}
		query.Set("barista_id", strconv.FormatUint(uint64(baristaID), 10))
	}

	var gift models.GiftResponse
	path := "/gifts/" + strconv.FormatUint(uint64(giftID), 10) + "/writeoff"
	if err := c.doJSON(ctx, http.MethodPost, path, query, nil, &gift); err != nil {
		return nil, err
	}
	return &gift, nil
}

func (c *Client) CreateFeedback(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResponse, error) {
	var feedback models.FeedbackResponse
	if err := c.doJSON(ctx, http.MethodPost, "/feedback/review", nil, req, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (c *Client) ListFeedbacks(ctx context.Context, limit, offset int) ([]models.FeedbackResponse, error) {
	var feedbacks []models.FeedbackResponse
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/", listQuery(limit, offset), nil, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (c *Client) CreateIdea(ctx context.Context, req models.IdeaRequest) (*models.IdeaResponse, error) {
	var idea models.IdeaResponse
	if err := c.doJSON(ctx, http.MethodPost, "/feedback/idea", nil, req, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (c *Client) ListIdeas(ctx context.Context, limit, offset int) ([]models.IdeaResponse, error) {
	var ideas []models.IdeaResponse
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/ideas", listQuery(limit, offset), nil, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (c *Client) SendNotification(ctx context.Context, req models.NotificationRequest) (*models.NotificationResponse, error) {
	var notification models.NotificationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/notifications/", nil, req, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (c *Client) AnalyticsSummary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary
	if err := c.doJSON(ctx, http.MethodGet, "/analytics/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
