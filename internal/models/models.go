package models

import "time"

// LoyaltyLevel задает уровень лояльности клиента. Значения совпадают с тем,
// что показываем пользователю, отдельного словаря для отображения нет.
type LoyaltyLevel string

const (
	LevelStandard LoyaltyLevel = "Стандарт"
	LevelSilver   LoyaltyLevel = "Серебро"
	LevelGold     LoyaltyLevel = "Золото"
	LevelPlatinum LoyaltyLevel = "Платина"
)

type Role string

const (
	RoleClient  Role = "client"
	RoleBarista Role = "barista"
	RoleAdmin   Role = "admin"
)

// Типы подарков. BirthdayDrink создает только проверка дней рождения.
const (
	GiftTypeDrink         = "drink"
	GiftTypeSandwich      = "sandwich"
	GiftTypeBirthdayDrink = "birthday_drink"
)

type UserRequest struct {
	TelegramID string `json:"telegram_id" validate:"required"`
	Phone      string `json:"phone"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"` // формат 2006-01-02, может быть пустым
}

type UserResponse struct {
	ID              uint         `json:"id"`
	TelegramID      string       `json:"telegram_id"`
	Phone           string       `json:"phone"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	BirthDate       string       `json:"birth_date,omitempty"`
	LoyaltyStatus   LoyaltyLevel `json:"loyalty_status"`
	Points          int          `json:"points"`
	DrinksCount     int          `json:"drinks_count"`
	SandwichesCount int          `json:"sandwiches_count"`
	GiftDrinks      int          `json:"gift_drinks"`
	GiftSandwiches  int          `json:"gift_sandwiches"`
	IsActive        bool         `json:"is_active"`
	Role            Role         `json:"role"`
}

type BaristaRequest struct {
	TelegramID string `json:"telegram_id" validate:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

type BaristaResponse struct {
	ID         uint   `json:"id"`
	TelegramID string `json:"telegram_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsAdmin    bool   `json:"is_admin"`
	IsActive   bool   `json:"is_active"`
}

type OrderRequest struct {
	UserID           uint   `json:"user_id" validate:"required"`
	BaristaID        uint   `json:"barista_id"`
	CodeID           uint   `json:"code_id"`
	ReceiptNumber    string `json:"receipt_number" validate:"required"`
	TotalSum         int    `json:"total_sum" validate:"required,gt=0"`
	DrinksCount      int    `json:"drinks_count" validate:"gte=0"`
	SandwichesCount  int    `json:"sandwiches_count" validate:"gte=0"`
	UsePoints        bool   `json:"use_points"`
	UsedPointsAmount int    `json:"used_points_amount" validate:"gte=0"`
}

type OrderResponse struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	BaristaID        uint      `json:"barista_id"`
	CodeID           uint      `json:"code_id"`
	ReceiptNumber    string    `json:"receipt_number"`
	TotalSum         int       `json:"total_sum"`
	DrinksCount      int       `json:"drinks_count"`
	SandwichesCount  int       `json:"sandwiches_count"`
	UsePoints        bool      `json:"use_points"`
	UsedPointsAmount int       `json:"used_points_amount"`
	DateCreated      time.Time `json:"date_created"`
}

// OrderSummary описывает, что произошло с балансом после заказа, для уведомлений.
type OrderSummary struct {
	PointsEarned   int          `json:"points_earned"`
	PointsUsed     int          `json:"points_used"`
	NewPointsTotal int          `json:"new_points_total"`
	LevelUpgraded  bool         `json:"level_upgraded"`
	NewLevel       LoyaltyLevel `json:"new_level,omitempty"`
	BirthdayGift   bool         `json:"birthday_gift"`
}

type OrderCreateResponse struct {
	Order   OrderResponse `json:"order"`
	Summary OrderSummary  `json:"summary"`
}

type CodeResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	UserID    uint      `json:"user_id"`
	IsUsed    bool      `json:"is_used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type GiftRequest struct {
	UserID    uint   `json:"user_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=drink sandwich"`
	Amount    int    `json:"amount" validate:"gte=1"`
	CreatedBy uint   `json:"created_by"`
}

type GiftResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Type         string    `json:"type"`
	Amount       int       `json:"amount"`
	CreatedBy    uint      `json:"created_by,omitempty"`
	DateCreated  time.Time `json:"date_created"`
	IsWrittenOff bool      `json:"is_written_off"`
}

type FeedbackRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Score  int    `json:"score" validate:"required,gte=1,lte=10"`
	Text   string `json:"text"`
}

type FeedbackResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Score     int       `json:"score"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type IdeaRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type IdeaResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRequest: UserID == nil значит уведомление для всех.
type NotificationRequest struct {
	UserID *uint  `json:"user_id"`
	Text   string `json:"text" validate:"required"`
	SentBy uint   `json:"sent_by"`
}

type NotificationResponse struct {
	ID       uint      `json:"id"`
	UserID   *uint     `json:"user_id"`
	Text     string    `json:"text"`
	SentBy   uint      `json:"sent_by,omitempty"`
	DateSent time.Time `json:"date_sent"`
}

type AnalyticsSummary struct {
	TotalOrders     int64 `json:"total_orders"`
	TotalGifts      int64 `json:"total_gifts"`
	TotalDrinks     int64 `json:"total_drinks"`
	TotalSandwiches int64 `json:"total_sandwiches"`
	TotalUsers      int64 `json:"total_users"`
}
