package dbconnector

import (
	"time"

	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/models"
)

type User struct {
	gorm.Model
	TelegramID      string `gorm:"uniqueIndex;not null"`
	Phone           string
	FirstName       string
	LastName        string
	BirthDate       *time.Time
	LoyaltyStatus   models.LoyaltyLevel `gorm:"not null;default:'Стандарт'"`
	Points          int                 `gorm:"not null;default:0"`
	DrinksCount     int                 `gorm:"not null;default:0"`
	SandwichesCount int                 `gorm:"not null;default:0"`
	GiftDrinks      int                 `gorm:"not null;default:0"`
	GiftSandwiches  int                 `gorm:"not null;default:0"`
	IsActive        bool                `gorm:"default:true"`
	Role            models.Role         `gorm:"not null;default:'client'"`
}

type Barista struct {
	gorm.Model
	TelegramID string `gorm:"uniqueIndex;not null"`
	FirstName  string
	LastName   string
	IsAdmin    bool `gorm:"not null;default:false"`
	IsActive   bool `gorm:"default:true"`
}

// Order хранит неизменяемую запись одной покупки, после создания не правится.
type Order struct {
	gorm.Model
	UserID           uint `gorm:"index"`
	BaristaID        uint
	CodeID           uint
	ReceiptNumber    string `gorm:"not null"`
	TotalSum         int    `gorm:"not null"`
	DrinksCount      int    `gorm:"not null;default:0"`
	SandwichesCount  int    `gorm:"not null;default:0"`
	UsePoints        bool   `gorm:"default:false"`
	UsedPointsAmount int    `gorm:"default:0"`
}

type Code struct {
	gorm.Model
	Code      string `gorm:"uniqueIndex;not null"`
	UserID    uint   `gorm:"index"`
	IsUsed    bool   `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null"`
}

type Gift struct {
	gorm.Model
	UserID       uint   `gorm:"index"`
	Type         string `gorm:"not null"`
	Amount       int    `gorm:"not null;default:1"`
	CreatedBy    uint
	IsWrittenOff bool `gorm:"default:false"`
}

type Feedback struct {
	gorm.Model
	UserID uint `gorm:"index"`
	Score  int
	Text   string
}

type Idea struct {
	gorm.Model
	UserID uint   `gorm:"index"`
	Text   string `gorm:"not null"`
}

// Notification: UserID == nil значит рассылка всем пользователям.
type Notification struct {
	gorm.Model
	UserID *uint `gorm:"index"`
	Text   string `gorm:"not null"`
	SentBy uint
}

type BaristaAction struct {
	gorm.Model
	BaristaID  uint   `gorm:"index"`
	ActionType string `gorm:"not null"`
	Details    string
}
