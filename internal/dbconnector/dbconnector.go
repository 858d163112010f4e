package dbconnector

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/models"
)

type DBConnector struct {
	DB *gorm.DB
}

func OpenDBConnect(dsn string) (*DBConnector, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	return &DBConnector{DB: db}, err
}

// NewDBConnector оборачивает уже открытое соединение, в тестах сюда
// передается sqlite.
func NewDBConnector(db *gorm.DB) *DBConnector {
	return &DBConnector{DB: db}
}

func (dbConnector *DBConnector) DBInitialize() error {
	return dbConnector.DB.AutoMigrate(
		&User{},
		&Barista{},
		&Order{},
		&Code{},
		&Gift{},
		&Feedback{},
		&Idea{},
		&Notification{},
		&BaristaAction{},
	)
}

// USERS

func (dbConnector *DBConnector) GetUserByTelegramID(ctx context.Context, telegramID string, user *User) error {
	return dbConnector.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(user).Error
}

func (dbConnector *DBConnector) GetUserByUserID(ctx context.Context, userID uint, user *User) error {
	return dbConnector.DB.WithContext(ctx).First(user, userID).Error
}

func (dbConnector *DBConnector) AddUser(ctx context.Context, newUser *User) error {
	return dbConnector.DB.WithContext(ctx).Create(newUser).Error
}

func (dbConnector *DBConnector) UpdateUser(ctx context.Context, updUser *User) error {
	return dbConnector.DB.WithContext(ctx).Save(updUser).Error
}

func (dbConnector *DBConnector) GetAllUsers(ctx context.Context, limit, offset int, users *[]User) error {
	return dbConnector.DB.WithContext(ctx).Order("id desc").Limit(limit).Offset(offset).Find(users).Error
}

// GetBirthdayCandidates отдает активных пользователей с заполненной датой
// рождения. Сравнение месяца и дня делаем уже в Go, чтобы не зависеть от
// диалекта базы.
func (dbConnector *DBConnector) GetBirthdayCandidates(ctx context.Context, users *[]User) error {
	return dbConnector.DB.WithContext(ctx).Where("is_active = ? AND birth_date IS NOT NULL", true).Find(users).Error
}

// BARISTAS

func (dbConnector *DBConnector) GetBaristaByTelegramID(ctx context.Context, telegramID string, barista *Barista) error {
	return dbConnector.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(barista).Error
}

func (dbConnector *DBConnector) AddBarista(ctx context.Context, newBarista *Barista) error {
	return dbConnector.DB.WithContext(ctx).Create(newBarista).Error
}

// ORDERS

func (dbConnector *DBConnector) AddOrder(ctx context.Context, newOrder *Order) error {
	return dbConnector.DB.WithContext(ctx).Create(newOrder).Error
}

func (dbConnector *DBConnector) GetOrdersByUserID(ctx context.Context, userID uint, limit, offset int, orders *[]Order) error {
	return dbConnector.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Offset(offset).Find(orders).Error
}

func (dbConnector *DBConnector) GetAllOrders(ctx context.Context, limit, offset int, orders *[]Order) error {
	return dbConnector.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset).Find(orders).Error
}

// CODES

func (dbConnector *DBConnector) GetUnusedCodeByValue(ctx context.Context, codeValue string, code *Code) error {
	return dbConnector.DB.WithContext(ctx).Where("code = ? AND is_used = ?", codeValue, false).First(code).Error
}

func (dbConnector *DBConnector) AddCode(ctx context.Context, newCode *Code) error {
	return dbConnector.DB.WithContext(ctx).Create(newCode).Error
}

func (dbConnector *DBConnector) UpdateCode(ctx context.Context, updCode *Code) error {
	return dbConnector.DB.WithContext(ctx).Save(updCode).Error
}

// GIFTS

func (dbConnector *DBConnector) AddGift(ctx context.Context, newGift *Gift) error {
	return dbConnector.DB.WithContext(ctx).Create(newGift).Error
}

func (dbConnector *DBConnector) GetActiveGiftByID(ctx context.Context, giftID uint, gift *Gift) error {
	return dbConnector.DB.WithContext(ctx).Where("id = ? AND is_written_off = ?", giftID, false).First(gift).Error
}

func (dbConnector *DBConnector) GetGiftsByUserID(ctx context.Context, userID uint, activeOnly bool, gifts *[]Gift) error {
	query := dbConnector.DB.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_written_off = ?", false)
	}
	return query.Order("created_at desc").Find(gifts).Error
}

func (dbConnector *DBConnector) GetAllGifts(ctx context.Context, limit, offset int, gifts *[]Gift) error {
	return dbConnector.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset).Find(gifts).Error
}

// HasBirthdayGiftOn отвечает, выдавался ли пользователю подарок на день
// рождения в указанную дату. Именно по записям в gifts, а не по отдельной
// метке, так что повторный вызов в тот же день безопасен.
func (dbConnector *DBConnector) HasBirthdayGiftOn(ctx context.Context, userID uint, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := dbConnector.DB.WithContext(ctx).Model(&Gift{}).
		Where("user_id = ? AND type = ? AND created_at >= ? AND created_at < ?",
			userID, models.GiftTypeBirthdayDrink, dayStart, dayEnd).
		Count(&count).Error
	return count > 0, err
}

// FEEDBACK / IDEAS

func (dbConnector *DBConnector) AddFeedback(ctx context.Context, newFeedback *Feedback) error {
	return dbConnector.DB.WithContext(ctx).Create(newFeedback).Error
}

func (dbConnector *DBConnector) GetFeedbacks(ctx context.Context, limit, offset int, feedbacks *[]Feedback) error {
	return dbConnector.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset).Find(feedbacks).Error
}

func (dbConnector *DBConnector) AddIdea(ctx context.Context, newIdea *Idea) error {
	return dbConnector.DB.WithContext(ctx).Create(newIdea).Error
}

func (dbConnector *DBConnector) GetIdeas(ctx context.Context, limit, offset int, ideas *[]Idea) error {
	return dbConnector.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset).Find(ideas).Error
}

// NOTIFICATIONS

func (dbConnector *DBConnector) AddNotification(ctx context.Context, newNotification *Notification) error {
	return dbConnector.DB.WithContext(ctx).Create(newNotification).Error
}

func (dbConnector *DBConnector) GetNotificationsForUser(ctx context.Context, userID uint, limit, offset int, notifications *[]Notification) error {
	return dbConnector.DB.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at desc").Limit(limit).Offset(offset).Find(notifications).Error
}

// BARISTA ACTIONS

func (dbConnector *DBConnector) AddBaristaAction(ctx context.Context, action *BaristaAction) error {
	return dbConnector.DB.WithContext(ctx).Create(action).Error
}

// ANALYTICS

func (dbConnector *DBConnector) GetAnalyticsSummary(ctx context.Context, summary *models.AnalyticsSummary) error {
	db := dbConnector.DB.WithContext(ctx)

	if err := db.Model(&Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return err
	}
	if err := db.Model(&Gift{}).Count(&summary.TotalGifts).Error; err != nil {
		return err
	}
	if err := db.Model(&User{}).Count(&summary.TotalUsers).Error; err != nil {
		return err
	}
	if err := db.Model(&Order{}).Select("COALESCE(SUM(drinks_count), 0)").Scan(&summary.TotalDrinks).Error; err != nil {
		return err
	}
	return db.Model(&Order{}).Select("COALESCE(SUM(sandwiches_count), 0)").Scan(&summary.TotalSandwiches).Error
}

// DeleteAllData очищает все таблицы. Нужен только тестам.
func (dbConnector *DBConnector) DeleteAllData(ctx context.Context) {
	db := dbConnector.DB.WithContext(ctx)
	for _, table := range []string{
		"barista_actions", "notifications", "ideas", "feedbacks",
		"gifts", "codes", "orders", "baristas", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}
}

// OrderTransaction записывает заказ, обновленного пользователя и, если
// положен, подарок на день рождения, всё в одной транзакции.
func (dbConnector *DBConnector) OrderTransaction(ctx context.Context, order *Order, updUser *User, birthdayGift *Gift) error {
	tx := dbConnector.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Save(updUser).Error; err != nil {
		tx.Rollback()
		return err
	}

	if birthdayGift != nil {
		if err := tx.Create(birthdayGift).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// GiftWriteOffTransaction помечает подарок списанным и уменьшает счетчик
// несписанных подарков у пользователя.
func (dbConnector *DBConnector) GiftWriteOffTransaction(ctx context.Context, gift *Gift, updUser *User) error {
	tx := dbConnector.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Save(gift).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Save(updUser).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
