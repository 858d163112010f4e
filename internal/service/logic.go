package service

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

// 1 балл за каждые 100 рублей, остаток отбрасываем
const pointsAccrualRate = 100

// loyaltyThresholds это единственный источник правды по уровням: и подпись
// уровня, и его порог живут здесь. Побеждает максимальный порог, который
// не превышает число купленных напитков.
var loyaltyThresholds = []struct {
	Level  models.LoyaltyLevel
	Drinks int
}{
	{models.LevelStandard, 0},
	{models.LevelSilver, 20},
	{models.LevelGold, 50},
	{models.LevelPlatinum, 100},
}

// LoyaltyLevelFor это чистая функция: число напитков за все время -> уровень.
func LoyaltyLevelFor(drinksCount int) models.LoyaltyLevel {
	level := loyaltyThresholds[0].Level
	for _, threshold := range loyaltyThresholds {
		if drinksCount >= threshold.Drinks {
			level = threshold.Level
		}
	}
	return level
}

// OrderInput собирает то, что движку нужно знать о заказе.
type OrderInput struct {
	DrinksCount      int
	SandwichesCount  int
	TotalSum         int
	UsePoints        bool
	UsedPointsAmount int
}

// validateOrderInput проверяет предусловия до любой мутации. Отказ значит,
// что состояние пользователя не изменилось вообще.
func validateOrderInput(user *dbconnector.User, in OrderInput) error {
	if in.DrinksCount < 0 || in.SandwichesCount < 0 {
		return errors.ErrInvalidItemCounts
	}
	if in.DrinksCount == 0 && in.SandwichesCount == 0 {
		return errors.ErrInvalidItemCounts
	}
	if in.TotalSum <= 0 {
		return errors.ErrInvalidTotal
	}
	if in.UsedPointsAmount < 0 {
		return errors.ErrInvalidRedemption
	}
	if in.UsePoints {
		if in.UsedPointsAmount <= 0 {
			return errors.ErrInvalidRedemption
		}
		if in.UsedPointsAmount > user.Points {
			return errors.ErrInsufficientPoints
		}
	}
	return nil
}

// ApplyOrder применяет заказ к уже загруженному пользователю: счетчики
// покупок, списание либо начисление баллов, пересчет уровня. Сам ничего не
// пишет в базу, запись делает вызывающий в одной транзакции.
func ApplyOrder(user *dbconnector.User, in OrderInput) (models.OrderSummary, error) {
	var summary models.OrderSummary

	if err := validateOrderInput(user, in); err != nil {
		return summary, err
	}

	user.DrinksCount += in.DrinksCount
	user.SandwichesCount += in.SandwichesCount

	if in.UsePoints {
		summary.PointsUsed = in.UsedPointsAmount
		newPoints := user.Points - in.UsedPointsAmount
		if newPoints < 0 {
			newPoints = 0
		}
		user.Points = newPoints
	} else {
		summary.PointsEarned = in.TotalSum / pointsAccrualRate
		user.Points += summary.PointsEarned
	}
	summary.NewPointsTotal = user.Points

	newLevel := LoyaltyLevelFor(user.DrinksCount)
	if newLevel != user.LoyaltyStatus {
		user.LoyaltyStatus = newLevel
		summary.LevelUpgraded = true
		summary.NewLevel = newLevel
	}

	return summary, nil
}

// ProcessOrderLogic проходит полный путь заказа: загрузка пользователя, движок,
// проверка дня рождения и атомарная запись. Ошибки предусловий возвращаются
// вызывающему как есть, без частичного применения.
func ProcessOrderLogic(ctx context.Context, storage Storage, req models.OrderRequest, now time.Time) (*dbconnector.Order, models.OrderSummary, error) {
	var summary models.OrderSummary

	var user dbconnector.User
	if err := storage.GetUserByUserID(ctx, req.UserID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, summary, errors.ErrUserNotFound
		}
		return nil, summary, err
	}

	in := OrderInput{
		DrinksCount:      req.DrinksCount,
		SandwichesCount:  req.SandwichesCount,
		TotalSum:         req.TotalSum,
		UsePoints:        req.UsePoints,
		UsedPointsAmount: req.UsedPointsAmount,
	}
	summary, err := ApplyOrder(&user, in)
	if err != nil {
		return nil, summary, err
	}

	gift, err := BirthdayGiftDue(ctx, storage, &user, now)
	if err != nil {
		return nil, summary, err
	}
	if gift != nil {
		user.GiftDrinks += gift.Amount
		summary.BirthdayGift = true
	}

	usedPoints := 0
	if req.UsePoints {
		usedPoints = req.UsedPointsAmount
	}
	order := dbconnector.Order{
		UserID:           req.UserID,
		BaristaID:        req.BaristaID,
		CodeID:           req.CodeID,
		ReceiptNumber:    req.ReceiptNumber,
		TotalSum:         req.TotalSum,
		DrinksCount:      req.DrinksCount,
		SandwichesCount:  req.SandwichesCount,
		UsePoints:        req.UsePoints,
		UsedPointsAmount: usedPoints,
	}

	if err := storage.OrderTransaction(ctx, &order, &user, gift); err != nil {
		return nil, summary, err
	}

	return &order, summary, nil
}

// IsBirthdayToday сравнивает только месяц и день.
func IsBirthdayToday(birthDate *time.Time, now time.Time) bool {
	if birthDate == nil {
		return false
	}
	return birthDate.Day() == now.Day() && birthDate.Month() == now.Month()
}

// BirthdayGiftDue решает, положен ли пользователю сегодня подарочный
// напиток. Идемпотентность на календарный день держится на запросе уже
// существующих подарочных записей за сегодня. Известный зазор: два
// конкурентных вызова до коммита могут оба увидеть "подарка еще нет" и
// выдать его дважды.
func BirthdayGiftDue(ctx context.Context, storage Storage, user *dbconnector.User, now time.Time) (*dbconnector.Gift, error) {
	if !IsBirthdayToday(user.BirthDate, now) {
		return nil, nil
	}

	alreadyGiven, err := storage.HasBirthdayGiftOn(ctx, user.ID, now)
	if err != nil || alreadyGiven {
		return nil, err
	}

	return &dbconnector.Gift{
		UserID: user.ID,
		Type:   models.GiftTypeBirthdayDrink,
		Amount: 1,
	}, nil
}

// GrantBirthdayGiftLogic это отдельная точка входа для ежедневного обхода:
// выдает подарок, если положен, и говорит вызывающему, случилось ли это.
func GrantBirthdayGiftLogic(ctx context.Context, storage Storage, userID uint, now time.Time) (bool, error) {
	var user dbconnector.User
	if err := storage.GetUserByUserID(ctx, userID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.ErrUserNotFound
		}
		return false, err
	}

	gift, err := BirthdayGiftDue(ctx, storage, &user, now)
	if err != nil || gift == nil {
		return false, err
	}

	if err := storage.AddGift(ctx, gift); err != nil {
		return false, err
	}
	user.GiftDrinks += gift.Amount
	if err := storage.UpdateUser(ctx, &user); err != nil {
		return false, err
	}
	return true, nil
}
