package service

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

// CreateGiftLogic выдает подарок от сотрудника и поднимает счетчик
// несписанных подарков у пользователя.
func CreateGiftLogic(ctx context.Context, storage Storage, req models.GiftRequest) (*dbconnector.Gift, error) {
	var user dbconnector.User
	if err := storage.GetUserByUserID(ctx, req.UserID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	gift := dbconnector.Gift{
		UserID:    req.UserID,
		Type:      req.Type,
		Amount:    req.Amount,
		CreatedBy: req.CreatedBy,
	}
	if err := storage.AddGift(ctx, &gift); err != nil {
		return nil, err
	}

	switch req.Type {
	case models.GiftTypeDrink:
		user.GiftDrinks += req.Amount
	case models.GiftTypeSandwich:
		user.GiftSandwiches += req.Amount
	}
	if err := storage.UpdateUser(ctx, &user); err != nil {
		return nil, err
	}

	return &gift, nil
}

// WriteOffGiftLogic списывает подарок: переход несписан -> списан
// происходит ровно один раз, счетчик пользователя уменьшается в той же
// транзакции.
func WriteOffGiftLogic(ctx context.Context, storage Storage, giftID uint) (*dbconnector.Gift, error) {
	var gift dbconnector.Gift
	if err := storage.GetActiveGiftByID(ctx, giftID, &gift); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrGiftNotFound
		}
		return nil, err
	}

	var user dbconnector.User
	if err := storage.GetUserByUserID(ctx, gift.UserID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	gift.IsWrittenOff = true

	switch gift.Type {
	case models.GiftTypeDrink, models.GiftTypeBirthdayDrink:
		user.GiftDrinks -= gift.Amount
		if user.GiftDrinks < 0 {
			user.GiftDrinks = 0
		}
	case models.GiftTypeSandwich:
		user.GiftSandwiches -= gift.Amount
		if user.GiftSandwiches < 0 {
			user.GiftSandwiches = 0
		}
	}

	if err := storage.GiftWriteOffTransaction(ctx, &gift, &user); err != nil {
		return nil, err
	}
	return &gift, nil
}
