package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/models"
	"github.com/theheadmen/coffeeloyalty/internal/service"
)

func TestLoyaltyLevelFor(t *testing.T) {
	testCases := []struct {
		drinks   int
		expected models.LoyaltyLevel
	}{
		{0, models.LevelStandard},
		{1, models.LevelStandard},
		{19, models.LevelStandard},
		{20, models.LevelSilver},
		{49, models.LevelSilver},
		{50, models.LevelGold},
		{99, models.LevelGold},
		{100, models.LevelPlatinum},
		{500, models.LevelPlatinum},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, service.LoyaltyLevelFor(tc.drinks), "drinks=%d", tc.drinks)
	}
}

func TestApplyOrderAccrual(t *testing.T) {
	testCases := []struct {
		name           string
		totalSum       int
		expectedEarned int
	}{
		{"round sum", 300, 3},
		{"floor of remainder", 399, 3},
		{"below one point", 99, 0},
		{"exactly one point", 100, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := dbconnector.User{LoyaltyStatus: models.LevelStandard}
			summary, err := service.ApplyOrder(&user, service.OrderInput{
				DrinksCount: 1,
				TotalSum:    tc.totalSum,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expectedEarned, summary.PointsEarned)
			assert.Equal(t, tc.expectedEarned, user.Points)
			assert.Equal(t, 0, summary.PointsUsed)
		})
	}
}

func TestApplyOrderRedemptionDoesNotEarn(t *testing.T) {
	user := dbconnector.User{Points: 10, LoyaltyStatus: models.LevelStandard}

	summary, err := service.ApplyOrder(&user, service.OrderInput{
		DrinksCount:      1,
		TotalSum:         500,
		UsePoints:        true,
		UsedPointsAmount: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.PointsEarned)
	assert.Equal(t, 7, summary.PointsUsed)
	assert.Equal(t, 3, user.Points)
	assert.Equal(t, 3, summary.NewPointsTotal)
}

func TestApplyOrderRejections(t *testing.T) {
	testCases := []struct {
		name        string
		points      int
		in          service.OrderInput
		expectedErr error
	}{
		{
			name:        "both counts zero",
			in:          service.OrderInput{TotalSum: 100},
			expectedErr: errors.ErrInvalidItemCounts,
		},
		{
			name:        "negative drinks",
			in:          service.OrderInput{DrinksCount: -1, SandwichesCount: 1, TotalSum: 100},
			expectedErr: errors.ErrInvalidItemCounts,
		},
		{
			name:        "zero total",
			in:          service.OrderInput{DrinksCount: 1, TotalSum: 0},
			expectedErr: errors.ErrInvalidTotal,
		},
		{
			name:        "negative redemption",
			in:          service.OrderInput{DrinksCount: 1, TotalSum: 100, UsedPointsAmount: -5},
			expectedErr: errors.ErrInvalidRedemption,
		},
		{
			name:        "redeem flag without amount",
			in:          service.OrderInput{DrinksCount: 1, TotalSum: 100, UsePoints: true},
			expectedErr: errors.ErrInvalidRedemption,
		},
		{
			name:        "redeem more than balance",
			points:      3,
			in:          service.OrderInput{DrinksCount: 1, TotalSum: 100, UsePoints: true, UsedPointsAmount: 5},
			expectedErr: errors.ErrInsufficientPoints,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := dbconnector.User{
				Points:          tc.points,
				DrinksCount:     18,
				SandwichesCount: 4,
				LoyaltyStatus:   models.LevelStandard,
			}
			before := user

			_, err := service.ApplyOrder(&user, tc.in)
			require.ErrorIs(t, err, tc.expectedErr)
			// отказ не меняет пользователя
			assert.Equal(t, before, user)
		})
	}
}

// Сценарий из жизни: 18 напитков и пустой баланс, заказ на 300 рублей с
// двумя напитками доводит до Серебра, после чего списать 5 баллов с
// балансом 3 не выйдет.
func TestApplyOrderUpgradeScenario(t *testing.T) {
	user := dbconnector.User{
		DrinksCount:   18,
		LoyaltyStatus: models.LevelStandard,
	}

	summary, err := service.ApplyOrder(&user, service.OrderInput{
		DrinksCount:     2,
		SandwichesCount: 1,
		TotalSum:        300,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, user.DrinksCount)
	assert.Equal(t, 3, summary.PointsEarned)
	assert.Equal(t, 3, user.Points)
	assert.True(t, summary.LevelUpgraded)
	assert.Equal(t, models.LevelSilver, summary.NewLevel)
	assert.Equal(t, models.LevelSilver, user.LoyaltyStatus)

	_, err = service.ApplyOrder(&user, service.OrderInput{
		SandwichesCount:  1,
		TotalSum:         150,
		UsePoints:        true,
		UsedPointsAmount: 5,
	})
	require.ErrorIs(t, err, errors.ErrInsufficientPoints)
	assert.Equal(t, 3, user.Points)
	assert.Equal(t, models.LevelSilver, user.LoyaltyStatus)
}

func TestApplyOrderLevelNeverRegresses(t *testing.T) {
	user := dbconnector.User{
		DrinksCount:   60,
		LoyaltyStatus: models.LevelGold,
	}

	summary, err := service.ApplyOrder(&user, service.OrderInput{
		SandwichesCount: 2,
		TotalSum:        200,
	})
	require.NoError(t, err)
	assert.False(t, summary.LevelUpgraded)
	assert.Equal(t, models.LevelGold, user.LoyaltyStatus)
}

func TestProcessOrderLogic(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	user := dbconnector.User{
		TelegramID:    "100500",
		FirstName:     "Анна",
		LoyaltyStatus: models.LevelStandard,
		IsActive:      true,
		Role:          models.RoleClient,
	}
	require.NoError(t, storage.AddUser(ctx, &user))

	order, summary, err := service.ProcessOrderLogic(ctx, storage, models.OrderRequest{
		UserID:        user.ID,
		ReceiptNumber: "A-1",
		TotalSum:      250,
		DrinksCount:   2,
	}, time.Now())
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, 2, summary.PointsEarned)

	var stored dbconnector.User
	require.NoError(t, storage.GetUserByUserID(ctx, user.ID, &stored))
	assert.Equal(t, 2, stored.Points)
	assert.Equal(t, 2, stored.DrinksCount)

	var orders []dbconnector.Order
	require.NoError(t, storage.GetOrdersByUserID(ctx, user.ID, 10, 0, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "A-1", orders[0].ReceiptNumber)
}

func TestProcessOrderLogicUnknownUser(t *testing.T) {
	storage := newTestStorage(t)

	_, _, err := service.ProcessOrderLogic(context.Background(), storage, models.OrderRequest{
		UserID:        42,
		ReceiptNumber: "A-1",
		TotalSum:      100,
		DrinksCount:   1,
	}, time.Now())
	require.ErrorIs(t, err, errors.ErrUserNotFound)
}

// Отказ заказа не должен оставлять следов в базе.
func TestProcessOrderLogicRejectionLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	user := dbconnector.User{TelegramID: "1", Points: 2, IsActive: true}
	require.NoError(t, storage.AddUser(ctx, &user))

	_, _, err := service.ProcessOrderLogic(ctx, storage, models.OrderRequest{
		UserID:           user.ID,
		ReceiptNumber:    "A-2",
		TotalSum:         100,
		DrinksCount:      1,
		UsePoints:        true,
		UsedPointsAmount: 10,
	}, time.Now())
	require.ErrorIs(t, err, errors.ErrInsufficientPoints)

	var orders []dbconnector.Order
	require.NoError(t, storage.GetOrdersByUserID(ctx, user.ID, 10, 0, &orders))
	assert.Empty(t, orders)

	var stored dbconnector.User
	require.NoError(t, storage.GetUserByUserID(ctx, user.ID, &stored))
	assert.Equal(t, 2, stored.Points)
}

func TestBirthdayGiftGrantedOncePerDay(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	birthDate := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	user := dbconnector.User{TelegramID: "7", BirthDate: &birthDate, IsActive: true}
	require.NoError(t, storage.AddUser(ctx, &user))

	_, summary, err := service.ProcessOrderLogic(ctx, storage, models.OrderRequest{
		UserID:        user.ID,
		ReceiptNumber: "B-1",
		TotalSum:      100,
		DrinksCount:   1,
	}, now)
	require.NoError(t, err)
	assert.True(t, summary.BirthdayGift)

	// второй заказ в тот же день подарка уже не дает
	_, summary, err = service.ProcessOrderLogic(ctx, storage, models.OrderRequest{
		UserID:        user.ID,
		ReceiptNumber: "B-2",
		TotalSum:      100,
		DrinksCount:   1,
	}, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, summary.BirthdayGift)

	var gifts []dbconnector.Gift
	require.NoError(t, storage.GetGiftsByUserID(ctx, user.ID, false, &gifts))
	require.Len(t, gifts, 1)
	assert.Equal(t, models.GiftTypeBirthdayDrink, gifts[0].Type)

	var stored dbconnector.User
	require.NoError(t, storage.GetUserByUserID(ctx, user.ID, &stored))
	assert.Equal(t, 1, stored.GiftDrinks)
}

func TestBirthdayGiftNotDueOnOtherDay(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	birthDate := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	user := dbconnector.User{TelegramID: "8", BirthDate: &birthDate, IsActive: true}
	require.NoError(t, storage.AddUser(ctx, &user))

	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)
	gift, err := service.BirthdayGiftDue(ctx, storage, &user, now)
	require.NoError(t, err)
	assert.Nil(t, gift)
}
