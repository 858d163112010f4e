package service

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
)

const (
	codeLength = 5
	// CodeTTL задает окно, в течение которого клиент может назвать код бариста.
	CodeTTL = 90 * time.Second
	// сколько раз пробуем сгенерировать уникальный код, прежде чем сдаться
	maxCodeAttempts = 100
)

func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// GenerateCodeLogic выдает пользователю одноразовый код из 5 цифр,
// уникальный среди еще не использованных, со сроком жизни CodeTTL.
func GenerateCodeLogic(ctx context.Context, storage Storage, userID uint, now time.Time) (*dbconnector.Code, error) {
	var user dbconnector.User
	if err := storage.GetUserByUserID(ctx, userID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		value, err := randomDigits(codeLength)
		if err != nil {
			return nil, err
		}

		var existing dbconnector.Code
		err = storage.GetUnusedCodeByValue(ctx, value, &existing)
		if err == nil {
			// такой код уже висит неиспользованным, пробуем другой
			continue
		}
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		code := dbconnector.Code{
			Code:      value,
			UserID:    userID,
			ExpiresAt: now.Add(CodeTTL),
		}
		if err := storage.AddCode(ctx, &code); err != nil {
			return nil, err
		}
		return &code, nil
	}

	return nil, fmt.Errorf("failed to generate unique code after %d attempts", maxCodeAttempts)
}

// UseCodeLogic гасит код: неиспользованный и не просроченный код
// помечается использованным ровно один раз, назад дороги нет.
func UseCodeLogic(ctx context.Context, storage Storage, codeValue string, now time.Time) (*dbconnector.Code, error) {
	var code dbconnector.Code
	if err := storage.GetUnusedCodeByValue(ctx, codeValue, &code); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCodeInvalid
		}
		return nil, err
	}

	if now.After(code.ExpiresAt) {
		return nil, errors.ErrCodeExpired
	}

	code.IsUsed = true
	if err := storage.UpdateCode(ctx, &code); err != nil {
		return nil, err
	}
	return &code, nil
}
