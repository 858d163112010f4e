package sweep

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/messages"
	"github.com/theheadmen/coffeeloyalty/internal/metrics"
	"github.com/theheadmen/coffeeloyalty/internal/service"
)

// Sweeper раз в день обходит пользователей и выдает подарки именинникам,
// до которых не дотянулся путь заказа. Проверка та же, что и в заказе,
// поэтому повторный проход в тот же день ничего не задвоит.
type Sweeper struct {
	Storage service.Storage
	Log     *logrus.Logger
}

// подменяется в тестах
var nowFunc = time.Now

func New(storage service.Storage, log *logrus.Logger) *Sweeper {
	return &Sweeper{Storage: storage, Log: log}
}

// Run делает один проход по всем кандидатам.
func (s *Sweeper) Run(ctx context.Context) {
	var users []dbconnector.User
	if err := s.Storage.GetBirthdayCandidates(ctx, &users); err != nil {
		s.Log.WithError(err).Error("birthday sweep: failed to list candidates")
		return
	}

	granted := 0
	for i := range users {
		user := &users[i]
		ok, err := service.GrantBirthdayGiftLogic(ctx, s.Storage, user.ID, nowFunc())
		if err != nil {
			s.Log.WithError(err).WithField("user_id", user.ID).Warn("birthday sweep: grant failed")
			continue
		}
		if !ok {
			continue
		}

		granted++
		metrics.CountGift("birthday")
		userID := user.ID
		notification := dbconnector.Notification{
			UserID: &userID,
			Text:   messages.BirthdayCongrats,
		}
		if err := s.Storage.AddNotification(ctx, &notification); err != nil {
			s.Log.WithError(err).WithField("user_id", user.ID).Warn("birthday sweep: notification failed")
		}
	}

	s.Log.WithFields(logrus.Fields{
		"candidates": len(users),
		"granted":    granted,
	}).Info("birthday sweep finished")
}

// Schedule регистрирует ежедневный запуск в 9 утра локального времени.
func (s *Sweeper) Schedule(c *cron.Cron) error {
	_, err := c.AddFunc("0 9 * * *", func() {
		s.Run(context.Background())
	})
	return err
}
