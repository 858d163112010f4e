package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/models"
	"github.com/theheadmen/coffeeloyalty/internal/server"
)

type testEnv struct {
	storage *dbconnector.DBConnector
	router  *mux.Router
	// каждый запрос приходит с уникального адреса, чтобы лимитер не мешал
	requestSeq int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	storage := dbconnector.NewDBConnector(db)
	require.NoError(t, storage.DBInitialize())

	log := logrus.New()
	log.SetOutput(io.Discard)

	ls := server.NewServerSystem(storage, log)
	return &testEnv{storage: storage, router: ls.MakeRouter()}
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	env.requestSeq++
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.%d.%d", env.requestSeq/250, env.requestSeq%250))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, env *testEnv, telegramID string) models.UserResponse {
	t.Helper()
	recorder := env.do(t, http.MethodPost, "/users/", models.UserRequest{
		TelegramID: telegramID,
		Phone:      "+79990001122",
		FirstName:  "Иван",
		LastName:   "Петров",
		BirthDate:  "1990-03-15",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	return decodeBody[models.UserResponse](t, recorder)
}

func TestRegisterAndGetUser(t *testing.T) {
	env := newTestEnv(t)

	user := registerUser(t, env, "555")
	assert.Equal(t, models.LevelStandard, user.LoyaltyStatus)
	assert.Equal(t, 0, user.Points)
	assert.True(t, user.IsActive)

	recorder := env.do(t, http.MethodGet, "/users/555", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	fetched := decodeBody[models.UserResponse](t, recorder)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "1990-03-15", fetched.BirthDate)

	recorder = env.do(t, http.MethodGet, fmt.Sprintf("/users/id/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// повторная регистрация того же telegram_id
	recorder = env.do(t, http.MethodPost, "/users/", models.UserRequest{TelegramID: "555"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetUserNotFound(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/users/nobody", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/users/id/12345", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "600")

	recorder := env.do(t, http.MethodPost, "/orders/", models.OrderRequest{
		UserID:        user.ID,
		ReceiptNumber: "R-1",
		TotalSum:      350,
		DrinksCount:   2,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	resp := decodeBody[models.OrderCreateResponse](t, recorder)
	assert.Equal(t, 3, resp.Summary.PointsEarned)
	assert.Equal(t, 3, resp.Summary.NewPointsTotal)
	assert.Equal(t, "R-1", resp.Order.ReceiptNumber)

	recorder = env.do(t, http.MethodGet, fmt.Sprintf("/orders/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	orders := decodeBody[[]models.OrderResponse](t, recorder)
	assert.Len(t, orders, 1)
}

func TestCreateOrderRejections(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "601")

	testCases := []struct {
		name string
		req  models.OrderRequest
	}{
		{
			name: "insufficient points",
			req: models.OrderRequest{
				UserID: user.ID, ReceiptNumber: "R-2", TotalSum: 100,
				DrinksCount: 1, UsePoints: true, UsedPointsAmount: 50,
			},
		},
		{
			name: "no items",
			req: models.OrderRequest{
				UserID: user.ID, ReceiptNumber: "R-3", TotalSum: 100,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := env.do(t, http.MethodPost, "/orders/", tc.req)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}

	// несуществующий пользователь
	recorder := env.do(t, http.MethodPost, "/orders/", models.OrderRequest{
		UserID: 9999, ReceiptNumber: "R-4", TotalSum: 100, DrinksCount: 1,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCodeRoundtrip(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "700")

	recorder := env.do(t, http.MethodPost, fmt.Sprintf("/codes/generate?user_id=%d", user.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	code := decodeBody[models.CodeResponse](t, recorder)
	assert.Len(t, code.Code, 5)
	assert.Equal(t, user.ID, code.UserID)

	recorder = env.do(t, http.MethodPost, "/codes/use?code_value="+code.Code, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	used := decodeBody[models.CodeResponse](t, recorder)
	assert.True(t, used.IsUsed)

	// повторное использование
	recorder = env.do(t, http.MethodPost, "/codes/use?code_value="+code.Code, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGiftFlow(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "800")

	recorder := env.do(t, http.MethodPost, "/gifts/", models.GiftRequest{
		UserID: user.ID,
		Type:   models.GiftTypeDrink,
		Amount: 1,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	gift := decodeBody[models.GiftResponse](t, recorder)

	recorder = env.do(t, http.MethodGet, fmt.Sprintf("/gifts/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	gifts := decodeBody[[]models.GiftResponse](t, recorder)
	require.Len(t, gifts, 1)

	recorder = env.do(t, http.MethodPost, fmt.Sprintf("/gifts/%d/writeoff", gift.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// после списания активных подарков нет
	recorder = env.do(t, http.MethodGet, fmt.Sprintf("/gifts/user/%d", user.ID), nil)
	gifts = decodeBody[[]models.GiftResponse](t, recorder)
	assert.Empty(t, gifts)

	recorder = env.do(t, http.MethodPost, fmt.Sprintf("/gifts/%d/writeoff", gift.ID), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGiftValidation(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "801")

	// тип подарка ограничен словарем
	recorder := env.do(t, http.MethodPost, "/gifts/", models.GiftRequest{
		UserID: user.ID,
		Type:   "cake",
		Amount: 1,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestFeedbackAndIdeas(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "900")

	recorder := env.do(t, http.MethodPost, "/feedback/review", models.FeedbackRequest{
		UserID: user.ID, Score: 9, Text: "отлично",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// оценка вне шкалы
	recorder = env.do(t, http.MethodPost, "/feedback/review", models.FeedbackRequest{
		UserID: user.ID, Score: 11,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = env.do(t, http.MethodPost, "/feedback/idea", models.IdeaRequest{
		UserID: user.ID, Text: "больше сортов чая",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/feedback/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	feedbacks := decodeBody[[]models.FeedbackResponse](t, recorder)
	assert.Len(t, feedbacks, 1)

	recorder = env.do(t, http.MethodGet, "/feedback/ideas", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	ideas := decodeBody[[]models.IdeaResponse](t, recorder)
	assert.Len(t, ideas, 1)
}

func TestNotifications(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "910")

	// адресное уведомление
	recorder := env.do(t, http.MethodPost, "/notifications/", models.NotificationRequest{
		UserID: &user.ID, Text: "ваш заказ готов",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// рассылка всем
	recorder = env.do(t, http.MethodPost, "/notifications/", models.NotificationRequest{
		Text: "скидка на эспрессо",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	// пользователь видит и свое, и общее
	recorder = env.do(t, http.MethodGet, fmt.Sprintf("/notifications/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	notifications := decodeBody[[]models.NotificationResponse](t, recorder)
	assert.Len(t, notifications, 2)

	// уведомление несуществующему пользователю
	missing := uint(4242)
	recorder = env.do(t, http.MethodPost, "/notifications/", models.NotificationRequest{
		UserID: &missing, Text: "никому",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestBaristaRegistrationIdempotent(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/baristas/", models.BaristaRequest{
		TelegramID: "77700", FirstName: "Мария",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	first := decodeBody[models.BaristaResponse](t, recorder)

	recorder = env.do(t, http.MethodPost, "/baristas/", models.BaristaRequest{
		TelegramID: "77700", FirstName: "Мария",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	second := decodeBody[models.BaristaResponse](t, recorder)
	assert.Equal(t, first.ID, second.ID)

	recorder = env.do(t, http.MethodGet, "/baristas/77700", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/baristas/77701", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAnalyticsSummary(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "920")

	recorder := env.do(t, http.MethodPost, "/orders/", models.OrderRequest{
		UserID: user.ID, ReceiptNumber: "S-1", TotalSum: 200, DrinksCount: 2, SandwichesCount: 1,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/analytics/summary", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	summary := decodeBody[models.AnalyticsSummary](t, recorder)
	assert.Equal(t, int64(1), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.TotalUsers)
	assert.Equal(t, int64(2), summary.TotalDrinks)
	assert.Equal(t, int64(1), summary.TotalSandwiches)
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)
	recorder := env.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
