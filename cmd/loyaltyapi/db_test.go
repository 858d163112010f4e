package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/models"
	"github.com/theheadmen/coffeeloyalty/internal/server"
)

type LoyaltyAPITestSuite struct {
	suite.Suite
	db       *dbconnector.DBConnector
	router   *mux.Router
	postgres testcontainers.Container
	ctx      context.Context
}

func (suite *LoyaltyAPITestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	suite.ctx = context.Background()

	postgresContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:latest"),
		tcpostgres.WithDatabase("coffeedb"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("example"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(suite.T(), err)
	suite.postgres = postgresContainer

	host, err := postgresContainer.Host(ctx)
	require.NoError(suite.T(), err)
	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(suite.T(), err)

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=example dbname=coffeedb sslmode=disable", host, port.Port())
	db, err := dbconnector.OpenDBConnect(dsn)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), db.DBInitialize())
	suite.db = db

	log := logrus.New()
	log.SetOutput(io.Discard)
	suite.router = server.NewServerSystem(db, log).MakeRouter()
}

func (suite *LoyaltyAPITestSuite) TearDownSuite() {
	if suite.postgres == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(suite.T(), suite.postgres.Terminate(ctx))
}

func (suite *LoyaltyAPITestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, req)
	return recorder
}

// Полный путь клиента: регистрация, код, заказ с накоплением, заказ со
// списанием, подарок и его списание.
func (suite *LoyaltyAPITestSuite) TestLoyaltyJourney() {
	t := suite.T()
	suite.db.DeleteAllData(suite.ctx)

	// регистрация
	recorder := suite.doJSON("POST", "/users/", models.UserRequest{
		TelegramID: "123456",
		Phone:      "+79990001122",
		FirstName:  "Анна",
		LastName:   "Смирнова",
		BirthDate:  "1992-07-20",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var user models.UserResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &user))

	// одноразовый код
	recorder = suite.doJSON("POST", fmt.Sprintf("/codes/generate?user_id=%d", user.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var code models.CodeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &code))
	assert.Len(t, code.Code, 5)

	recorder = suite.doJSON("POST", "/codes/use?code_value="+code.Code, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// заказ с накоплением
	recorder = suite.doJSON("POST", "/orders/", models.OrderRequest{
		UserID:        user.ID,
		CodeID:        code.ID,
		ReceiptNumber: "J-1",
		TotalSum:      550,
		DrinksCount:   3,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var created models.OrderCreateResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, 5, created.Summary.PointsEarned)

	// заказ со списанием: баллы тратятся, новые не начисляются
	recorder = suite.doJSON("POST", "/orders/", models.OrderRequest{
		UserID:           user.ID,
		ReceiptNumber:    "J-2",
		TotalSum:         200,
		DrinksCount:      1,
		UsePoints:        true,
		UsedPointsAmount: 4,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, 0, created.Summary.PointsEarned)
	assert.Equal(t, 4, created.Summary.PointsUsed)
	assert.Equal(t, 1, created.Summary.NewPointsTotal)

	// подарок и его списание
	recorder = suite.doJSON("POST", "/gifts/", models.GiftRequest{
		UserID: user.ID,
		Type:   models.GiftTypeSandwich,
		Amount: 1,
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var gift models.GiftResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &gift))

	recorder = suite.doJSON("POST", fmt.Sprintf("/gifts/%d/writeoff", gift.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = suite.doJSON("POST", fmt.Sprintf("/gifts/%d/writeoff", gift.ID), nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	// итоговое состояние пользователя
	recorder = suite.doJSON("GET", "/users/123456", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &user))
	assert.Equal(t, 1, user.Points)
	assert.Equal(t, 4, user.DrinksCount)
	assert.Equal(t, 0, user.GiftSandwiches)
}

// Порог уровня берется по числу напитков за все время.
func (suite *LoyaltyAPITestSuite) TestLevelUpgradeOnPostgres() {
	t := suite.T()
	suite.db.DeleteAllData(suite.ctx)

	user := dbconnector.User{
		TelegramID:    "654321",
		DrinksCount:   19,
		LoyaltyStatus: models.LevelStandard,
		IsActive:      true,
		Role:          models.RoleClient,
	}
	require.NoError(t, suite.db.AddUser(suite.ctx, &user))

	recorder := suite.doJSON("POST", "/orders/", models.OrderRequest{
		UserID:        user.ID,
		ReceiptNumber: "L-1",
		TotalSum:      120,
		DrinksCount:   1,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var created models.OrderCreateResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.True(t, created.Summary.LevelUpgraded)
	assert.Equal(t, models.LevelSilver, created.Summary.NewLevel)
}

func TestLoyaltyAPITestSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyAPITestSuite))
}
