package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func TestGetUserByTelegramID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/555", r.URL.Path)
		json.NewEncoder(w).Encode(models.UserResponse{ID: 7, TelegramID: "555", Points: 3})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	user, err := client.GetUserByTelegramID(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, 3, user.Points)
}

func TestNotFoundMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "user not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	_, err := client.GetUserByTelegramID(context.Background(), "none")
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.True(t, apiclient.IsClientError(err))
}

func TestClientErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "insufficient points", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	_, err := client.CreateOrder(context.Background(), models.OrderRequest{})
	require.Error(t, err)
	assert.False(t, apiclient.IsNotFound(err))
	assert.True(t, apiclient.IsClientError(err))
	assert.Contains(t, err.Error(), "insufficient points")
}

func TestCreateOrderSendsBodyAndDecodesSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "R-9", req.ReceiptNumber)

		json.NewEncoder(w).Encode(models.OrderCreateResponse{
			Summary: models.OrderSummary{PointsEarned: 2, NewPointsTotal: 2},
		})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	resp, err := client.CreateOrder(context.Background(), models.OrderRequest{
		UserID:        1,
		ReceiptNumber: "R-9",
		TotalSum:      200,
		DrinksCount:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Summary.PointsEarned)
}

func TestGenerateCodePassesUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/codes/generate", r.URL.Path)
		assert.Equal(t, "15", r.URL.Query().Get("user_id"))
		json.NewEncoder(w).Encode(models.CodeResponse{Code: "12345", UserID: 15})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	code, err := client.GenerateCode(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, "12345", code.Code)
}
