package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/metrics"
	"github.com/theheadmen/coffeeloyalty/internal/models"
	"github.com/theheadmen/coffeeloyalty/internal/service"
)

func (ls *ServerSystem) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}

	order, summary, err := service.ProcessOrderLogic(r.Context(), ls.Storage, req, time.Now())
	if err != nil {
		ls.serviceError(w, err)
		return
	}

	metrics.CountOrder(req.UsePoints, summary.PointsEarned, summary.PointsUsed)
	ls.recordBaristaAction(r, req.BaristaID, "order", "чек "+req.ReceiptNumber)
	if summary.BirthdayGift {
		metrics.CountGift("birthday")
	}
	ls.Log.WithFields(map[string]interface{}{
		"user_id":        req.UserID,
		"receipt":        req.ReceiptNumber,
		"points_earned":  summary.PointsEarned,
		"points_used":    summary.PointsUsed,
		"level_upgraded": summary.LevelUpgraded,
	}).Info("order processed")

	ls.writeJSON(w, http.StatusOK, models.OrderCreateResponse{
		Order:   toOrderResponse(order),
		Summary: summary,
	})
}

func (ls *ServerSystem) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100)

	var orders []dbconnector.Order
	if err := ls.Storage.GetAllOrders(r.Context(), limit, offset, &orders); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (ls *ServerSystem) RecentOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := parseLimitOffset(r, 10)

	var orders []dbconnector.Order
	if err := ls.Storage.GetAllOrders(r.Context(), limit, 0, &orders); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (ls *ServerSystem) GetUserOrdersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintVar(mux.Vars(r)["user_id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	limit, offset := parseLimitOffset(r, 10)

	var orders []dbconnector.Order
	if err := ls.Storage.GetOrdersByUserID(r.Context(), userID, limit, offset, &orders); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}
