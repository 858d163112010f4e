package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/metrics"
	"github.com/theheadmen/coffeeloyalty/internal/models"
	"github.com/theheadmen/coffeeloyalty/internal/service"
)

func (ls *ServerSystem) CreateGiftHandler(w http.ResponseWriter, r *http.Request) {
	var req models.GiftRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}

	gift, err := service.CreateGiftLogic(r.Context(), ls.Storage, req)
	if err != nil {
		ls.serviceError(w, err)
		return
	}

	metrics.CountGift("staff")
	ls.recordBaristaAction(r, req.CreatedBy, "gift_issue", req.Type)
	ls.Log.WithFields(map[string]interface{}{
		"user_id": req.UserID,
		"type":    req.Type,
		"amount":  req.Amount,
	}).Info("gift created")

	ls.writeJSON(w, http.StatusOK, toGiftResponse(gift))
}

func (ls *ServerSystem) ListGiftsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100)

	var gifts []dbconnector.Gift
	if err := ls.Storage.GetAllGifts(r.Context(), limit, offset, &gifts); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toGiftResponses(gifts))
}

func (ls *ServerSystem) GetUserGiftsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintVar(mux.Vars(r)["user_id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	activeOnly := true
	if v := r.URL.Query().Get("active_only"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			activeOnly = parsed
		}
	}

	var gifts []dbconnector.Gift
	if err := ls.Storage.GetGiftsByUserID(r.Context(), userID, activeOnly, &gifts); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toGiftResponses(gifts))
}

func (ls *ServerSystem) WriteOffGiftHandler(w http.ResponseWriter, r *http.Request) {
	giftID, err := parseUintVar(mux.Vars(r)["gift_id"])
	if err != nil {
		http.Error(w, "invalid gift id", http.StatusBadRequest)
		return
	}

	gift, err := service.WriteOffGiftLogic(r.Context(), ls.Storage, giftID)
	if err != nil {
		ls.serviceError(w, err)
		return
	}
	if baristaID, err := parseUintVar(r.URL.Query().Get("barista_id")); err == nil {
		ls.recordBaristaAction(r, baristaID, "gift_writeoff", gift.Type)
	}
	ls.Log.WithField("gift_id", giftID).Info("gift written off")

	ls.writeJSON(w, http.StatusOK, toGiftResponse(gift))
}
