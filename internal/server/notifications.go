package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func (ls *ServerSystem) SendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}
	if req.UserID != nil {
		if err := ls.userExists(r, *req.UserID); err != nil {
			ls.serviceError(w, err)
			return
		}
	}

	notification := dbconnector.Notification{
		UserID: req.UserID,
		Text:   req.Text,
		SentBy: req.SentBy,
	}
	if err := ls.Storage.AddNotification(r.Context(), &notification); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.recordBaristaAction(r, req.SentBy, "notification", req.Text)
	ls.writeJSON(w, http.StatusOK, toNotificationResponse(&notification))
}

func (ls *ServerSystem) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintVar(mux.Vars(r)["user_id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	limit, offset := parseLimitOffset(r, 10)

	var notifications []dbconnector.Notification
	if err := ls.Storage.GetNotificationsForUser(r.Context(), userID, limit, offset, &notifications); err != nil {
		ls.serviceError(w, err)
		return
	}

	responses := make([]models.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = toNotificationResponse(&notifications[i])
	}
	ls.writeJSON(w, http.StatusOK, responses)
}
