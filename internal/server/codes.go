package server

import (
	"net/http"
	"time"

	"github.com/theheadmen/coffeeloyalty/internal/service"
)

// GenerateCodeHandler выдает одноразовый код. Пользователь задается
// query-параметром user_id, как в остальных ручках кодов.
func (ls *ServerSystem) GenerateCodeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintVar(r.URL.Query().Get("user_id"))
	if err != nil || userID == 0 {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	code, err := service.GenerateCodeLogic(r.Context(), ls.Storage, userID, time.Now())
	if err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.Log.WithField("user_id", userID).Info("code generated")

	ls.writeJSON(w, http.StatusOK, toCodeResponse(code))
}

func (ls *ServerSystem) UseCodeHandler(w http.ResponseWriter, r *http.Request) {
	codeValue := r.URL.Query().Get("code_value")
	if codeValue == "" {
		http.Error(w, "code_value query parameter is required", http.StatusBadRequest)
		return
	}

	code, err := service.UseCodeLogic(r.Context(), ls.Storage, codeValue, time.Now())
	if err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.Log.WithField("user_id", code.UserID).Info("code used")

	ls.writeJSON(w, http.StatusOK, toCodeResponse(code))
}
