package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

// RegisterBaristaHandler регистрирует бариста или возвращает уже
// существующего с тем же telegram_id, повторный вызов безопасен.
func (ls *ServerSystem) RegisterBaristaHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BaristaRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}

	var existing dbconnector.Barista
	err := ls.Storage.GetBaristaByTelegramID(r.Context(), req.TelegramID, &existing)
	if err == nil {
		ls.writeJSON(w, http.StatusOK, toBaristaResponse(&existing))
		return
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		ls.serviceError(w, err)
		return
	}

	barista := dbconnector.Barista{
		TelegramID: req.TelegramID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		IsActive:   true,
	}
	if err := ls.Storage.AddBarista(r.Context(), &barista); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.Log.WithField("telegram_id", barista.TelegramID).Info("barista registered")

	ls.writeJSON(w, http.StatusOK, toBaristaResponse(&barista))
}

func (ls *ServerSystem) GetBaristaHandler(w http.ResponseWriter, r *http.Request) {
	telegramID := mux.Vars(r)["telegram_id"]

	var barista dbconnector.Barista
	if err := ls.Storage.GetBaristaByTelegramID(r.Context(), telegramID, &barista); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			ls.serviceError(w, errors.ErrBaristaNotFound)
			return
		}
		ls.serviceError(w, err)
		return
	}

	ls.writeJSON(w, http.StatusOK, toBaristaResponse(&barista))
}

// recordBaristaAction пишет строку в журнал действий бариста. Журнал
// вспомогательный, ошибка записи не валит основную операцию.
func (ls *ServerSystem) recordBaristaAction(r *http.Request, baristaID uint, actionType, details string) {
	if baristaID == 0 {
		return
	}
	action := dbconnector.BaristaAction{
		BaristaID:  baristaID,
		ActionType: actionType,
		Details:    details,
	}
	if err := ls.Storage.AddBaristaAction(r.Context(), &action); err != nil {
		ls.Log.WithError(err).WithField("barista_id", baristaID).Error("failed to record barista action")
	}
}

func toBaristaResponse(barista *dbconnector.Barista) models.BaristaResponse {
	return models.BaristaResponse{
		ID:         barista.ID,
		TelegramID: barista.TelegramID,
		FirstName:  barista.FirstName,
		LastName:   barista.LastName,
		IsAdmin:    barista.IsAdmin,
		IsActive:   barista.IsActive,
	}
}
