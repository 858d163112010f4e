package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func (ls *ServerSystem) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}

	var existing dbconnector.User
	err := ls.Storage.GetUserByTelegramID(r.Context(), req.TelegramID, &existing)
	if err == nil {
		ls.serviceError(w, errors.ErrUserAlreadyExists)
		return
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		ls.serviceError(w, err)
		return
	}

	user := dbconnector.User{
		TelegramID:    req.TelegramID,
		Phone:         req.Phone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LoyaltyStatus: models.LevelStandard,
		Role:          models.RoleClient,
		IsActive:      true,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		user.BirthDate = &birthDate
	}

	if err := ls.Storage.AddUser(r.Context(), &user); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.Log.WithField("telegram_id", user.TelegramID).Info("user registered")

	ls.writeJSON(w, http.StatusOK, toUserResponse(&user))
}

func (ls *ServerSystem) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100)

	var users []dbconnector.User
	if err := ls.Storage.GetAllUsers(r.Context(), limit, offset, &users); err != nil {
		ls.serviceError(w, err)
		return
	}

	responses := make([]models.UserResponse, len(users))
	for i := range users {
		responses[i] = toUserResponse(&users[i])
	}
	ls.writeJSON(w, http.StatusOK, responses)
}

func (ls *ServerSystem) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintVar(mux.Vars(r)["user_id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var user dbconnector.User
	if err := ls.Storage.GetUserByUserID(r.Context(), userID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			ls.serviceError(w, errors.ErrUserNotFound)
			return
		}
		ls.serviceError(w, err)
		return
	}

	ls.writeJSON(w, http.StatusOK, toUserResponse(&user))
}

func (ls *ServerSystem) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	telegramID := mux.Vars(r)["telegram_id"]

	var user dbconnector.User
	if err := ls.Storage.GetUserByTelegramID(r.Context(), telegramID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			ls.serviceError(w, errors.ErrUserNotFound)
			return
		}
		ls.serviceError(w, err)
		return
	}

	ls.writeJSON(w, http.StatusOK, toUserResponse(&user))
}
