package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/metrics"
	"github.com/theheadmen/coffeeloyalty/internal/service"
)

type ServerSystem struct {
	Storage  service.Storage
	Log      *logrus.Logger
	validate *validator.Validate
	limiter  *RateLimiter
}

func NewServerSystem(storage service.Storage, log *logrus.Logger) *ServerSystem {
	return &ServerSystem{
		Storage:  storage,
		Log:      log,
		validate: validator.New(),
		// 10 запросов в секунду на клиента с запасом на короткие всплески
		limiter: NewRateLimiter(10, 20, log),
	}
}

func (ls *ServerSystem) MakeRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/users/", ls.RegisterUserHandler).Methods("POST")
	r.HandleFunc("/users/", ls.ListUsersHandler).Methods("GET")
	r.HandleFunc("/users/id/{user_id}", ls.GetUserByIDHandler).Methods("GET")
	r.HandleFunc("/users/{telegram_id}", ls.GetUserHandler).Methods("GET")

	r.HandleFunc("/baristas/", ls.RegisterBaristaHandler).Methods("POST")
	r.HandleFunc("/baristas/{telegram_id}", ls.GetBaristaHandler).Methods("GET")

	r.HandleFunc("/orders/", ls.CreateOrderHandler).Methods("POST")
	r.HandleFunc("/orders/", ls.ListOrdersHandler).Methods("GET")
	r.HandleFunc("/orders/recent", ls.RecentOrdersHandler).Methods("GET")
	r.HandleFunc("/orders/user/{user_id}", ls.GetUserOrdersHandler).Methods("GET")

	r.HandleFunc("/codes/generate", ls.GenerateCodeHandler).Methods("POST")
	r.HandleFunc("/codes/use", ls.UseCodeHandler).Methods("POST")

	r.HandleFunc("/feedback/review", ls.CreateFeedbackHandler).Methods("POST")
	r.HandleFunc("/feedback/", ls.ListFeedbacksHandler).Methods("GET")
	r.HandleFunc("/feedback/idea", ls.CreateIdeaHandler).Methods("POST")
	r.HandleFunc("/feedback/ideas", ls.ListIdeasHandler).Methods("GET")

	r.HandleFunc("/gifts/", ls.CreateGiftHandler).Methods("POST")
	r.HandleFunc("/gifts/", ls.ListGiftsHandler).Methods("GET")
	r.HandleFunc("/gifts/user/{user_id}", ls.GetUserGiftsHandler).Methods("GET")
	r.HandleFunc("/gifts/{gift_id}/writeoff", ls.WriteOffGiftHandler).Methods("POST")

	r.HandleFunc("/analytics/summary", ls.AnalyticsSummaryHandler).Methods("GET")

	r.HandleFunc("/notifications/", ls.SendNotificationHandler).Methods("POST")
	r.HandleFunc("/notifications/user/{user_id}", ls.GetUserNotificationsHandler).Methods("GET")

	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(ls.Log))
	r.Use(ls.limiter.Middleware)

	return r
}

func (ls *ServerSystem) MakeServer(serverAddr string) *http.Server {
	server := http.Server{
		Addr:    serverAddr,
		Handler: ls.MakeRouter(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	return &server
}

func (ls *ServerSystem) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		ls.Log.WithError(err).Error("failed to encode response")
	}
}

// decodeAndValidate читает JSON-тело и прогоняет его через validator.
func (ls *ServerSystem) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := ls.validate.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// serviceErrorStatus переводит ошибки бизнес-логики в HTTP-коды, как того
// требует контракт: отказы валидации это 400, отсутствующие сущности 404.
func serviceErrorStatus(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound),
		stderrors.Is(err, errors.ErrGiftNotFound),
		stderrors.Is(err, errors.ErrBaristaNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrUserAlreadyExists),
		stderrors.Is(err, errors.ErrInvalidItemCounts),
		stderrors.Is(err, errors.ErrInvalidTotal),
		stderrors.Is(err, errors.ErrInvalidRedemption),
		stderrors.Is(err, errors.ErrInsufficientPoints),
		stderrors.Is(err, errors.ErrCodeInvalid),
		stderrors.Is(err, errors.ErrCodeExpired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (ls *ServerSystem) serviceError(w http.ResponseWriter, err error) {
	status := serviceErrorStatus(err)
	if status == http.StatusInternalServerError {
		ls.Log.WithError(err).Error("internal error")
	}
	http.Error(w, err.Error(), status)
}
