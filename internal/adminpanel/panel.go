// Package adminpanel реализует веб-админку кофейни: таблицы пользователей,
// заказов, подарков и обратной связи поверх REST API. Рендерится на
// сервере, вход по логину и паролю администратора.
package adminpanel

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/theheadmen/coffeeloyalty/internal/apiclient"
	"github.com/theheadmen/coffeeloyalty/internal/serverconfig"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "dashboard", "users", "orders", "gifts", "feedbacks", "ideas"}

type Panel struct {
	client    *apiclient.Client
	config    *serverconfig.ConfigStore
	log       *logrus.Logger
	templates map[string]*template.Template
}

func NewPanel(client *apiclient.Client, config *serverconfig.ConfigStore, log *logrus.Logger) *Panel {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		templates[name] = template.Must(template.ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &Panel{
		client:    client,
		config:    config,
		log:       log,
		templates: templates,
	}
}

func (p *Panel) MakeRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/login", p.LoginPageHandler).Methods("GET")
	r.HandleFunc("/login", p.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", p.LogoutHandler).Methods("GET")

	authed := r.NewRoute().Subrouter()
	authed.HandleFunc("/", p.DashboardHandler).Methods("GET")
	authed.HandleFunc("/users", p.UsersHandler).Methods("GET")
	authed.HandleFunc("/orders", p.OrdersHandler).Methods("GET")
	authed.HandleFunc("/gifts", p.GiftsHandler).Methods("GET")
	authed.HandleFunc("/feedbacks", p.FeedbacksHandler).Methods("GET")
	authed.HandleFunc("/ideas", p.IdeasHandler).Methods("GET")
	authed.Use(p.requireAuth)

	return r
}

func (p *Panel) MakeServer(serverAddr string) *http.Server {
	server := http.Server{
		Addr:    serverAddr,
		Handler: p.MakeRouter(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	return &server
}

func (p *Panel) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := p.templates[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		p.log.WithError(err).WithField("page", page).Error("failed to render page")
	}
}

func (p *Panel) renderError(w http.ResponseWriter, page string, err error) {
	p.log.WithError(err).WithField("page", page).Error("api request failed")
	http.Error(w, "API недоступен, попробуйте позже", http.StatusBadGateway)
}
