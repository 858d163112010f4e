package adminpanel

import (
	"net/http"
	"strconv"
)

func pageLimit(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func (p *Panel) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := p.client.AnalyticsSummary(r.Context())
	if err != nil {
		p.renderError(w, "dashboard", err)
		return
	}
	p.render(w, "dashboard", map[string]any{
		"Title":   "Сводка",
		"Summary": summary,
	})
}

func (p *Panel) UsersHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageLimit(r)
	users, err := p.client.ListUsers(r.Context(), limit, offset)
	if err != nil {
		p.renderError(w, "users", err)
		return
	}
	p.render(w, "users", map[string]any{
		"Title": "Пользователи",
		"Users": users,
	})
}

func (p *Panel) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageLimit(r)
	orders, err := p.client.ListOrders(r.Context(), limit, offset)
	if err != nil {
		p.renderError(w, "orders", err)
		return
	}
	p.render(w, "orders", map[string]any{
		"Title":  "Заказы",
		"Orders": orders,
	})
}

func (p *Panel) GiftsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageLimit(r)
	gifts, err := p.client.ListGifts(r.Context(), limit, offset)
	if err != nil {
		p.renderError(w, "gifts", err)
		return
	}
	p.render(w, "gifts", map[string]any{
		"Title": "Подарки",
		"Gifts": gifts,
	})
}

func (p *Panel) FeedbacksHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageLimit(r)
	feedbacks, err := p.client.ListFeedbacks(r.Context(), limit, offset)
	if err != nil {
		p.renderError(w, "feedbacks", err)
		return
	}
	p.render(w, "feedbacks", map[string]any{
		"Title":     "Отзывы",
		"Feedbacks": feedbacks,
	})
}

func (p *Panel) IdeasHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageLimit(r)
	ideas, err := p.client.ListIdeas(r.Context(), limit, offset)
	if err != nil {
		p.renderError(w, "ideas", err)
		return
	}
	p.render(w, "ideas", map[string]any{
		"Title": "Идеи",
		"Ideas": ideas,
	})
}
