package adminpanel

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookie = "admin_session"
	sessionTTL    = 12 * time.Hour
)

// LoginPageHandler показывает форму входа.
func (p *Panel) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	p.render(w, "login", map[string]any{"Title": "Вход"})
}

func (p *Panel) LoginHandler(w http.ResponseWriter, r *http.Request) {
	login := r.FormValue("login")
	password := r.FormValue("password")

	if login != p.config.AdminLogin ||
		bcrypt.CompareHashAndPassword(p.config.AdminPasswordHash, []byte(password)) != nil {
		p.log.WithField("login", login).Warn("failed admin login attempt")
		p.render(w, "login", map[string]any{
			"Title": "Вход",
			"Error": "Неверный логин или пароль",
		})
		return
	}

	token, err := p.issueToken(login)
	if err != nil {
		p.log.WithError(err).Error("failed to issue session token")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Panel) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (p *Panel) issueToken(login string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.config.JWTSecret)
}

func (p *Panel) validToken(raw string) bool {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(_ *jwt.Token) (interface{}, error) { return p.config.JWTSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && token.Valid
}

// requireAuth отправляет на форму входа всех, у кого нет живой сессии.
func (p *Panel) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || !p.validToken(cookie.Value) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
